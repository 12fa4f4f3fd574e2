package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "audit_log"
	recordTimeout  = 3 * time.Second
)

// MongoRecorder persists audit entries to a MongoDB collection.
type MongoRecorder struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

type entry struct {
	ID      string         `bson:"_id"`
	ActorID int64          `bson:"actor_id"`
	Action  string         `bson:"action"`
	Detail  map[string]any `bson:"detail,omitempty"`
	At      time.Time      `bson:"at"`
}

func NewMongoRecorder(db *mongo.Database, log *logrus.Logger) *MongoRecorder {
	coll := db.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index(),
	})
	if err != nil {
		log.WithError(err).Warn("audit: failed to create index")
	}

	return &MongoRecorder{coll: coll, log: log}
}

// Record writes one entry with its own timeout so a slow document store never
// stalls or fails the primary operation.
func (r *MongoRecorder) Record(ctx context.Context, actorID int64, action string, detail map[string]any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, entry{
		ID:      uuid.NewString(),
		ActorID: actorID,
		Action:  action,
		Detail:  detail,
		At:      time.Now().UTC(),
	})
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"actor_id": actorID,
			"action":   action,
		}).Warn("audit: record failed")
	}
}
