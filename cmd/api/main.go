package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oguarni/web-2-sub000/internal/app"
	"github.com/oguarni/web-2-sub000/internal/audit"
	"github.com/oguarni/web-2-sub000/internal/clock"
	"github.com/oguarni/web-2-sub000/internal/config"
	"github.com/oguarni/web-2-sub000/internal/events"
	"github.com/oguarni/web-2-sub000/internal/storage/postgres"
	transporthttp "github.com/oguarni/web-2-sub000/internal/transport/http"
	"github.com/oguarni/web-2-sub000/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.WithError(err).Fatal("db ping")
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.WithError(err).Fatal("apply migrations")
	}

	var recorder audit.Recorder = audit.Logging{Log: log}
	if cfg.MongoURI != "" {
		client, err := mongo.Connect(startupCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.WithError(err).Fatal("connect to mongo")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		if err := client.Ping(startupCtx, nil); err != nil {
			log.WithError(err).Fatal("mongo ping")
		}
		recorder = audit.NewMongoRecorder(client.Database(cfg.MongoDatabase), log)
		log.Info("audit log backed by mongo")
	} else {
		log.Warn("MONGO_URI not set, audit entries go to the application log")
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			log.WithError(err).Fatal("connect to broker")
		}
		defer amqpPub.Close()
		publisher = amqpPub
		log.WithField("exchange", cfg.AMQPExchange).Info("reservation events enabled")
	} else {
		log.Warn("AMQP_URL not set, reservation events disabled")
	}

	sysClock := clock.System()
	reservationSvc := app.NewReservationService(
		postgres.NewReservationRepository(pool), sysClock, recorder, publisher,
		app.WithMaxDuration(cfg.MaxDuration),
		app.WithMaxAdvance(cfg.MaxAdvance),
	)
	spaceSvc := app.NewSpaceService(postgres.NewSpaceRepository(pool), sysClock, recorder)
	amenitySvc := app.NewAmenityService(postgres.NewAmenityRepository(pool), recorder)
	userSvc := app.NewUserService(postgres.NewUserRepository(pool), recorder)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Reservations: reservationSvc,
		Spaces:       spaceSvc,
		Amenities:    amenitySvc,
		Users:        userSvc,
		DB:           pool,
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		Log:          log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.WithField("port", cfg.Port).Info("api listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error")
		}
	case <-stopCtx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server shutdown error")
	}
	log.Info("server stopped")
}
