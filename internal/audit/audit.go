// Package audit records every mutating action to the audit-log collaborator.
// Recording is fire-and-forget: a failed write is logged, never returned.
package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	ActionCreateReservation       = "CREATE_RESERVATION"
	ActionUpdateReservation       = "UPDATE_RESERVATION"
	ActionDeleteReservation       = "DELETE_RESERVATION"
	ActionChangeReservationStatus = "CHANGE_RESERVATION_STATUS"
	ActionCancelReservation       = "CANCEL_RESERVATION"
	ActionCreateSpace             = "CREATE_SPACE"
	ActionUpdateSpace             = "UPDATE_SPACE"
	ActionDeleteSpace             = "DELETE_SPACE"
	ActionSetSpaceAmenities       = "SET_SPACE_AMENITIES"
	ActionCreateAmenity           = "CREATE_AMENITY"
	ActionUpdateAmenity           = "UPDATE_AMENITY"
	ActionDeleteAmenity           = "DELETE_AMENITY"
	ActionUpdateUserRole          = "UPDATE_USER_ROLE"
	ActionDeleteUser              = "DELETE_USER"
)

// Recorder appends one entry per mutating action.
type Recorder interface {
	Record(ctx context.Context, actorID int64, action string, detail map[string]any)
}

// Noop discards entries; used when no document store is configured.
type Noop struct{}

func (Noop) Record(context.Context, int64, string, map[string]any) {}

// Logging mirrors entries to the application log; useful in development and
// as a wrapper around a real store.
type Logging struct {
	Log *logrus.Logger
}

func (l Logging) Record(_ context.Context, actorID int64, action string, detail map[string]any) {
	l.Log.WithFields(logrus.Fields{
		"actor_id": actorID,
		"action":   action,
		"detail":   detail,
	}).Info("audit")
}
