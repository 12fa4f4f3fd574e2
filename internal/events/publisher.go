// Package events publishes reservation lifecycle events for downstream
// consumers (notifications, reporting). Publishing is best-effort.
package events

import (
	"context"
	"time"
)

const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationUpdated       = "reservation.updated"
	TypeReservationStatusChanged = "reservation.status_changed"
	TypeReservationCancelled     = "reservation.cancelled"
	TypeReservationDeleted       = "reservation.deleted"
)

// ReservationEvent is the JSON envelope put on the wire.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	SpaceID       int64     `json:"space_id"`
	OwnerID       int64     `json:"owner_id"`
	ActorID       int64     `json:"actor_id"`
	Status        string    `json:"status"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	At            time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent)
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, ReservationEvent) {}
