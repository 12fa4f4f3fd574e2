package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange         = errors.New("start must be before end")
	ErrTitleRequired        = errors.New("title is required")
	ErrSpaceNameRequired    = errors.New("space name is required")
	ErrLocationRequired     = errors.New("location is required")
	ErrAmenityNameRequired  = errors.New("amenity name is required")
	ErrInvalidCapacity      = errors.New("capacity must be positive")
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidID            = errors.New("invalid id")
	ErrDurationTooLong      = errors.New("reservation exceeds the maximum duration")
	ErrStartInPast          = errors.New("reservation must start in the future")
	ErrStartTooFarAhead     = errors.New("reservation starts too far ahead")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrReservationCancelled = errors.New("cancelled reservation cannot be modified")

	ErrSpaceNotFound       = errors.New("space not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAmenityNotFound     = errors.New("amenity not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrForbidden      = errors.New("forbidden")
	ErrSelfProtection = errors.New("admins cannot demote or delete their own account")

	ErrDuplicateName = errors.New("name already in use")
	ErrSpaceInUse    = errors.New("space has pending or confirmed reservations")
)

// ConflictError carries the reservations that overlap a candidate range so
// callers can suggest alternate times.
type ConflictError struct {
	Conflicts []Reservation
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return fmt.Sprintf("time range conflicts with reservation %d", e.Conflicts[0].ID)
	}
	return fmt.Sprintf("time range conflicts with %d reservations", len(e.Conflicts))
}
