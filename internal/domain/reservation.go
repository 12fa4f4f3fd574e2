package domain

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a stored or transmitted status string onto the closed enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// BlockingStatuses are the statuses that hold a space: a pending request is a
// real resource hold until explicitly rejected, so it blocks exactly like a
// confirmed one.
func BlockingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

// Reservation books a space for a half-open time interval. Status and OwnerID
// are server-assigned; input values for them are never trusted.
type Reservation struct {
	ID          int64
	Title       string
	Description string
	SpaceID     int64
	OwnerID     int64
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Reservation) Range() TimeRange {
	return TimeRange{Start: r.Start, End: r.End}
}

// Blocking reports whether the reservation participates in the conflict set.
func (r Reservation) Blocking() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}
