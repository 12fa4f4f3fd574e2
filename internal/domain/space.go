package domain

import "time"

// Space is a bookable room. Name is unique; inactive spaces cannot receive
// new reservations and are reported as absent to plain users.
type Space struct {
	ID        int64
	Name      string
	Capacity  int
	Location  string
	Equipment string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
