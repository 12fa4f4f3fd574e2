package domain

import "time"

// TimeRange is a half-open interval [Start, End): an end exactly at another
// range's start does not conflict.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange validates the interval; Start must be strictly before End.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
