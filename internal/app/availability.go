package app

import (
	"context"

	"github.com/oguarni/web-2-sub000/internal/domain"
)

// ReservationFinder is the slice of the persistence collaborator the
// availability check needs.
type ReservationFinder interface {
	FindReservationsBySpace(ctx context.Context, spaceID int64, statuses []domain.Status, excludeID int64) ([]domain.Reservation, error)
}

// AvailabilityChecker decides whether a candidate range may be booked against
// a space. It is deterministic: the verdict depends only on the fetched rows,
// never on the wall clock.
type AvailabilityChecker struct {
	finder ReservationFinder
}

func NewAvailabilityChecker(finder ReservationFinder) *AvailabilityChecker {
	return &AvailabilityChecker{finder: finder}
}

// Check returns every pending or confirmed reservation on the space whose
// range overlaps the candidate, excluding excludeID (0 excludes nothing; used
// when re-checking an edited reservation so it does not conflict with itself).
// An empty result means the range is free; any non-empty result is an outright
// rejection — there is no partial booking.
func (c *AvailabilityChecker) Check(ctx context.Context, spaceID int64, candidate domain.TimeRange, excludeID int64) ([]domain.Reservation, error) {
	existing, err := c.finder.FindReservationsBySpace(ctx, spaceID, domain.BlockingStatuses(), excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Reservation
	for _, res := range existing {
		// Re-check the status here so a finder that returns more than it was
		// asked for can never produce a phantom conflict.
		if res.Blocking() && candidate.Overlaps(res.Range()) {
			conflicts = append(conflicts, res)
		}
	}
	return conflicts, nil
}
