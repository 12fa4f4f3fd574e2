package app

import (
	"context"
	"strings"
	"time"

	"github.com/oguarni/web-2-sub000/internal/audit"
	"github.com/oguarni/web-2-sub000/internal/clock"
	"github.com/oguarni/web-2-sub000/internal/domain"
	"github.com/oguarni/web-2-sub000/internal/events"
)

// ReservationRepository is the persistence collaborator for reservations.
// WithTx runs fn inside one transaction; every query issued through the
// returned context joins it. GetSpaceForUpdate locks the space row, which
// serializes concurrent check-then-insert sequences per space.
type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSpaceForUpdate(ctx context.Context, spaceID int64) (domain.Space, error)
	FindReservationsBySpace(ctx context.Context, spaceID int64, statuses []domain.Status, excludeID int64) ([]domain.Reservation, error)
	GetReservationForUpdate(ctx context.Context, id int64) (domain.Reservation, error)
	FindReservationByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
	ListReservations(ctx context.Context, ownerID *int64) ([]domain.Reservation, error)
}

// ReservationService is the single entry point for reservation reads and
// writes. It holds no state between calls.
type ReservationService struct {
	repo    ReservationRepository
	checker *AvailabilityChecker
	policy  domain.AccessPolicy
	clock   clock.Clock
	audit   audit.Recorder
	events  events.Publisher

	maxDuration time.Duration
	maxAdvance  time.Duration
}

const (
	defaultMaxDuration = 24 * time.Hour
	defaultMaxAdvance  = 365 * 24 * time.Hour
)

type ReservationServiceOption func(*ReservationService)

// WithMaxDuration overrides the maximum reservation length.
func WithMaxDuration(d time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if d > 0 {
			s.maxDuration = d
		}
	}
}

// WithMaxAdvance overrides how far ahead a reservation may start.
func WithMaxAdvance(d time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if d > 0 {
			s.maxAdvance = d
		}
	}
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, rec audit.Recorder, pub events.Publisher, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:        repo,
		checker:     NewAvailabilityChecker(repo),
		clock:       clk,
		audit:       rec,
		events:      pub,
		maxDuration: defaultMaxDuration,
		maxAdvance:  defaultMaxAdvance,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateReservationInput struct {
	Title       string
	Description string
	SpaceID     int64
	Start       time.Time
	End         time.Time
}

// Create books a range against an active space. Status and owner are
// server-assigned: every reservation starts pending and belongs to the actor,
// whatever the caller supplied.
func (s *ReservationService) Create(ctx context.Context, actor domain.Actor, in CreateReservationInput) (domain.Reservation, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Reservation{}, domain.ErrTitleRequired
	}
	rng, err := domain.NewTimeRange(in.Start, in.End)
	if err != nil {
		return domain.Reservation{}, err
	}

	now := s.clock.Now()
	if err := s.checkBounds(now, rng); err != nil {
		return domain.Reservation{}, err
	}

	var result domain.Reservation
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Locking the space row makes check-then-insert serializable per
		// space; the exclusion constraint backstops it.
		space, err := s.repo.GetSpaceForUpdate(txCtx, in.SpaceID)
		if err != nil {
			return err
		}
		if !space.Active {
			return domain.ErrSpaceNotFound
		}

		conflicts, err := s.checker.Check(txCtx, in.SpaceID, rng, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Conflicts: conflicts}
		}

		created, err := s.repo.CreateReservation(txCtx, domain.Reservation{
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			SpaceID:     in.SpaceID,
			OwnerID:     actor.ID,
			Start:       rng.Start,
			End:         rng.End,
			Status:      domain.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionCreateReservation, map[string]any{
		"reservation_id": result.ID,
		"space_id":       result.SpaceID,
		"start":          result.Start,
		"end":            result.End,
	})
	s.publish(ctx, events.TypeReservationCreated, actor, result)
	return result, nil
}

// Get returns one reservation, visible to admins and the owner.
func (s *ReservationService) Get(ctx context.Context, actor domain.Actor, id int64) (domain.Reservation, error) {
	res, err := s.repo.FindReservationByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if res == nil {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	if err := s.policy.CanRead(actor, *res); err != nil {
		return domain.Reservation{}, err
	}
	return *res, nil
}

// List returns all reservations for admins and only the actor's own rows for
// everyone else. The ownership filter runs in the query, not in memory.
func (s *ReservationService) List(ctx context.Context, actor domain.Actor) ([]domain.Reservation, error) {
	if actor.IsAdmin() {
		return s.repo.ListReservations(ctx, nil)
	}
	owner := actor.ID
	return s.repo.ListReservations(ctx, &owner)
}

type UpdateReservationInput struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	SpaceID     *int64
	Status      *domain.Status
}

// Update patches a reservation. Content edits require write access and an
// editable status; date or space changes re-run the availability check
// excluding the reservation itself; a status in the patch additionally
// requires the admin-only status authority and a legal transition.
func (s *ReservationService) Update(ctx context.Context, actor domain.Actor, id int64, in UpdateReservationInput) (domain.Reservation, error) {
	now := s.clock.Now()

	var result domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.policy.CanWrite(actor, res); err != nil {
			return err
		}
		if in.Status != nil {
			if err := s.policy.CanChangeStatus(actor); err != nil {
				return err
			}
		}

		updated := res
		contentEdit := false

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return domain.ErrTitleRequired
			}
			updated.Title = strings.TrimSpace(*in.Title)
			contentEdit = true
		}
		if in.Description != nil {
			updated.Description = *in.Description
			contentEdit = true
		}

		start, end := res.Start, res.End
		if in.Start != nil {
			start = *in.Start
		}
		if in.End != nil {
			end = *in.End
		}
		spaceID := res.SpaceID
		if in.SpaceID != nil {
			spaceID = *in.SpaceID
		}
		scheduleEdit := !start.Equal(res.Start) || !end.Equal(res.End) || spaceID != res.SpaceID

		if contentEdit || scheduleEdit {
			if err := domain.CanEdit(res); err != nil {
				return err
			}
		}

		if scheduleEdit {
			rng, err := domain.NewTimeRange(start, end)
			if err != nil {
				return err
			}
			if err := s.checkBounds(now, rng); err != nil {
				return err
			}

			space, err := s.repo.GetSpaceForUpdate(txCtx, spaceID)
			if err != nil {
				return err
			}
			if !space.Active {
				return domain.ErrSpaceNotFound
			}

			conflicts, err := s.checker.Check(txCtx, spaceID, rng, res.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &domain.ConflictError{Conflicts: conflicts}
			}

			updated.Start = rng.Start
			updated.End = rng.End
			updated.SpaceID = spaceID
		}

		if in.Status != nil {
			if err := domain.Transition(actor, res, *in.Status); err != nil {
				return err
			}
			updated.Status = *in.Status
		}

		updated.UpdatedAt = now
		saved, err := s.repo.UpdateReservation(txCtx, updated)
		if err != nil {
			return err
		}
		result = saved
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionUpdateReservation, map[string]any{
		"reservation_id": result.ID,
		"space_id":       result.SpaceID,
		"status":         string(result.Status),
	})
	s.publish(ctx, events.TypeReservationUpdated, actor, result)
	return result, nil
}

// Delete destroys a reservation unconditionally; history survives only in the
// audit log.
func (s *ReservationService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	var deleted domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.policy.CanWrite(actor, res); err != nil {
			return err
		}
		deleted = res
		return s.repo.DeleteReservation(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionDeleteReservation, map[string]any{
		"reservation_id": deleted.ID,
		"space_id":       deleted.SpaceID,
	})
	s.publish(ctx, events.TypeReservationDeleted, actor, deleted)
	return nil
}

// ChangeStatus is the privileged approve/reject operation. The status
// authority is checked before any lifecycle rule, so a non-admin gets
// ErrForbidden even on their own reservation.
func (s *ReservationService) ChangeStatus(ctx context.Context, actor domain.Actor, id int64, to domain.Status) (domain.Reservation, error) {
	if err := s.policy.CanChangeStatus(actor); err != nil {
		return domain.Reservation{}, err
	}

	var result domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := domain.Transition(actor, res, to); err != nil {
			return err
		}
		res.Status = to
		res.UpdatedAt = s.clock.Now()
		saved, err := s.repo.UpdateReservation(txCtx, res)
		if err != nil {
			return err
		}
		result = saved
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionChangeReservationStatus, map[string]any{
		"reservation_id": result.ID,
		"status":         string(result.Status),
	})
	s.publish(ctx, events.TypeReservationStatusChanged, actor, result)
	return result, nil
}

// Cancel is the owner-facing cancellation; admins may use it too. Cancelled
// is terminal.
func (s *ReservationService) Cancel(ctx context.Context, actor domain.Actor, id int64) (domain.Reservation, error) {
	var result domain.Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservationForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if err := domain.Transition(actor, res, domain.StatusCancelled); err != nil {
			return err
		}
		res.Status = domain.StatusCancelled
		res.UpdatedAt = s.clock.Now()
		saved, err := s.repo.UpdateReservation(txCtx, res)
		if err != nil {
			return err
		}
		result = saved
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionCancelReservation, map[string]any{
		"reservation_id": result.ID,
	})
	s.publish(ctx, events.TypeReservationCancelled, actor, result)
	return result, nil
}

func (s *ReservationService) checkBounds(now time.Time, rng domain.TimeRange) error {
	if rng.Duration() > s.maxDuration {
		return domain.ErrDurationTooLong
	}
	if !rng.Start.After(now) {
		return domain.ErrStartInPast
	}
	if rng.Start.Sub(now) > s.maxAdvance {
		return domain.ErrStartTooFarAhead
	}
	return nil
}

func (s *ReservationService) publish(ctx context.Context, eventType string, actor domain.Actor, res domain.Reservation) {
	s.events.Publish(ctx, events.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		SpaceID:       res.SpaceID,
		OwnerID:       res.OwnerID,
		ActorID:       actor.ID,
		Status:        string(res.Status),
		Start:         res.Start,
		End:           res.End,
		At:            s.clock.Now(),
	})
}
