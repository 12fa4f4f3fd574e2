package app

import (
	"context"
	"strings"
	"time"

	"github.com/oguarni/web-2-sub000/internal/audit"
	"github.com/oguarni/web-2-sub000/internal/clock"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

type SpaceRepository interface {
	CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error)
	UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error)
	DeleteSpace(ctx context.Context, id int64) error
	FindSpaceByID(ctx context.Context, id int64) (*domain.Space, error)
	ListSpaces(ctx context.Context, includeInactive bool) ([]domain.Space, error)
	CountActiveReservations(ctx context.Context, spaceID int64, now time.Time) (int, error)
	ReplaceSpaceAmenities(ctx context.Context, spaceID int64, amenityIDs []int64) error
	ListSpaceAmenities(ctx context.Context, spaceID int64) ([]domain.Amenity, error)
}

// SpaceService curates bookable spaces. Mutations are restricted to admins
// and managers; plain users only ever see active spaces.
type SpaceService struct {
	repo   SpaceRepository
	policy domain.AccessPolicy
	clock  clock.Clock
	audit  audit.Recorder
}

func NewSpaceService(repo SpaceRepository, clk clock.Clock, rec audit.Recorder) *SpaceService {
	return &SpaceService{repo: repo, clock: clk, audit: rec}
}

type CreateSpaceInput struct {
	Name      string
	Capacity  int
	Location  string
	Equipment string
	Active    *bool
}

func (s *SpaceService) Create(ctx context.Context, actor domain.Actor, in CreateSpaceInput) (domain.Space, error) {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return domain.Space{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Space{}, domain.ErrSpaceNameRequired
	}
	if in.Capacity <= 0 {
		return domain.Space{}, domain.ErrInvalidCapacity
	}
	if strings.TrimSpace(in.Location) == "" {
		return domain.Space{}, domain.ErrLocationRequired
	}

	now := s.clock.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	space, err := s.repo.CreateSpace(ctx, domain.Space{
		Name:      strings.TrimSpace(in.Name),
		Capacity:  in.Capacity,
		Location:  strings.TrimSpace(in.Location),
		Equipment: in.Equipment,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Space{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionCreateSpace, map[string]any{"space_id": space.ID, "name": space.Name})
	return space, nil
}

type UpdateSpaceInput struct {
	Name      *string
	Capacity  *int
	Location  *string
	Equipment *string
	Active    *bool
}

func (s *SpaceService) Update(ctx context.Context, actor domain.Actor, id int64, in UpdateSpaceInput) (domain.Space, error) {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return domain.Space{}, err
	}

	space, err := s.repo.FindSpaceByID(ctx, id)
	if err != nil {
		return domain.Space{}, err
	}
	if space == nil {
		return domain.Space{}, domain.ErrSpaceNotFound
	}

	updated := *space
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return domain.Space{}, domain.ErrSpaceNameRequired
		}
		updated.Name = strings.TrimSpace(*in.Name)
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return domain.Space{}, domain.ErrInvalidCapacity
		}
		updated.Capacity = *in.Capacity
	}
	if in.Location != nil {
		if strings.TrimSpace(*in.Location) == "" {
			return domain.Space{}, domain.ErrLocationRequired
		}
		updated.Location = strings.TrimSpace(*in.Location)
	}
	if in.Equipment != nil {
		updated.Equipment = *in.Equipment
	}
	if in.Active != nil {
		updated.Active = *in.Active
	}
	updated.UpdatedAt = s.clock.Now()

	saved, err := s.repo.UpdateSpace(ctx, updated)
	if err != nil {
		return domain.Space{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionUpdateSpace, map[string]any{"space_id": saved.ID})
	return saved, nil
}

// Delete removes a space, refused while any pending or confirmed reservation
// on it still ends in the future.
func (s *SpaceService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return err
	}

	space, err := s.repo.FindSpaceByID(ctx, id)
	if err != nil {
		return err
	}
	if space == nil {
		return domain.ErrSpaceNotFound
	}

	count, err := s.repo.CountActiveReservations(ctx, id, s.clock.Now())
	if err != nil {
		return err
	}
	if err := s.policy.CanDeleteSpace(count); err != nil {
		return err
	}

	if err := s.repo.DeleteSpace(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionDeleteSpace, map[string]any{"space_id": id, "name": space.Name})
	return nil
}

func (s *SpaceService) Get(ctx context.Context, actor domain.Actor, id int64) (domain.Space, error) {
	space, err := s.repo.FindSpaceByID(ctx, id)
	if err != nil {
		return domain.Space{}, err
	}
	if space == nil {
		return domain.Space{}, domain.ErrSpaceNotFound
	}
	if !space.Active && !s.policy.CanSeeInactiveSpaces(actor) {
		return domain.Space{}, domain.ErrSpaceNotFound
	}
	return *space, nil
}

func (s *SpaceService) List(ctx context.Context, actor domain.Actor) ([]domain.Space, error) {
	return s.repo.ListSpaces(ctx, s.policy.CanSeeInactiveSpaces(actor))
}

// SetAmenities replaces the amenity association of a space.
func (s *SpaceService) SetAmenities(ctx context.Context, actor domain.Actor, spaceID int64, amenityIDs []int64) ([]domain.Amenity, error) {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return nil, err
	}

	space, err := s.repo.FindSpaceByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, domain.ErrSpaceNotFound
	}

	if err := s.repo.ReplaceSpaceAmenities(ctx, spaceID, amenityIDs); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionSetSpaceAmenities, map[string]any{
		"space_id":    spaceID,
		"amenity_ids": amenityIDs,
	})
	return s.repo.ListSpaceAmenities(ctx, spaceID)
}

func (s *SpaceService) Amenities(ctx context.Context, actor domain.Actor, spaceID int64) ([]domain.Amenity, error) {
	if _, err := s.Get(ctx, actor, spaceID); err != nil {
		return nil, err
	}
	return s.repo.ListSpaceAmenities(ctx, spaceID)
}
