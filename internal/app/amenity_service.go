package app

import (
	"context"
	"strings"

	"github.com/oguarni/web-2-sub000/internal/audit"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

type AmenityRepository interface {
	CreateAmenity(ctx context.Context, amenity domain.Amenity) (domain.Amenity, error)
	UpdateAmenity(ctx context.Context, amenity domain.Amenity) (domain.Amenity, error)
	DeleteAmenity(ctx context.Context, id int64) error
	FindAmenityByID(ctx context.Context, id int64) (*domain.Amenity, error)
	ListAmenities(ctx context.Context) ([]domain.Amenity, error)
}

// AmenityService manages the amenity catalog: reference data, curated by
// admins and managers, readable by everyone.
type AmenityService struct {
	repo   AmenityRepository
	policy domain.AccessPolicy
	audit  audit.Recorder
}

func NewAmenityService(repo AmenityRepository, rec audit.Recorder) *AmenityService {
	return &AmenityService{repo: repo, audit: rec}
}

type AmenityInput struct {
	Name        string
	Description string
}

func (s *AmenityService) Create(ctx context.Context, actor domain.Actor, in AmenityInput) (domain.Amenity, error) {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return domain.Amenity{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Amenity{}, domain.ErrAmenityNameRequired
	}

	amenity, err := s.repo.CreateAmenity(ctx, domain.Amenity{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
	if err != nil {
		return domain.Amenity{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionCreateAmenity, map[string]any{"amenity_id": amenity.ID, "name": amenity.Name})
	return amenity, nil
}

func (s *AmenityService) Update(ctx context.Context, actor domain.Actor, id int64, in AmenityInput) (domain.Amenity, error) {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return domain.Amenity{}, err
	}

	existing, err := s.repo.FindAmenityByID(ctx, id)
	if err != nil {
		return domain.Amenity{}, err
	}
	if existing == nil {
		return domain.Amenity{}, domain.ErrAmenityNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Amenity{}, domain.ErrAmenityNameRequired
	}

	updated := *existing
	updated.Name = strings.TrimSpace(in.Name)
	updated.Description = in.Description

	saved, err := s.repo.UpdateAmenity(ctx, updated)
	if err != nil {
		return domain.Amenity{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionUpdateAmenity, map[string]any{"amenity_id": saved.ID})
	return saved, nil
}

func (s *AmenityService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.policy.CanManageSpaces(actor); err != nil {
		return err
	}

	existing, err := s.repo.FindAmenityByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrAmenityNotFound
	}

	if err := s.repo.DeleteAmenity(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionDeleteAmenity, map[string]any{"amenity_id": id})
	return nil
}

func (s *AmenityService) List(ctx context.Context) ([]domain.Amenity, error) {
	return s.repo.ListAmenities(ctx)
}
