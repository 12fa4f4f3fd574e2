package app

import (
	"context"

	"github.com/oguarni/web-2-sub000/internal/audit"
	"github.com/oguarni/web-2-sub000/internal/domain"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id int64, role domain.Role) (domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserService administers identities. Signup and credentials live in the
// external identity service; this covers the admin surface that gates
// reservation ownership.
type UserService struct {
	repo   UserRepository
	policy domain.AccessPolicy
	audit  audit.Recorder
}

func NewUserService(repo UserRepository, rec audit.Recorder) *UserService {
	return &UserService{repo: repo, audit: rec}
}

func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := s.policy.CanManageUsers(actor); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx)
}

// ChangeRole assigns a new role. An admin may not demote their own account.
func (s *UserService) ChangeRole(ctx context.Context, actor domain.Actor, id int64, role domain.Role) (domain.User, error) {
	if err := s.policy.CanManageUsers(actor); err != nil {
		return domain.User{}, err
	}
	if role != domain.RoleAdmin {
		if err := s.policy.CheckSelfProtection(actor, id); err != nil {
			return domain.User{}, err
		}
	}

	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	updated, err := s.repo.UpdateUserRole(ctx, id, role)
	if err != nil {
		return domain.User{}, err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionUpdateUserRole, map[string]any{
		"user_id": id,
		"role":    string(role),
	})
	return updated, nil
}

// Delete removes a user. An admin may not delete their own account.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.policy.CanManageUsers(actor); err != nil {
		return err
	}
	if err := s.policy.CheckSelfProtection(actor, id); err != nil {
		return err
	}

	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor.ID, audit.ActionDeleteUser, map[string]any{"user_id": id})
	return nil
}
