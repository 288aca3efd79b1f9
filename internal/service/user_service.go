package service

import (
	"context"
	"strings"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// UserService lets admins manage login accounts.
type UserService struct {
	users repository.UserRepository
}

// UserUpdateInput holds optional account changes.
type UserUpdateInput struct {
	Name   *string
	Role   *domain.Role
	Active *bool
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns accounts matching filter.
func (s *UserService) List(ctx context.Context, actor Actor, filter repository.UserFilter) ([]domain.User, int, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return users, total, nil
}

// Get fetches one account.
func (s *UserService) Get(ctx context.Context, actor Actor, id string) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// Update changes name, role or active flag. Admins cannot demote or deactivate themselves.
func (s *UserService) Update(ctx context.Context, actor Actor, id string, input UserUpdateInput) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}

	errs := fieldErrors{}
	if input.Name != nil {
		errs.require("name", *input.Name)
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		errs.check(input.Role.Valid(), "role", "must be one of admin, hr, employee")
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := errs.err("invalid user update"); err != nil {
		return nil, err
	}

	if user.ID == actor.User.ID && (user.Role != domain.RoleAdmin || !user.Active) {
		return nil, apperrors.NewConflict("admins cannot demote or deactivate themselves", nil)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
