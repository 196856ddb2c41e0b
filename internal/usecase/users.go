package usecase

import (
	"context"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
)

// UserAdminUseCase covers admin account management.
type UserAdminUseCase struct {
	users repository.UserRepository
}

// NewUserAdminUseCase constructs UserAdminUseCase.
func NewUserAdminUseCase(users repository.UserRepository) *UserAdminUseCase {
	return &UserAdminUseCase{users: users}
}

// List returns every account; admin only.
func (u *UserAdminUseCase) List(ctx context.Context, actor lifecycle.Actor) ([]model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrRoleNotAllowed
	}
	return u.users.List(ctx)
}

// SetRoleStatus rewrites an account's role and status; admin only.
func (u *UserAdminUseCase) SetRoleStatus(ctx context.Context, actor lifecycle.Actor, email string, role model.Role, status model.UserStatus) error {
	if actor.Role != model.RoleAdmin {
		return domainErrors.ErrRoleNotAllowed
	}
	switch role {
	case model.RoleBuyer, model.RoleManager, model.RoleAdmin:
	default:
		return domainErrors.ErrRoleNotAllowed
	}
	switch status {
	case model.UserStatusActive, model.UserStatusSuspended, model.UserStatusPending:
	default:
		return domainErrors.ErrInvalidTransition
	}
	return u.users.UpdateRoleStatus(ctx, email, role, status)
}

// Delete removes an account; admin only.
func (u *UserAdminUseCase) Delete(ctx context.Context, actor lifecycle.Actor, email string) error {
	if actor.Role != model.RoleAdmin {
		return domainErrors.ErrRoleNotAllowed
	}
	return u.users.Delete(ctx, email)
}
