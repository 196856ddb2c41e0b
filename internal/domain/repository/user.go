package repository

import (
	"context"

	"github.com/garmentix/marketplace/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRoleStatus(ctx context.Context, email string, role model.Role, status model.UserStatus) error
	Delete(ctx context.Context, email string) error
}
