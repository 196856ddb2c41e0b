package repository

import (
	"context"

	"github.com/garmentix/marketplace/internal/domain/model"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	ManagerEmail string
	ShowOnHome   *bool
}

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}
