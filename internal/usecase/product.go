package usecase

import (
	"context"
	"errors"

	"github.com/garmentix/marketplace/internal/adapter/images"
	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
)

// ProductDraft carries manager-supplied fields for a new or updated product.
type ProductDraft struct {
	ProductName       string
	Category          string
	Description       string
	Price             float64
	AvailableQuantity int
	MinimumOrder      int
	PaymentOptions    []string
	ShowOnHome        bool
	ImageURL          string
	ImageData         []byte
	ImageName         string
}

// ProductUseCase manages the catalog.
type ProductUseCase struct {
	products repository.ProductRepository
	uploader images.Uploader
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository, uploader images.Uploader) *ProductUseCase {
	return &ProductUseCase{products: products, uploader: uploader}
}

// Create lists a new product for the manager. Raw image bytes, when present,
// are pushed to the hosting service first and only the resulting URL is
// stored.
func (u *ProductUseCase) Create(ctx context.Context, actor lifecycle.Actor, draft ProductDraft) (*model.Product, error) {
	if actor.Role != model.RoleManager && actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrRoleNotAllowed
	}
	if actor.Status == model.UserStatusSuspended {
		return nil, domainErrors.ErrAccountSuspended
	}

	imageURL := draft.ImageURL
	if len(draft.ImageData) > 0 {
		uploaded, err := u.uploader.Upload(ctx, draft.ImageName, draft.ImageData)
		if err != nil {
			if errors.Is(err, images.ErrNotConfigured) && imageURL != "" {
				uploaded = imageURL
			} else {
				return nil, err
			}
		}
		imageURL = uploaded
	}

	return u.products.Create(ctx, &model.Product{
		ManagerEmail:      actor.Email,
		ProductName:       draft.ProductName,
		Image:             imageURL,
		Category:          draft.Category,
		Description:       draft.Description,
		Price:             draft.Price,
		AvailableQuantity: draft.AvailableQuantity,
		MinimumOrder:      draft.MinimumOrder,
		PaymentOptions:    draft.PaymentOptions,
		ShowOnHome:        draft.ShowOnHome,
	})
}

// Get fetches one product.
func (u *ProductUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns catalog entries matching the filter.
func (u *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

// Update rewrites mutable product fields. Only the owning manager or an
// admin may update.
func (u *ProductUseCase) Update(ctx context.Context, actor lifecycle.Actor, product *model.Product) error {
	existing, err := u.products.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin && existing.ManagerEmail != actor.Email {
		return domainErrors.ErrRoleNotAllowed
	}
	return u.products.Update(ctx, product)
}

// Delete removes a product. Only the owning manager or an admin may delete.
func (u *ProductUseCase) Delete(ctx context.Context, actor lifecycle.Actor, id string) error {
	existing, err := u.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin && existing.ManagerEmail != actor.Email {
		return domainErrors.ErrRoleNotAllowed
	}
	return u.products.Delete(ctx, id)
}
