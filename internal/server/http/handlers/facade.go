package handlers

import (
	"context"

	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	"github.com/garmentix/marketplace/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, displayName, loginMethod string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (string, error)
	ResolveActor(ctx context.Context, email string) (lifecycle.Actor, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, actor lifecycle.Actor, draft usecase.OrderDraft) (*model.Order, error)
	Orders(ctx context.Context, actor lifecycle.Actor, filter repository.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error)
	ApproveOrder(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error)
	RejectOrder(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error)
	AdminSetOrderStatus(ctx context.Context, actor lifecycle.Actor, id string, target model.OrderStatus) (*model.Order, error)
	CancelOrder(ctx context.Context, actor lifecycle.Actor, id string) (int64, error)
	SelectCashOnDelivery(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error)
	AppendTracking(ctx context.Context, actor lifecycle.Actor, orderID string, draft usecase.TrackingDraft) (*model.TrackingEvent, error)
	OrderTracking(ctx context.Context, orderID string) ([]model.TrackingEvent, error)
}

// PaymentFacade bridges orders to the external checkout provider.
type PaymentFacade interface {
	InitiateCheckout(ctx context.Context, actor lifecycle.Actor, orderID string) (string, error)
	ConfirmPayment(ctx context.Context, sessionID string) (*usecase.Receipt, error)
}

// ProductFacade manages the catalog.
type ProductFacade interface {
	CreateProduct(ctx context.Context, actor lifecycle.Actor, draft usecase.ProductDraft) (*model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	UpdateProduct(ctx context.Context, actor lifecycle.Actor, product *model.Product) error
	DeleteProduct(ctx context.Context, actor lifecycle.Actor, id string) error
}

// UserFacade provides account administration.
type UserFacade interface {
	Users(ctx context.Context, actor lifecycle.Actor) ([]model.User, error)
	SetUserRoleStatus(ctx context.Context, actor lifecycle.Actor, email string, role model.Role, status model.UserStatus) error
	DeleteUser(ctx context.Context, actor lifecycle.Actor, email string) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
	ProductFacade
	UserFacade
}
