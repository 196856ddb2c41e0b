package app

import (
	"context"

	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	"github.com/garmentix/marketplace/internal/usecase"
)

// MarketplaceFacade aggregates the full set of operations used across
// handlers and the reconciliation worker.
type MarketplaceFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	products *usecase.ProductUseCase
	users    *usecase.UserAdminUseCase
	payments *usecase.PaymentUseCase
}

func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	products *usecase.ProductUseCase,
	users *usecase.UserAdminUseCase,
	payments *usecase.PaymentUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{auth: auth, orders: orders, products: products, users: users, payments: payments}
}

func (f *MarketplaceFacade) Register(ctx context.Context, email, password, displayName, loginMethod string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password, displayName, loginMethod)
	return token, err
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *MarketplaceFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) ResolveActor(ctx context.Context, email string) (lifecycle.Actor, error) {
	return f.auth.ResolveActor(ctx, email)
}

func (f *MarketplaceFacade) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.auth.GetByEmail(ctx, email)
}

func (f *MarketplaceFacade) PlaceOrder(ctx context.Context, actor lifecycle.Actor, draft usecase.OrderDraft) (*model.Order, error) {
	return f.orders.Place(ctx, actor, draft)
}

func (f *MarketplaceFacade) Orders(ctx context.Context, actor lifecycle.Actor, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, actor, filter)
}

func (f *MarketplaceFacade) Order(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *MarketplaceFacade) ApproveOrder(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	return f.orders.Approve(ctx, actor, id)
}

func (f *MarketplaceFacade) RejectOrder(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	return f.orders.Reject(ctx, actor, id)
}

func (f *MarketplaceFacade) AdminSetOrderStatus(ctx context.Context, actor lifecycle.Actor, id string, target model.OrderStatus) (*model.Order, error) {
	return f.orders.AdminSetStatus(ctx, actor, id, target)
}

func (f *MarketplaceFacade) CancelOrder(ctx context.Context, actor lifecycle.Actor, id string) (int64, error) {
	return f.orders.Cancel(ctx, actor, id)
}

func (f *MarketplaceFacade) SelectCashOnDelivery(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	return f.orders.SelectCashOnDelivery(ctx, actor, id)
}

func (f *MarketplaceFacade) AppendTracking(ctx context.Context, actor lifecycle.Actor, orderID string, draft usecase.TrackingDraft) (*model.TrackingEvent, error) {
	return f.orders.AppendTracking(ctx, actor, orderID, draft)
}

func (f *MarketplaceFacade) OrderTracking(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	return f.orders.Tracking(ctx, orderID)
}

func (f *MarketplaceFacade) InitiateCheckout(ctx context.Context, actor lifecycle.Actor, orderID string) (string, error) {
	return f.payments.Initiate(ctx, actor, orderID)
}

func (f *MarketplaceFacade) ConfirmPayment(ctx context.Context, sessionID string) (*usecase.Receipt, error) {
	return f.payments.Confirm(ctx, sessionID)
}

func (f *MarketplaceFacade) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return f.payments.UnreconciledOrders(ctx, limit)
}

func (f *MarketplaceFacade) ReconcileSession(ctx context.Context, sessionID string) error {
	_, err := f.payments.Confirm(ctx, sessionID)
	return err
}

func (f *MarketplaceFacade) CreateProduct(ctx context.Context, actor lifecycle.Actor, draft usecase.ProductDraft) (*model.Product, error) {
	return f.products.Create(ctx, actor, draft)
}

func (f *MarketplaceFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *MarketplaceFacade) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return f.products.List(ctx, filter)
}

func (f *MarketplaceFacade) UpdateProduct(ctx context.Context, actor lifecycle.Actor, product *model.Product) error {
	return f.products.Update(ctx, actor, product)
}

func (f *MarketplaceFacade) DeleteProduct(ctx context.Context, actor lifecycle.Actor, id string) error {
	return f.products.Delete(ctx, actor, id)
}

func (f *MarketplaceFacade) Users(ctx context.Context, actor lifecycle.Actor) ([]model.User, error) {
	return f.users.List(ctx, actor)
}

func (f *MarketplaceFacade) SetUserRoleStatus(ctx context.Context, actor lifecycle.Actor, email string, role model.Role, status model.UserStatus) error {
	return f.users.SetRoleStatus(ctx, actor, email, role, status)
}

func (f *MarketplaceFacade) DeleteUser(ctx context.Context, actor lifecycle.Actor, email string) error {
	return f.users.Delete(ctx, actor, email)
}
