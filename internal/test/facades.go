package test

import (
	"context"
	"sync"
	"time"

	"github.com/garmentix/marketplace/internal/adapter/checkout"
	"github.com/garmentix/marketplace/internal/adapter/images"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
	"github.com/garmentix/marketplace/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, error)
	ResolveFn      func(context.Context, string) (lifecycle.Actor, error)
	UserFn         func(context.Context, string) (*model.User, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, displayName, loginMethod string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, displayName, loginMethod)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns the stored email for an authenticated session.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "buyer@example.com", nil
}

// ResolveActor builds the lifecycle actor for the given email.
func (s AuthFacadeStub) ResolveActor(ctx context.Context, email string) (lifecycle.Actor, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, email)
	}
	return lifecycle.Actor{Email: email, Role: model.RoleBuyer, Status: model.UserStatusActive}, nil
}

// UserByEmail returns the configured account record.
func (s AuthFacadeStub) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, email)
	}
	return &model.User{Email: email, Role: model.RoleBuyer, Status: model.UserStatusActive}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn          func(context.Context, lifecycle.Actor, usecase.OrderDraft) (*model.Order, error)
	OrdersFn         func(context.Context, lifecycle.Actor, repository.OrderFilter) ([]model.Order, error)
	OrderFn          func(context.Context, lifecycle.Actor, string) (*model.Order, error)
	ApproveFn        func(context.Context, lifecycle.Actor, string) (*model.Order, error)
	RejectFn         func(context.Context, lifecycle.Actor, string) (*model.Order, error)
	AdminSetFn       func(context.Context, lifecycle.Actor, string, model.OrderStatus) (*model.Order, error)
	CancelFn         func(context.Context, lifecycle.Actor, string) (int64, error)
	CashFn           func(context.Context, lifecycle.Actor, string) (*model.Order, error)
	AppendTrackingFn func(context.Context, lifecycle.Actor, string, usecase.TrackingDraft) (*model.TrackingEvent, error)
	TrackingFn       func(context.Context, string) ([]model.TrackingEvent, error)
}

// PlaceOrder delegates to the override or returns a pending order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, actor lifecycle.Actor, draft usecase.OrderDraft) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, actor, draft)
	}
	return &model.Order{ID: "order-1", Email: actor.Email, ProductID: draft.ProductID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusUnpaid}, nil
}

// Orders returns predefined orders for the actor.
func (s OrderFacadeStub) Orders(ctx context.Context, actor lifecycle.Actor, filter repository.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor, filter)
	}
	return []model.Order{{ID: "order-1", Email: actor.Email, Status: model.OrderStatusPending}}, nil
}

// Order returns one configured order.
func (s OrderFacadeStub) Order(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Email: actor.Email, Status: model.OrderStatusPending}, nil
}

// ApproveOrder delegates or returns an approved order.
func (s OrderFacadeStub) ApproveOrder(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusApproved}, nil
}

// RejectOrder delegates or returns a rejected order.
func (s OrderFacadeStub) RejectOrder(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusRejected}, nil
}

// AdminSetOrderStatus delegates or echoes the target status.
func (s OrderFacadeStub) AdminSetOrderStatus(ctx context.Context, actor lifecycle.Actor, id string, target model.OrderStatus) (*model.Order, error) {
	if s.AdminSetFn != nil {
		return s.AdminSetFn(ctx, actor, id, target)
	}
	return &model.Order{ID: id, Status: target}, nil
}

// CancelOrder delegates or reports one deleted row.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor lifecycle.Actor, id string) (int64, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, id)
	}
	return 1, nil
}

// SelectCashOnDelivery delegates or marks the order cash-on-delivery.
func (s OrderFacadeStub) SelectCashOnDelivery(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	if s.CashFn != nil {
		return s.CashFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusCODPending, PaymentMethod: model.PaymentMethodCashOnDelivery}, nil
}

// AppendTracking delegates or echoes the draft.
func (s OrderFacadeStub) AppendTracking(ctx context.Context, actor lifecycle.Actor, orderID string, draft usecase.TrackingDraft) (*model.TrackingEvent, error) {
	if s.AppendTrackingFn != nil {
		return s.AppendTrackingFn(ctx, actor, orderID, draft)
	}
	return &model.TrackingEvent{OrderID: orderID, Status: draft.Status, Location: draft.Location, Note: draft.Note, Timestamp: time.Unix(0, 0), UpdatedBy: actor.Email}, nil
}

// OrderTracking delegates or returns a single-entry timeline.
func (s OrderFacadeStub) OrderTracking(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	if s.TrackingFn != nil {
		return s.TrackingFn(ctx, orderID)
	}
	return []model.TrackingEvent{{OrderID: orderID, Status: "Cutting Completed", Timestamp: time.Unix(0, 0)}}, nil
}

// PaymentFacadeStub simulates the checkout bridge.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, lifecycle.Actor, string) (string, error)
	ConfirmFn  func(context.Context, string) (*usecase.Receipt, error)
}

// InitiateCheckout returns a redirect URL.
func (s PaymentFacadeStub) InitiateCheckout(ctx context.Context, actor lifecycle.Actor, orderID string) (string, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, actor, orderID)
	}
	return "https://checkout.example.com/session", nil
}

// ConfirmPayment returns a settled receipt.
func (s PaymentFacadeStub) ConfirmPayment(ctx context.Context, sessionID string) (*usecase.Receipt, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, sessionID)
	}
	return &usecase.Receipt{TransactionID: "txn-1", TrackingID: "trk-1"}, nil
}

// ProductFacadeStub simulates catalog operations.
type ProductFacadeStub struct {
	CreateFn   func(context.Context, lifecycle.Actor, usecase.ProductDraft) (*model.Product, error)
	ProductFn  func(context.Context, string) (*model.Product, error)
	ProductsFn func(context.Context, repository.ProductFilter) ([]model.Product, error)
	UpdateFn   func(context.Context, lifecycle.Actor, *model.Product) error
	DeleteFn   func(context.Context, lifecycle.Actor, string) error
}

// CreateProduct delegates or echoes the draft.
func (s ProductFacadeStub) CreateProduct(ctx context.Context, actor lifecycle.Actor, draft usecase.ProductDraft) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, draft)
	}
	return &model.Product{ID: "product-1", ManagerEmail: actor.Email, ProductName: draft.ProductName, Price: draft.Price}, nil
}

// Product returns one configured product.
func (s ProductFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, ProductName: "Denim Jacket"}, nil
}

// Products returns a fixed catalog.
func (s ProductFacadeStub) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{{ID: "product-1", ProductName: "Denim Jacket"}}, nil
}

// UpdateProduct delegates or succeeds.
func (s ProductFacadeStub) UpdateProduct(ctx context.Context, actor lifecycle.Actor, product *model.Product) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actor, product)
	}
	return nil
}

// DeleteProduct delegates or succeeds.
func (s ProductFacadeStub) DeleteProduct(ctx context.Context, actor lifecycle.Actor, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

// UserFacadeStub simulates admin account management.
type UserFacadeStub struct {
	UsersFn  func(context.Context, lifecycle.Actor) ([]model.User, error)
	SetFn    func(context.Context, lifecycle.Actor, string, model.Role, model.UserStatus) error
	DeleteFn func(context.Context, lifecycle.Actor, string) error
}

// Users returns stored accounts.
func (s UserFacadeStub) Users(ctx context.Context, actor lifecycle.Actor) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, actor)
	}
	return []model.User{{Email: "buyer@example.com", Role: model.RoleBuyer, Status: model.UserStatusActive}}, nil
}

// SetUserRoleStatus delegates or succeeds.
func (s UserFacadeStub) SetUserRoleStatus(ctx context.Context, actor lifecycle.Actor, email string, role model.Role, status model.UserStatus) error {
	if s.SetFn != nil {
		return s.SetFn(ctx, actor, email, role, status)
	}
	return nil
}

// DeleteUser delegates or succeeds.
func (s UserFacadeStub) DeleteUser(ctx context.Context, actor lifecycle.Actor, email string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, email)
	}
	return nil
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	ProductFacadeStub
	UserFacadeStub
}

// WorkerFacadeStub mimics reconciler interactions with the payment facade.
type WorkerFacadeStub struct {
	Batches     [][]model.Order
	OrdersFn    func(context.Context, int) ([]model.Order, error)
	ReconcileFn func(context.Context, string) error

	mu         sync.Mutex
	batchIdx   int
	Reconciled []string
}

// OrdersForReconciliation serves configured batches one by one.
func (s *WorkerFacadeStub) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batchIdx >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.batchIdx]
	s.batchIdx++
	return batch, nil
}

// ReconcileSession records the session and delegates to the override.
func (s *WorkerFacadeStub) ReconcileSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	s.Reconciled = append(s.Reconciled, sessionID)
	s.mu.Unlock()
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, sessionID)
	}
	return nil
}

// CheckoutClientStub simulates the external checkout provider.
type CheckoutClientStub struct {
	CreateFn  func(context.Context, checkout.SessionRequest) (*model.CheckoutSession, error)
	ConfirmFn func(context.Context, string) (*model.CheckoutConfirmation, error)
}

// CreateSession delegates or returns a fixed session.
func (s CheckoutClientStub) CreateSession(ctx context.Context, req checkout.SessionRequest) (*model.CheckoutSession, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.CheckoutSession{ID: "sess-1", URL: "https://checkout.example.com/sess-1"}, nil
}

// ConfirmSession delegates or reports the session as paid.
func (s CheckoutClientStub) ConfirmSession(ctx context.Context, sessionID string) (*model.CheckoutConfirmation, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, sessionID)
	}
	return &model.CheckoutConfirmation{SessionID: sessionID, TransactionID: "txn-1", Paid: true}, nil
}

// UploaderStub simulates the image hosting client.
type UploaderStub struct {
	UploadFn func(context.Context, string, []byte) (string, error)
}

// Upload delegates or returns a hosted URL.
func (s UploaderStub) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, name, data)
	}
	return "https://images.example.com/" + name, nil
}

var _ checkout.Client = CheckoutClientStub{}
var _ images.Uploader = UploaderStub{}
