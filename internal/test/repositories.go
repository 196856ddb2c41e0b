package test

import (
	"context"
	"strconv"
	"time"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
)

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized map.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

// Create registers a user unless one exists or the stub carries an error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	stored.CreatedAt = time.Now().UTC()
	s.Users[user.Email] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored account.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, *u)
	}
	return users, nil
}

// UpdateRoleStatus rewrites role and status on an existing account.
func (s *UserRepositoryStub) UpdateRoleStatus(ctx context.Context, email string, role model.Role, status model.UserStatus) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.Users[email]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	user.Status = status
	return nil
}

// Delete removes an account.
func (s *UserRepositoryStub) Delete(ctx context.Context, email string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Users[email]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Users, email)
	return nil
}

// ProductRepositoryStub stores catalog entries in-memory for tests.
type ProductRepositoryStub struct {
	Products map[string]*model.Product
	Next     int
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[string]*model.Product), Next: 1}
}

// Create stores the product under a generated id.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[string]*model.Product)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *product
	stored.ID = "product-" + strconv.Itoa(s.Next)
	stored.CreatedAt = time.Now().UTC()
	s.Next++
	s.Products[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches product by id or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns products matching the filter.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	products := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if filter.ManagerEmail != "" && p.ManagerEmail != filter.ManagerEmail {
			continue
		}
		if filter.ShowOnHome != nil && p.ShowOnHome != *filter.ShowOnHome {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

// Update rewrites a stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.Products[product.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	updated := *product
	updated.ManagerEmail = existing.ManagerEmail
	updated.CreatedAt = existing.CreatedAt
	s.Products[product.ID] = &updated
	return nil
}

// Delete removes a product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour. Unset functions
// fall back to an in-memory map.
type OrderRepositoryStub struct {
	GetByIDFn            func(context.Context, string) (*model.Order, error)
	ListFn               func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateStatusFn       func(context.Context, string, model.OrderStatus, *time.Time, *time.Time) error
	UpdatePaymentFn      func(context.Context, string, model.PaymentStatus, string, string, string) error
	DeleteFn             func(context.Context, string) (int64, error)
	SelectUnreconciledFn func(context.Context, int) ([]model.Order, error)

	Orders map[string]*model.Order
	Next   int
	Err    error

	PaymentCalls []PaymentCall
	StatusCalls  []StatusCall
}

// PaymentCall records one UpdatePayment invocation.
type PaymentCall struct {
	OrderID       string
	Status        model.PaymentStatus
	Method        string
	TransactionID string
	TrackingID    string
}

// StatusCall records one UpdateStatus invocation.
type StatusCall struct {
	OrderID    string
	Status     model.OrderStatus
	ApprovedAt *time.Time
	RejectedAt *time.Time
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), Next: 1}
}

// Seed stores an order under its id for later lookups.
func (s *OrderRepositoryStub) Seed(order *model.Order) {
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	s.Orders[order.ID] = order
}

// Create stores the order under a generated id.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = "order-" + strconv.Itoa(s.Next)
	s.Next++
	s.Orders[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches order by id or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByCheckoutSession fetches the order holding the given session id.
func (s *OrderRepositoryStub) GetByCheckoutSession(ctx context.Context, sessionID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, order := range s.Orders {
		if order.CheckoutSessionID == sessionID {
			return order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns orders matching the filter.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	orders := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if filter.Email != "" && o.Email != filter.Email {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

// UpdateStatus rewrites status and transition timestamps.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, approvedAt, rejectedAt *time.Time) error {
	s.StatusCalls = append(s.StatusCalls, StatusCall{OrderID: id, Status: status, ApprovedAt: approvedAt, RejectedAt: rejectedAt})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, approvedAt, rejectedAt)
	}
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	if approvedAt != nil {
		order.ApprovedAt = approvedAt
	}
	if rejectedAt != nil {
		order.RejectedAt = rejectedAt
	}
	return nil
}

// UpdatePayment rewrites the payment channel fields.
func (s *OrderRepositoryStub) UpdatePayment(ctx context.Context, id string, status model.PaymentStatus, method, transactionID, trackingID string) error {
	s.PaymentCalls = append(s.PaymentCalls, PaymentCall{OrderID: id, Status: status, Method: method, TransactionID: transactionID, TrackingID: trackingID})
	if s.UpdatePaymentFn != nil {
		return s.UpdatePaymentFn(ctx, id, status, method, transactionID, trackingID)
	}
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PaymentStatus = status
	if method != "" {
		order.PaymentMethod = method
	}
	if transactionID != "" {
		order.TransactionID = transactionID
	}
	if trackingID != "" {
		order.TrackingID = trackingID
	}
	return nil
}

// SetCheckoutSession remembers the provider session id on the order.
func (s *OrderRepositoryStub) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.CheckoutSessionID = sessionID
	return nil
}

// Delete removes an order and reports how many rows went away.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) (int64, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.Orders[id]; !ok {
		return 0, nil
	}
	delete(s.Orders, id)
	return 1, nil
}

// SelectUnreconciled returns orders with open checkout sessions.
func (s *OrderRepositoryStub) SelectUnreconciled(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectUnreconciledFn != nil {
		return s.SelectUnreconciledFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	orders := make([]model.Order, 0)
	for _, o := range s.Orders {
		if o.CheckoutSessionID != "" && !o.PaymentStatus.Paid() {
			orders = append(orders, *o)
		}
		if limit > 0 && len(orders) == limit {
			break
		}
	}
	return orders, nil
}

// TrackingRepositoryStub stores timeline entries in-memory for tests.
type TrackingRepositoryStub struct {
	Events map[string][]model.TrackingEvent
	Err    error
}

// NewTrackingRepositoryStub constructs stub repository with initialized map.
func NewTrackingRepositoryStub() *TrackingRepositoryStub {
	return &TrackingRepositoryStub{Events: make(map[string][]model.TrackingEvent)}
}

// Append stores the event at the end of the order's timeline.
func (s *TrackingRepositoryStub) Append(ctx context.Context, event *model.TrackingEvent) (*model.TrackingEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Events == nil {
		s.Events = make(map[string][]model.TrackingEvent)
	}
	stored := *event
	stored.Seq = len(s.Events[event.OrderID]) + 1
	s.Events[event.OrderID] = append(s.Events[event.OrderID], stored)
	return &stored, nil
}

// ListByOrder returns the timeline in append order.
func (s *TrackingRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Events[orderID], nil
}
