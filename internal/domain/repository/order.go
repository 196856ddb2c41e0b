package repository

import (
	"context"
	"time"

	"github.com/garmentix/marketplace/internal/domain/model"
)

// OrderFilter narrows order listings. ManagerEmail matches orders whose
// product is owned by that manager.
type OrderFilter struct {
	Email        string
	Status       model.OrderStatus
	ManagerEmail string
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetByCheckoutSession(ctx context.Context, sessionID string) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, approvedAt, rejectedAt *time.Time) error
	UpdatePayment(ctx context.Context, id string, status model.PaymentStatus, method, transactionID, trackingID string) error
	SetCheckoutSession(ctx context.Context, id, sessionID string) error
	Delete(ctx context.Context, id string) (int64, error)
	SelectUnreconciled(ctx context.Context, limit int) ([]model.Order, error)
}
