package usecase

import (
	"context"
	"time"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
)

// OrderDraft carries the buyer-supplied fields for a new order.
type OrderDraft struct {
	ProductID       string
	OrderQuantity   int
	TotalPrice      float64
	FirstName       string
	LastName        string
	ContactNumber   string
	DeliveryAddress string
	AdditionalNotes string
}

// TrackingDraft carries the manager-supplied fields for a timeline entry.
type TrackingDraft struct {
	Status   string
	Location string
	Note     string
}

// OrderUseCase encapsulates the order lifecycle. All status transitions go
// through the lifecycle transition table; this type only loads state,
// delegates the decision, and persists the outcome.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	tracking repository.TrackingRepository
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, tracking repository.TrackingRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, tracking: tracking, now: time.Now}
}

// Place creates a new pending order for the buyer. Quantity bounds and the
// total price are validated against the product before anything is written;
// immutable snapshot fields (name, image, price, payment options) are copied
// from the product at this moment and never refreshed.
func (u *OrderUseCase) Place(ctx context.Context, actor lifecycle.Actor, draft OrderDraft) (*model.Order, error) {
	if actor.Role != model.RoleBuyer {
		return nil, domainErrors.ErrRoleNotAllowed
	}
	if actor.Status == model.UserStatusSuspended {
		return nil, domainErrors.ErrAccountSuspended
	}

	product, err := u.products.GetByID(ctx, draft.ProductID)
	if err != nil {
		return nil, err
	}

	if draft.OrderQuantity < product.MinimumOrder || draft.OrderQuantity > product.AvailableQuantity {
		return nil, domainErrors.ErrQuantityOutOfRange
	}

	total := float64(draft.OrderQuantity) * product.Price
	if draft.TotalPrice != 0 && draft.TotalPrice != total {
		return nil, domainErrors.ErrPriceMismatch
	}

	order := &model.Order{
		Email:           actor.Email,
		ProductID:       product.ID,
		ProductName:     product.ProductName,
		ProductImage:    product.Image,
		Category:        product.Category,
		PricePerUnit:    product.Price,
		OrderQuantity:   draft.OrderQuantity,
		TotalPrice:      total,
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		ContactNumber:   draft.ContactNumber,
		DeliveryAddress: draft.DeliveryAddress,
		AdditionalNotes: draft.AdditionalNotes,
		PaymentOptions:  product.PaymentOptions,
		OrderDate:       u.now().UTC(),
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusUnpaid,
	}

	return u.orders.Create(ctx, order)
}

// List returns orders visible to the actor. Buyers are always scoped to
// their own orders; managers to orders on their products; admins see all.
func (u *OrderUseCase) List(ctx context.Context, actor lifecycle.Actor, filter repository.OrderFilter) ([]model.Order, error) {
	switch actor.Role {
	case model.RoleBuyer:
		filter.Email = actor.Email
		filter.ManagerEmail = ""
	case model.RoleManager:
		filter.ManagerEmail = actor.Email
	}
	return u.orders.List(ctx, filter)
}

// Get fetches one order; buyers may only read their own.
func (u *OrderUseCase) Get(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleBuyer && order.Email != actor.Email {
		return nil, domainErrors.ErrNotOrderOwner
	}
	return order, nil
}

// Approve moves a pending order to Approved and stamps approvedAt.
func (u *OrderUseCase) Approve(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	return u.transition(ctx, actor, id, lifecycle.ActionApprove, "")
}

// Reject moves a pending order to Rejected and stamps rejectedAt. Rejected
// is a dead-end state.
func (u *OrderUseCase) Reject(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	return u.transition(ctx, actor, id, lifecycle.ActionReject, "")
}

// AdminSetStatus writes any status from the admin picker set, bypassing the
// guarded approval path.
func (u *OrderUseCase) AdminSetStatus(ctx context.Context, actor lifecycle.Actor, id string, target model.OrderStatus) (*model.Order, error) {
	return u.transition(ctx, actor, id, lifecycle.ActionAdminSetStatus, target)
}

func (u *OrderUseCase) transition(ctx context.Context, actor lifecycle.Actor, id string, action lifecycle.Action, target model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := lifecycle.Apply(lifecycle.Request{Action: action, Actor: actor, Order: order, TargetStatus: target})
	if err != nil {
		return nil, err
	}

	var approvedAt, rejectedAt *time.Time
	now := u.now().UTC()
	if result.SetApprovedAt {
		approvedAt = &now
	}
	if result.SetRejectedAt {
		rejectedAt = &now
	}

	if err := u.orders.UpdateStatus(ctx, id, result.Status, approvedAt, rejectedAt); err != nil {
		return nil, err
	}

	// Re-fetch rather than predicting the stored row.
	return u.orders.GetByID(ctx, id)
}

// Cancel hard-deletes a pending unpaid order on behalf of its buyer and
// returns the deletion count.
func (u *OrderUseCase) Cancel(ctx context.Context, actor lifecycle.Actor, id string) (int64, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	result, err := lifecycle.Apply(lifecycle.Request{Action: lifecycle.ActionCancel, Actor: actor, Order: order})
	if err != nil {
		return 0, err
	}
	if !result.DeleteOrder {
		return 0, domainErrors.ErrInvalidTransition
	}

	return u.orders.Delete(ctx, id)
}

// SelectCashOnDelivery records the cash payment method on the order without
// involving the checkout provider.
func (u *OrderUseCase) SelectCashOnDelivery(ctx context.Context, actor lifecycle.Actor, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := lifecycle.Apply(lifecycle.Request{Action: lifecycle.ActionSelectCashOnDelivery, Actor: actor, Order: order})
	if err != nil {
		return nil, err
	}

	if err := u.orders.UpdatePayment(ctx, id, result.PaymentStatus, result.PaymentMethod, "", ""); err != nil {
		return nil, err
	}

	return u.orders.GetByID(ctx, id)
}

// AppendTracking adds a timeline entry to an approved order. The entry is
// stamped server-side; the order's own status is never touched.
func (u *OrderUseCase) AppendTracking(ctx context.Context, actor lifecycle.Actor, orderID string, draft TrackingDraft) (*model.TrackingEvent, error) {
	if draft.Status == "" {
		return nil, domainErrors.ErrInvalidTransition
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result, err := lifecycle.Apply(lifecycle.Request{Action: lifecycle.ActionAppendTracking, Actor: actor, Order: order})
	if err != nil {
		return nil, err
	}
	if !result.AppendEvent {
		return nil, domainErrors.ErrInvalidTransition
	}

	return u.tracking.Append(ctx, &model.TrackingEvent{
		OrderID:   orderID,
		Status:    draft.Status,
		Location:  draft.Location,
		Note:      draft.Note,
		Timestamp: u.now().UTC(),
		UpdatedBy: actor.Email,
	})
}

// Tracking returns the order's timeline in append order.
func (u *OrderUseCase) Tracking(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	return u.tracking.ListByOrder(ctx, orderID)
}
