package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/garmentix/marketplace/internal/adapter/checkout"
	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/lifecycle"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
)

// Receipt is the outcome of a payment confirmation. SupportNotice is set
// when the provider confirmed the charge but local bookkeeping failed: the
// charge is final, so the caller must still report success and advise the
// buyer to contact support.
type Receipt struct {
	TransactionID string
	TrackingID    string
	SupportNotice bool
}

// PaymentUseCase bridges the order lifecycle to the external checkout
// provider.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	provider checkout.Client
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, provider checkout.Client, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, provider: provider, logger: logger}
}

// Initiate opens a checkout session for the order and returns the redirect
// URL. Nothing on the order changes besides remembering the session id.
func (u *PaymentUseCase) Initiate(ctx context.Context, actor lifecycle.Actor, orderID string) (string, error) {
	if actor.Role != model.RoleBuyer {
		return "", domainErrors.ErrRoleNotAllowed
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Email != actor.Email {
		return "", domainErrors.ErrNotOrderOwner
	}
	if order.PaymentStatus.Paid() {
		return "", domainErrors.ErrOrderAlreadyPaid
	}

	name := strings.TrimSpace(order.FirstName + " " + order.LastName)
	if name == "" {
		name = order.Email
	}

	session, err := u.provider.CreateSession(ctx, checkout.SessionRequest{
		OrderID:     order.ID,
		ProductName: order.ProductName,
		Amount:      order.TotalPrice,
		BuyerEmail:  order.Email,
		BuyerName:   name,
	})
	if err != nil {
		return "", err
	}

	if err := u.orders.SetCheckoutSession(ctx, order.ID, session.ID); err != nil {
		return "", err
	}

	return session.URL, nil
}

// Confirm reconciles a completed checkout session into the order: the order
// becomes paid, gets the provider's transaction id and a generated tracking
// id. A confirmed charge is never reported as failed; if persistence lags
// behind the provider, the receipt carries a support notice instead of an
// error.
func (u *PaymentUseCase) Confirm(ctx context.Context, sessionID string) (*Receipt, error) {
	confirmation, err := u.provider.ConfirmSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !confirmation.Paid {
		return nil, checkout.ErrSessionNotSettled
	}

	order, err := u.orders.GetByCheckoutSession(ctx, sessionID)
	if err != nil {
		u.logger.Error("payment confirmed but order lookup failed",
			slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return &Receipt{TransactionID: confirmation.TransactionID, SupportNotice: true}, nil
	}

	result, err := lifecycle.Apply(lifecycle.Request{Action: lifecycle.ActionConfirmPayment, Order: order})
	if err != nil {
		if errors.Is(err, domainErrors.ErrOrderAlreadyPaid) {
			// Duplicate callback; the earlier confirmation already recorded it.
			return &Receipt{TransactionID: order.TransactionID, TrackingID: order.TrackingID}, nil
		}
		return nil, err
	}

	trackingID := uuid.NewString()
	if err := u.orders.UpdatePayment(ctx, order.ID, result.PaymentStatus, result.PaymentMethod, confirmation.TransactionID, trackingID); err != nil {
		u.logger.Error("payment confirmed but order update failed",
			slog.String("order_id", order.ID), slog.String("error", err.Error()))
		return &Receipt{TransactionID: confirmation.TransactionID, SupportNotice: true}, nil
	}

	return &Receipt{TransactionID: confirmation.TransactionID, TrackingID: trackingID}, nil
}

// UnreconciledOrders returns orders with an initiated but unconfirmed
// checkout session, for the background reconciler.
func (u *PaymentUseCase) UnreconciledOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectUnreconciled(ctx, limit)
}
