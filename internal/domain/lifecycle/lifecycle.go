// Package lifecycle is the single authority for order status transitions.
// Every mutating path (manager approval, buyer cancellation, admin edits,
// tracking appends, payment confirmation) is validated against one
// transition table instead of ad hoc status comparisons at each call site.
package lifecycle

import (
	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/model"
)

// Action identifies a lifecycle-mutating operation on an order.
type Action string

const (
	ActionApprove              Action = "approve"
	ActionReject               Action = "reject"
	ActionCancel               Action = "cancel"
	ActionAdminSetStatus       Action = "admin_set_status"
	ActionAppendTracking       Action = "append_tracking"
	ActionSelectCashOnDelivery Action = "select_cod"
	ActionConfirmPayment       Action = "confirm_payment"
)

// Actor is the authenticated session attempting the action.
type Actor struct {
	Email  string
	Role   model.Role
	Status model.UserStatus
}

// Request bundles everything needed to decide a transition.
type Request struct {
	Action Action
	Actor  Actor
	Order  *model.Order

	// TargetStatus is consulted only for ActionAdminSetStatus.
	TargetStatus model.OrderStatus
}

// Result tells the caller what to persist. Zero-value fields mean
// "unchanged"; the lifecycle itself never mutates the order.
type Result struct {
	Status        model.OrderStatus
	SetApprovedAt bool
	SetRejectedAt bool
	DeleteOrder   bool
	AppendEvent   bool
	PaymentStatus model.PaymentStatus
	PaymentMethod string
}

type transitionKey struct {
	from   model.OrderStatus
	action Action
}

type transition struct {
	role  model.Role
	guard func(Request) error
	apply func(Request) Result
}

func notSuspended(req Request) error {
	if req.Actor.Status == model.UserStatusSuspended {
		return domainErrors.ErrAccountSuspended
	}
	return nil
}

func ownOrder(req Request) error {
	if req.Actor.Email != req.Order.Email {
		return domainErrors.ErrNotOrderOwner
	}
	return nil
}

// transitions anchored on the current order status. Rejected is a dead end:
// no entry leads out of it.
var transitions = map[transitionKey]transition{
	{model.OrderStatusPending, ActionApprove}: {
		role:  model.RoleManager,
		guard: notSuspended,
		apply: func(Request) Result {
			return Result{Status: model.OrderStatusApproved, SetApprovedAt: true}
		},
	},
	{model.OrderStatusPending, ActionReject}: {
		role:  model.RoleManager,
		guard: notSuspended,
		apply: func(Request) Result {
			return Result{Status: model.OrderStatusRejected, SetRejectedAt: true}
		},
	},
	{model.OrderStatusPending, ActionCancel}: {
		role: model.RoleBuyer,
		guard: func(req Request) error {
			if err := ownOrder(req); err != nil {
				return err
			}
			if req.Order.PaymentStatus.Paid() {
				return domainErrors.ErrOrderAlreadyPaid
			}
			return nil
		},
		apply: func(Request) Result {
			return Result{DeleteOrder: true}
		},
	},
	{model.OrderStatusApproved, ActionAppendTracking}: {
		role:  model.RoleManager,
		guard: notSuspended,
		apply: func(req Request) Result {
			// Timeline entries never advance the coarse status.
			return Result{Status: req.Order.Status, AppendEvent: true}
		},
	},
}

// adminStatuses is the set the admin picker may write, in any order from any
// current state. This deliberately bypasses the guarded manager path.
var adminStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusProcessing: true,
	model.OrderStatusShipped:    true,
	model.OrderStatusDelivered:  true,
	model.OrderStatusCancelled:  true,
}

// Apply validates the requested action against the transition table and
// returns the fields to persist. The order itself is left untouched.
func Apply(req Request) (Result, error) {
	switch req.Action {
	case ActionAdminSetStatus:
		return applyAdminSetStatus(req)
	case ActionSelectCashOnDelivery:
		return applySelectCOD(req)
	case ActionConfirmPayment:
		return applyConfirmPayment(req)
	}

	t, ok := transitions[transitionKey{req.Order.Status, req.Action}]
	if !ok {
		return Result{}, domainErrors.ErrInvalidTransition
	}
	if req.Actor.Role != t.role {
		return Result{}, domainErrors.ErrRoleNotAllowed
	}
	if t.guard != nil {
		if err := t.guard(req); err != nil {
			return Result{}, err
		}
	}
	return t.apply(req), nil
}

func applyAdminSetStatus(req Request) (Result, error) {
	if req.Actor.Role != model.RoleAdmin {
		return Result{}, domainErrors.ErrRoleNotAllowed
	}
	if !adminStatuses[req.TargetStatus] {
		return Result{}, domainErrors.ErrInvalidTransition
	}
	return Result{Status: req.TargetStatus}, nil
}

// Payment is an independent channel: both payment actions are valid from any
// order status as long as the order is not already paid.

func applySelectCOD(req Request) (Result, error) {
	if req.Actor.Role != model.RoleBuyer {
		return Result{}, domainErrors.ErrRoleNotAllowed
	}
	if err := ownOrder(req); err != nil {
		return Result{}, err
	}
	if req.Order.PaymentStatus.Paid() {
		return Result{}, domainErrors.ErrOrderAlreadyPaid
	}
	if !req.Order.OffersPaymentOption(model.PaymentMethodCashOnDelivery) {
		return Result{}, domainErrors.ErrPaymentOptionNotOffered
	}
	return Result{
		Status:        req.Order.Status,
		PaymentStatus: model.PaymentStatusCODPending,
		PaymentMethod: model.PaymentMethodCashOnDelivery,
	}, nil
}

func applyConfirmPayment(req Request) (Result, error) {
	if req.Order.PaymentStatus.Paid() {
		return Result{}, domainErrors.ErrOrderAlreadyPaid
	}
	return Result{
		Status:        req.Order.Status,
		PaymentStatus: model.PaymentStatusPaid,
		PaymentMethod: model.PaymentMethodOnline,
	}, nil
}

// CanCancel reports whether the buyer-side cancellation control should be
// offered for the order.
func CanCancel(order *model.Order) bool {
	return order.Status == model.OrderStatusPending && !order.PaymentStatus.Paid()
}
