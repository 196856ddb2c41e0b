package errors

import "errors"

var (
	ErrAlreadyExists           = errors.New("already exists")
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrAccountSuspended        = errors.New("account suspended")
	ErrRoleNotAllowed          = errors.New("role not allowed")
	ErrNotOrderOwner           = errors.New("not order owner")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrQuantityOutOfRange      = errors.New("order quantity out of range")
	ErrPriceMismatch           = errors.New("total price mismatch")
	ErrPaymentOptionNotOffered = errors.New("payment option not offered")
	ErrOrderAlreadyPaid        = errors.New("order already paid")
)
