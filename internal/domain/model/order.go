package model

import (
	"strings"
	"time"
)

// OrderStatus describes the coarse order lifecycle state.
//
// The literal casing is uneven on purpose: production rows were written with
// "pending" lowercase at creation and "Approved"/"Rejected" capitalized on
// transition, and normalizing would orphan existing data.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusApproved   OrderStatus = "Approved"
	OrderStatusRejected   OrderStatus = "Rejected"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus tracks the payment channel independently of OrderStatus.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
	// PaymentStatusCODPending marks cash-on-delivery orders: the method is
	// chosen but cash is collected later, so the order is not yet paid.
	PaymentStatusCODPending PaymentStatus = "Pending"
)

// Paid reports whether the order has been paid. Comparison is
// case-insensitive to match historical rows.
func (p PaymentStatus) Paid() bool {
	return strings.EqualFold(string(p), string(PaymentStatusPaid))
}

// Payment method labels stored on orders.
const (
	PaymentMethodCashOnDelivery = "Cash on Delivery"
	PaymentMethodOnline         = "Online Payment"
)

// Order is the central marketplace entity. Fields up to PaymentOptions are
// immutable after creation; TotalPrice is computed once at creation and never
// recomputed even if the product price changes later.
type Order struct {
	ID              string
	Email           string
	ProductID       string
	ProductName     string
	ProductImage    string
	Category        string
	PricePerUnit    float64
	OrderQuantity   int
	TotalPrice      float64
	FirstName       string
	LastName        string
	ContactNumber   string
	DeliveryAddress string
	AdditionalNotes string
	PaymentOptions  []string
	OrderDate       time.Time

	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod string
	ApprovedAt    *time.Time
	RejectedAt    *time.Time

	CheckoutSessionID string
	TransactionID     string
	TrackingID        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OffersPaymentOption reports whether the given payment option was offered by
// the product at the time the order was created.
func (o *Order) OffersPaymentOption(option string) bool {
	for _, offered := range o.PaymentOptions {
		if strings.EqualFold(offered, option) {
			return true
		}
	}
	return false
}

// RequiresOnlinePayment reports whether any offered payment option routes
// through the external checkout provider.
func (o *Order) RequiresOnlinePayment() bool {
	for _, offered := range o.PaymentOptions {
		lower := strings.ToLower(offered)
		if strings.Contains(lower, "online") || strings.Contains(lower, "stripe") || strings.Contains(lower, "payfast") {
			return true
		}
	}
	return false
}
