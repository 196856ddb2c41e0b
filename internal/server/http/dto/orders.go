package dto

import "time"

// PlaceOrderRequest carries the buyer's order form. The buyer identity comes
// from the session token, never from the body.
type PlaceOrderRequest struct {
	ProductID       string  `json:"productId"`
	OrderQuantity   int     `json:"orderQuantity"`
	TotalPrice      float64 `json:"totalPrice"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	ContactNumber   string  `json:"contactNumber"`
	DeliveryAddress string  `json:"deliveryAddress"`
	AdditionalNotes string  `json:"additionalNotes"`
}

// PatchOrderRequest is the partial update body; which lifecycle action it
// maps to depends on the actor's role and the populated fields.
type PatchOrderRequest struct {
	Status        string `json:"status,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// OrderResponse mirrors a stored order.
type OrderResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	ProductID         string     `json:"productId"`
	ProductName       string     `json:"productName"`
	ProductImage      string     `json:"productImage,omitempty"`
	Category          string     `json:"category,omitempty"`
	PricePerUnit      float64    `json:"pricePerUnit"`
	OrderQuantity     int        `json:"orderQuantity"`
	TotalPrice        float64    `json:"totalPrice"`
	FirstName         string     `json:"firstName,omitempty"`
	LastName          string     `json:"lastName,omitempty"`
	ContactNumber     string     `json:"contactNumber,omitempty"`
	DeliveryAddress   string     `json:"deliveryAddress,omitempty"`
	AdditionalNotes   string     `json:"additionalNotes,omitempty"`
	PaymentOptions    []string   `json:"paymentOptions,omitempty"`
	OrderDate         time.Time  `json:"orderDate"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	PaymentMethod     string     `json:"paymentMethod,omitempty"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	RejectedAt        *time.Time `json:"rejectedAt,omitempty"`
	TransactionID     string     `json:"transactionId,omitempty"`
	TrackingID        string     `json:"trackingId,omitempty"`
	CheckoutSessionID string     `json:"checkoutSessionId,omitempty"`
}

// DeleteOrderResponse confirms a cancellation.
type DeleteOrderResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// TrackingRequest is the manager's timeline entry form. Timestamp and author
// are stamped server-side.
type TrackingRequest struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
	Note     string `json:"note,omitempty"`
}

// TrackingResponse mirrors one timeline entry.
type TrackingResponse struct {
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
}
