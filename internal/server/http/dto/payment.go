package dto

// CheckoutRequest initiates an external checkout session. Field names match
// what the dashboard has always sent.
type CheckoutRequest struct {
	ParcelID    string  `json:"parcelId"`
	ParcelName  string  `json:"parcelName"`
	Cost        float64 `json:"cost"`
	SenderEmail string  `json:"senderEmail"`
	SenderName  string  `json:"senderName"`
}

// CheckoutResponse carries the provider's redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PaymentSuccessResponse reconciles a completed session. SupportNotice is
// set when the charge is confirmed but order bookkeeping lagged behind.
type PaymentSuccessResponse struct {
	TransactionID string `json:"transactionId,omitempty"`
	TrackingID    string `json:"trackingId,omitempty"`
	SupportNotice bool   `json:"supportNotice,omitempty"`
}
