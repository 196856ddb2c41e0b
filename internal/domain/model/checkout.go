package model

// CheckoutSession is the external payment provider's representation of a
// single payment attempt for an order.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutConfirmation is the provider's answer when reconciling a completed
// session back into the order.
type CheckoutConfirmation struct {
	SessionID     string
	TransactionID string
	Paid          bool
	Amount        float64
}
