package model

import "time"

// Product is listed by a manager and constrains order creation via its
// quantity bounds and offered payment options.
type Product struct {
	ID                string
	ManagerEmail      string
	ProductName       string
	Image             string
	Category          string
	Description       string
	Price             float64
	AvailableQuantity int
	MinimumOrder      int
	PaymentOptions    []string
	ShowOnHome        bool
	CreatedAt         time.Time
}
