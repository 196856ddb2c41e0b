package dto

import "time"

// ProductRequest carries manager's catalog form. ImageData is raw bytes
// (base64 in JSON) pushed to the hosting service; Image is an already-hosted
// URL used as-is.
type ProductRequest struct {
	ProductName       string   `json:"productName"`
	Category          string   `json:"category"`
	Description       string   `json:"description,omitempty"`
	Price             float64  `json:"price"`
	AvailableQuantity int      `json:"availableQuantity"`
	MinimumOrder      int      `json:"minimumOrder"`
	PaymentOptions    []string `json:"paymentOptions"`
	ShowOnHome        bool     `json:"showOnHome"`
	Image             string   `json:"image,omitempty"`
	ImageData         []byte   `json:"imageData,omitempty"`
	ImageName         string   `json:"imageName,omitempty"`
}

// ProductResponse mirrors a stored product.
type ProductResponse struct {
	ID                string    `json:"id"`
	ManagerEmail      string    `json:"managerEmail"`
	ProductName       string    `json:"productName"`
	Image             string    `json:"image,omitempty"`
	Category          string    `json:"category,omitempty"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	AvailableQuantity int       `json:"availableQuantity"`
	MinimumOrder      int       `json:"minimumOrder"`
	PaymentOptions    []string  `json:"paymentOptions,omitempty"`
	ShowOnHome        bool      `json:"showOnHome"`
	CreatedAt         time.Time `json:"createdAt"`
}
