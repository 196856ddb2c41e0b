package dto

import "time"

// UserResponse mirrors an account record. Password hashes never leave the
// service.
type UserResponse struct {
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	DisplayName string    `json:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	LoginMethod string    `json:"loginMethod,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UpdateUserRequest is the admin role/status editor payload.
type UpdateUserRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}
