package dto

// AuthRequest describes registration/login payload.
type AuthRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
	LoginMethod string `json:"loginMethod,omitempty"`
}
