package model

import "time"

// Role determines which marketplace operations an account may perform.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// UserStatus reflects account standing. Suspended managers cannot approve or
// reject orders; suspended buyers cannot place new ones.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusPending   UserStatus = "pending"
)

// User is an account record keyed by email.
type User struct {
	Email        string
	Role         Role
	Status       UserStatus
	DisplayName  string
	PhotoURL     string
	LoginMethod  string
	PasswordHash string
	CreatedAt    time.Time
}

// Suspended reports whether the account is blocked from guarded actions.
func (u *User) Suspended() bool {
	return u.Status == UserStatusSuspended
}
