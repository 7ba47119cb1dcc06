package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User represents a user in the system. Providers are users with the
// IsProvider flag set; they show up in the provider directory and can
// be booked for appointments.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsProvider   bool
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// ProviderFilter defines pagination for the provider directory.
type ProviderFilter struct {
	Page     int
	PageSize int
}
