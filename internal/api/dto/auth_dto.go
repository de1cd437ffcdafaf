package dto

import (
	"time"

	"github.com/campus-suite/records-portal/internal/domain"
)

// LoginPayload is the staff login body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffResponse serializes a staff member without credentials.
type StaffResponse struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  domain.StaffRole `json:"role"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Staff     StaffResponse `json:"staff"`
}
