package domain

import "time"

// StaffRole enumerates records-office operator roles.
type StaffRole string

const (
	StaffRoleClerk StaffRole = "CLERK"
	StaffRoleAdmin StaffRole = "ADMIN"
)

// StaffMember models a records-office operator allowed past the staff gate.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
