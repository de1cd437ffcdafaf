package domain

import "time"

// RequestAudit records a single status transition on a document request.
type RequestAudit struct {
	ID        string
	RequestID string
	OldStatus RequestStatus
	NewStatus RequestStatus
	StaffID   *string
	CreatedAt time.Time
}
