package events

import (
	"time"

	"github.com/campus-suite/records-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestSubmitted     EventType = "request_submitted"
	EventRequestStatusChanged EventType = "request_status_changed"
	EventProposalSubmitted    EventType = "proposal_submitted"
)

// Actor encapsulates actor metadata for an event. StaffID is nil for
// unauthenticated submissions.
type Actor struct {
	StaffID *string `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestSubmittedPayload payload.
type RequestSubmittedPayload struct {
	StudentID    string              `json:"student_id"`
	DocumentType domain.DocumentType `json:"document_type"`
	Email        string              `json:"email"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// ProposalSubmittedPayload payload.
type ProposalSubmittedPayload struct {
	ProposalID string `json:"proposal_id"`
	Title      string `json:"title"`
}
