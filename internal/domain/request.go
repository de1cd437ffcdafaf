package domain

import (
	"regexp"
	"strings"
	"time"
)

// RequestStatus enumerates lifecycle states for document requests.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusRejected   RequestStatus = "rejected"
)

// ValidRequestStatus reports whether the value is a member of the status enum.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusProcessing, RequestStatusCompleted, RequestStatusRejected:
		return true
	}
	return false
}

// DocumentType enumerates the documents the records office issues.
type DocumentType string

const (
	DocumentTypeTranscript DocumentType = "transcript"
	DocumentTypeCharacter  DocumentType = "character"
)

// HumanReadable returns the document type as worded in notification emails.
func (d DocumentType) HumanReadable() string {
	if d == DocumentTypeTranscript {
		return "an official transcript"
	}
	return "a character certificate"
}

// RequestPurpose enumerates accepted reasons for a document request.
type RequestPurpose string

const (
	PurposeHigherEducation RequestPurpose = "higher_education"
	PurposeEmployment      RequestPurpose = "employment"
	PurposeScholarship     RequestPurpose = "scholarship"
	PurposeVisa            RequestPurpose = "visa"
	PurposePersonal        RequestPurpose = "personal"
	PurposeOther           RequestPurpose = "other"
)

// DeliveryMethod enumerates how a completed document reaches the student.
type DeliveryMethod string

const (
	DeliveryMethodEmail  DeliveryMethod = "email"
	DeliveryMethodPickup DeliveryMethod = "pickup"
)

// DocumentRequest is the aggregate for student document requests.
type DocumentRequest struct {
	ID              string
	StudentID       string
	FullName        string
	Email           string
	Phone           string
	DocumentType    DocumentType
	Purpose         RequestPurpose
	DeliveryMethod  DeliveryMethod
	AdditionalNotes string
	Status          RequestStatus
	CreatedAt       time.Time
}

// RequestInput carries the unvalidated submission fields.
type RequestInput struct {
	StudentID       string
	FullName        string
	Email           string
	Phone           string
	DocumentType    string
	Purpose         string
	DeliveryMethod  string
	AdditionalNotes string
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// NewDocumentRequest validates the submission and builds a pending request.
// It returns one message per violated field; the slice is nil when valid.
func NewDocumentRequest(input RequestInput) (*DocumentRequest, []string) {
	var messages []string

	studentID := strings.TrimSpace(input.StudentID)
	if studentID == "" {
		messages = append(messages, "Please provide student ID")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		messages = append(messages, "Please provide full name")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		messages = append(messages, "Please provide email")
	} else if !emailPattern.MatchString(email) {
		messages = append(messages, "Please provide a valid email")
	}
	if strings.TrimSpace(input.Phone) == "" {
		messages = append(messages, "Please provide phone number")
	}

	docType := DocumentType(input.DocumentType)
	if docType != DocumentTypeTranscript && docType != DocumentTypeCharacter {
		messages = append(messages, "Please select a valid document type")
	}
	purpose := RequestPurpose(input.Purpose)
	switch purpose {
	case PurposeHigherEducation, PurposeEmployment, PurposeScholarship, PurposeVisa, PurposePersonal, PurposeOther:
	default:
		messages = append(messages, "Please specify purpose")
	}
	delivery := DeliveryMethod(input.DeliveryMethod)
	if delivery != DeliveryMethodEmail && delivery != DeliveryMethodPickup {
		messages = append(messages, "Please select a valid delivery method")
	}

	if len(messages) > 0 {
		return nil, messages
	}

	return &DocumentRequest{
		StudentID:       studentID,
		FullName:        fullName,
		Email:           email,
		Phone:           strings.TrimSpace(input.Phone),
		DocumentType:    docType,
		Purpose:         purpose,
		DeliveryMethod:  delivery,
		AdditionalNotes: strings.TrimSpace(input.AdditionalNotes),
		Status:          RequestStatusPending,
	}, nil
}
