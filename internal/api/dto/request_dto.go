package dto

import (
	"time"

	"github.com/campus-suite/records-portal/internal/domain"
)

// SubmitRequestPayload is the public document-request submission body.
type SubmitRequestPayload struct {
	StudentID       string `json:"studentId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DocumentType    string `json:"documentType"`
	Purpose         string `json:"purpose"`
	DeliveryMethod  string `json:"deliveryMethod"`
	AdditionalNotes string `json:"additionalNotes"`
}

// UpdateStatusPayload is the staff status-change body.
type UpdateStatusPayload struct {
	Status string `json:"status"`
}

// RequestResponse serializes a document request.
type RequestResponse struct {
	ID              string                `json:"id"`
	StudentID       string                `json:"studentId"`
	FullName        string                `json:"fullName"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	DocumentType    domain.DocumentType   `json:"documentType"`
	Purpose         domain.RequestPurpose `json:"purpose"`
	DeliveryMethod  domain.DeliveryMethod `json:"deliveryMethod"`
	AdditionalNotes string                `json:"additionalNotes"`
	Status          domain.RequestStatus  `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// NewRequestResponse maps the domain record onto the wire shape.
func NewRequestResponse(request *domain.DocumentRequest) RequestResponse {
	return RequestResponse{
		ID:              request.ID,
		StudentID:       request.StudentID,
		FullName:        request.FullName,
		Email:           request.Email,
		Phone:           request.Phone,
		DocumentType:    request.DocumentType,
		Purpose:         request.Purpose,
		DeliveryMethod:  request.DeliveryMethod,
		AdditionalNotes: request.AdditionalNotes,
		Status:          request.Status,
		CreatedAt:       request.CreatedAt,
	}
}
