package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-suite/records-portal/internal/api/dto"
	"github.com/campus-suite/records-portal/internal/auth"
	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/service"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

// RequestsHandler manages document-request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Submit POST /document-requests.
func (h *RequestsHandler) Submit(c *fiber.Ctx) error {
	var payload dto.SubmitRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError([]string{"invalid payload"})
	}

	request, err := h.service.Submit(c.UserContext(), domain.RequestInput{
		StudentID:       payload.StudentID,
		FullName:        payload.FullName,
		Email:           payload.Email,
		Phone:           payload.Phone,
		DocumentType:    payload.DocumentType,
		Purpose:         payload.Purpose,
		DeliveryMethod:  payload.DeliveryMethod,
		AdditionalNotes: payload.AdditionalNotes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewRequestResponse(request),
	})
}

// List GET /document-requests.
func (h *RequestsHandler) List(c *fiber.Ctx) error {
	requests, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, dto.NewRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// UpdateStatus PUT /document-requests/:id.
func (h *RequestsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewForbidden("staff required")
	}
	var payload dto.UpdateStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError([]string{"invalid payload"})
	}

	request, err := h.service.ChangeStatus(c.UserContext(), principal.Staff.ID, c.Params("id"), domain.RequestStatus(payload.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewRequestResponse(request),
	})
}
