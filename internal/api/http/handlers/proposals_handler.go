package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-suite/records-portal/internal/api/dto"
	"github.com/campus-suite/records-portal/internal/service"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

// ProposalsHandler manages proposal submission endpoints.
type ProposalsHandler struct {
	service *service.ProposalService
}

// NewProposalsHandler constructs handler.
func NewProposalsHandler(proposalService *service.ProposalService) *ProposalsHandler {
	return &ProposalsHandler{service: proposalService}
}

// Submit POST /proposals (multipart/form-data, file field: proposal).
func (h *ProposalsHandler) Submit(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("proposal")
	if err != nil {
		return apperrors.NewValidationError([]string{"PDF file required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError([]string{"cannot open uploaded file"})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	proposal, err := h.service.Submit(c.UserContext(), file, fileHeader.Filename, contentType, fileHeader.Size, service.ProposalInput{
		Title:       c.FormValue("title"),
		Company:     c.FormValue("company"),
		Description: c.FormValue("description"),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewProposalResponse(proposal),
	})
}

// List GET /proposals.
func (h *ProposalsHandler) List(c *fiber.Ctx) error {
	proposals, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProposalResponse, 0, len(proposals))
	for _, item := range proposals {
		items = append(items, dto.NewProposalDownloadResponse(item))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}
