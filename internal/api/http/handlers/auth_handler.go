package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-suite/records-portal/internal/api/dto"
	"github.com/campus-suite/records-portal/internal/service"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

// AuthHandler manages staff authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload dto.LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError([]string{"invalid payload"})
	}
	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		return apperrors.NewValidationError([]string{"email and password required"})
	}

	staff, token, expiresAt, err := h.service.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			Staff: dto.StaffResponse{
				ID:    staff.ID,
				Name:  staff.Name,
				Email: staff.Email,
				Role:  staff.Role,
			},
		},
	})
}
