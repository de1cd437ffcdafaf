package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/repository"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated staff caller.
type Principal struct {
	Staff *domain.StaffMember
}

// StaffGate validates bearer tokens and loads the staff principal. It is the
// access gate in front of listing and status-update operations.
type StaffGate struct {
	tokens *TokenManager
	staff  repository.StaffRepository
}

// NewStaffGate constructs the gate middleware.
func NewStaffGate(tokens *TokenManager, staff repository.StaffRepository) *StaffGate {
	return &StaffGate{tokens: tokens, staff: staff}
}

// Handle enforces authentication for protected routes.
func (g *StaffGate) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := g.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	staff, err := g.staff.GetByID(c.Context(), claims.StaffID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("staff not found")
		}
		return apperrors.MapError(err)
	}
	if !staff.Active {
		return apperrors.NewForbidden("staff inactive")
	}

	c.Locals(principalKey, &Principal{Staff: staff})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated staff member.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireStaff ensures a staff principal is present. Handlers behind it can
// assume the principal exists.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewForbidden("staff required")
		}
		return c.Next()
	}
}
