package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-suite/records-portal/internal/api/http/handlers"
	"github.com/campus-suite/records-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Requests  *handlers.RequestsHandler
	Proposals *handlers.ProposalsHandler
	Stats     *handlers.StatsHandler
	StaffGate *auth.StaffGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	requests := app.Group("/document-requests")
	requests.Post("/", cfg.Requests.Submit)
	requests.Get("/", cfg.StaffGate.Handle, auth.RequireStaff(), cfg.Requests.List)
	requests.Put("/:id", cfg.StaffGate.Handle, auth.RequireStaff(), cfg.Requests.UpdateStatus)

	proposals := app.Group("/proposals")
	proposals.Post("/", cfg.Proposals.Submit)
	proposals.Get("/", cfg.StaffGate.Handle, auth.RequireStaff(), cfg.Proposals.List)

	app.Get("/stats/requests", cfg.StaffGate.Handle, auth.RequireStaff(), cfg.Stats.Requests)
}
