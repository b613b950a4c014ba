package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/snowskye/clinic-backend/internal/handlers"
	"github.com/snowskye/clinic-backend/internal/middleware"
)

// Handlers bundles everything SetupRoutes wires up.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Chat         *handlers.ChatHandler
	Appointments *handlers.AppointmentHandler
	Leads        *handlers.LeadHandler
	Health       *handlers.HealthHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h Handlers, sessions *session.Store) {
	app.Get("/health", h.Health.Check)

	// Widget chat
	app.Post("/chat", h.Chat.Chat)

	// Accounts and sessions
	app.Post("/register", h.Auth.Register)
	app.Post("/login", h.Auth.Login)
	app.Post("/admin/login", h.Auth.AdminLogin)
	app.Post("/logout", h.Auth.Logout)
	app.Get("/me", h.Auth.Me)

	// API routes
	api := app.Group("/api")
	api.Get("/appointments/confirm", h.Appointments.Confirm)
	api.Get("/public/recent", h.Leads.PublicRecent)

	// Admin listings, session-gated
	requireAuth := middleware.RequireAuth(sessions)
	api.Get("/leads", requireAuth, h.Leads.List)
	api.Get("/appointments", requireAuth, h.Appointments.List)
}
