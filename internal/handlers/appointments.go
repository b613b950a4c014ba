package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/services"
	"github.com/snowskye/clinic-backend/internal/storage"
)

// AppointmentHandler exposes confirmation and the admin listing.
type AppointmentHandler struct {
	store        storage.Store
	appointments *services.AppointmentService
	logger       *zap.Logger
}

func NewAppointmentHandler(store storage.Store, appointments *services.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{store: store, appointments: appointments, logger: logger}
}

// Confirm handles GET /api/appointments/confirm?appointmentId&token.
// Responses stay generic beyond found/not-found vs. token mismatch; a
// failed attempt never mutates storage.
func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	appointmentID := c.Query("appointmentId")
	token := c.Query("token")

	if appointmentID == "" || token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Missing params",
		})
	}

	appt, err := h.appointments.Confirm(appointmentID, token)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "message": "Appointment not found",
		})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false, "message": "Invalid token",
		})
	case err != nil:
		h.logger.Error("confirm failed", zap.String("appointment_id", appointmentID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "message": "Server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Appointment confirmed!",
		"appointmentId": appt.ID,
	})
}

// List handles GET /api/appointments (auth required), newest first.
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	appts, err := h.store.ListAppointments()
	if err != nil {
		h.logger.Error("list appointments failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
	return c.JSON(reversed(appts))
}
