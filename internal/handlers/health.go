package handlers

import "github.com/gofiber/fiber/v2"

// HealthHandler handles health check requests
type HealthHandler struct {
	ClinicName string
}

func NewHealthHandler(clinicName string) *HealthHandler {
	return &HealthHandler{ClinicName: clinicName}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": h.ClinicName,
	})
}
