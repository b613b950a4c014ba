package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/storage"
	"github.com/snowskye/clinic-backend/internal/utils"
)

const (
	publicRecentLimit  = 10
	publicSnippetChars = 120
)

// LeadHandler exposes the admin lead listing and the public recent feed.
type LeadHandler struct {
	store  storage.Store
	logger *zap.Logger
}

func NewLeadHandler(store storage.Store, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{store: store, logger: logger}
}

// List handles GET /api/leads (auth required), newest first.
func (h *LeadHandler) List(c *fiber.Ctx) error {
	leads, err := h.store.ListLeads()
	if err != nil {
		h.logger.Error("list leads failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
	return c.JSON(reversed(leads))
}

// PublicRecent handles GET /api/public/recent: the last ten of each record
// kind, newest first, with messages truncated and lead emails omitted.
func (h *LeadHandler) PublicRecent(c *fiber.Ctx) error {
	leads, err := h.store.ListLeads()
	if err != nil {
		h.logger.Error("list leads failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}
	appts, err := h.store.ListAppointments()
	if err != nil {
		h.logger.Error("list appointments failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	leads = reversed(lastN(leads, publicRecentLimit))
	appts = reversed(lastN(appts, publicRecentLimit))

	leadItems := make([]fiber.Map, 0, len(leads))
	for _, l := range leads {
		leadItems = append(leadItems, fiber.Map{
			"id":      l.ID,
			"message": utils.CleanText(l.Message, publicSnippetChars),
			"time":    l.Time,
		})
	}
	apptItems := make([]fiber.Map, 0, len(appts))
	for _, a := range appts {
		apptItems = append(apptItems, fiber.Map{
			"id":      a.ID,
			"message": utils.CleanText(a.Message, publicSnippetChars),
			"created": a.Created,
			"status":  a.Status,
		})
	}

	return c.JSON(fiber.Map{
		"leads":        leadItems,
		"appointments": apptItems,
	})
}

// reversed returns a newest-first copy of an oldest-first slice.
func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func lastN[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[len(in)-n:]
}
