package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/services"
	"github.com/snowskye/clinic-backend/internal/utils"
)

const maxMessageLength = 1200

// Reply fallbacks for the degraded paths. The chat endpoint never bubbles
// an AI or email failure up to the visitor.
const (
	replyEmptyMessage  = "Please type a message"
	replyNotConfigured = "AI not configured. Please set OPENAI_API_KEY."
	replyUnavailable   = "Sorry, I couldn't generate a reply right now. Please try again in a moment."
	replyUnrecoverable = "Clinic assistant temporarily unavailable"

	guidanceEmailSent = "\n\nI sent a confirmation link to your email. Please click it to confirm your appointment."
	guidanceNeedEmail = "\n\nTo confirm an appointment, please provide a valid email so I can send the confirmation link."
)

// ChatHandler orchestrates the main widget endpoint: capture the lead, ask
// the assistant, and open a pending appointment when the message reads like
// a booking request.
type ChatHandler struct {
	leads        *services.LeadService
	appointments *services.AppointmentService
	assistant    services.Responder
	intent       services.Detector
	logger       *zap.Logger
}

func NewChatHandler(
	leads *services.LeadService,
	appointments *services.AppointmentService,
	assistant services.Responder,
	intent services.Detector,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		leads:        leads,
		appointments: appointments,
		assistant:    assistant,
		intent:       intent,
		logger:       logger,
	}
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
		Email   string `json:"email"`
	}
	_ = c.BodyParser(&req)

	message := utils.CleanText(req.Message, maxMessageLength)
	email := utils.NormalizeEmail(req.Email)
	if !utils.IsValidEmail(email) {
		email = ""
	}

	if message == "" {
		return c.JSON(fiber.Map{"reply": replyEmptyMessage, "success": false})
	}

	// Lead capture is unconditional and happens before the AI call, so a
	// failing completion still leaves exactly one lead behind.
	if _, err := h.leads.Capture(message, email); err != nil {
		h.logger.Error("lead capture failed", zap.Error(err))
	}

	reply, err := h.assistant.Reply(c.Context(), message)
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		reply = replyNotConfigured
	case err != nil:
		reply = replyUnavailable
	case reply == "":
		reply = replyUnavailable
	}

	if h.intent.IsBookingIntent(message) {
		if _, err := h.appointments.CreateFromChat(c.Context(), email, message); err != nil {
			h.logger.Error("appointment create failed", zap.Error(err))
			return c.JSON(fiber.Map{"reply": replyUnrecoverable, "success": false})
		}
		if email != "" {
			reply += guidanceEmailSent
		} else {
			reply += guidanceNeedEmail
		}
	}

	return c.JSON(fiber.Map{"reply": reply, "success": true})
}
