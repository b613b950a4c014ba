package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/config"
	"github.com/snowskye/clinic-backend/internal/models"
)

// StaffAlerter pings the clinic staff on WhatsApp when a booking request
// comes in, so pending appointments get picked up without watching the
// dashboard. Optional: without Twilio credentials every alert is a no-op.
type StaffAlerter struct {
	client *twilio.RestClient
	from   string
	to     string
	logger *zap.Logger
}

func NewStaffAlerter(cfg config.TwilioConfig, logger *zap.Logger) *StaffAlerter {
	a := &StaffAlerter{
		from:   cfg.WhatsAppFrom,
		to:     cfg.StaffTo,
		logger: logger,
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.WhatsAppFrom == "" || cfg.StaffTo == "" {
		return a
	}
	a.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return a
}

func (a *StaffAlerter) Enabled() bool { return a.client != nil }

// BookingCaptured sends the alert. Failures are logged and swallowed; the
// chat request never fails because the alert did.
func (a *StaffAlerter) BookingCaptured(appt *models.Appointment) {
	if a.client == nil {
		return
	}

	contact := appt.Email
	if contact == "" {
		contact = "no email provided"
	}
	body := fmt.Sprintf("New booking request (%s): %s", contact, appt.Message)

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(a.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", a.to))
	params.SetBody(body)

	if _, err := a.client.Api.CreateMessage(params); err != nil {
		a.logger.Error("staff alert failed",
			zap.String("appointment_id", appt.ID), zap.Error(err))
		return
	}
	a.logger.Info("staff alert sent", zap.String("appointment_id", appt.ID))
}
