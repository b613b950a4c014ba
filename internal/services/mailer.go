package services

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/config"
)

// Mailer sends the appointment confirmation email. Implementations report
// whether a transport is configured so callers can skip the attempt.
type Mailer interface {
	Enabled() bool
	SendConfirmation(ctx context.Context, to, message, appointmentID, token string) error
}

// SMTPMailer delivers confirmation emails over SMTP. When credentials are
// missing the mailer stays disabled and every send is skipped.
type SMTPMailer struct {
	client     *mail.Client
	from       string
	baseURL    string
	clinicName string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, baseURL, clinicName string, logger *zap.Logger) (*SMTPMailer, error) {
	m := &SMTPMailer{
		from:       cfg.From,
		baseURL:    baseURL,
		clinicName: clinicName,
		timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:     logger,
	}
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return m, nil
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	m.client = client
	return m, nil
}

func (m *SMTPMailer) Enabled() bool { return m.client != nil }

// SendConfirmation emails a single-use confirmation link carrying the
// appointment id and token as query parameters.
func (m *SMTPMailer) SendConfirmation(ctx context.Context, to, message, appointmentID, token string) error {
	if m.client == nil {
		return nil
	}

	query := url.Values{}
	query.Set("appointmentId", appointmentID)
	query.Set("token", token)
	confirmURL := fmt.Sprintf("%s/api/appointments/confirm?%s", m.baseURL, query.Encode())

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(fmt.Sprintf("Confirm your appointment - %s", m.clinicName))
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(`
<h2>Confirm your appointment</h2>
<p>Please confirm by clicking below:</p>
<p><a href="%s" style="display:inline-block;padding:12px 18px;background:#111827;color:#fff;text-decoration:none;border-radius:8px">Confirm Appointment</a></p>
<p><strong>Your request:</strong></p>
<p>%s</p>`, confirmURL, html.EscapeString(message)))

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	m.logger.Info("confirmation email sent", zap.String("appointment_id", appointmentID))
	return nil
}
