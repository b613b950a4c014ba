package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/models"
	"github.com/snowskye/clinic-backend/internal/storage"
	"github.com/snowskye/clinic-backend/internal/utils"
)

// ErrInvalidToken is returned when the presented confirmation token does
// not match, including replays after a successful confirmation (the token
// is cleared on confirm and can never match again).
var ErrInvalidToken = errors.New("invalid token")

const tokenBytes = 24

// AppointmentService drives the pending -> confirmed lifecycle.
type AppointmentService struct {
	store   storage.Store
	mailer  Mailer
	alerter *StaffAlerter
	logger  *zap.Logger
}

func NewAppointmentService(store storage.Store, mailer Mailer, alerter *StaffAlerter, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		store:   store,
		mailer:  mailer,
		alerter: alerter,
		logger:  logger,
	}
}

// CreateFromChat persists a pending appointment with a fresh single-use
// token and, when the email is present and a transport is configured,
// attempts the confirmation email within the request (email failures are
// logged and swallowed, never surfaced to the visitor).
//
// Intent detection has no session memory, so repeated booking messages in
// one conversation create duplicate pending appointments. That matches the
// product behavior: staff resolve duplicates when confirming.
func (s *AppointmentService) CreateFromChat(ctx context.Context, email, message string) (*models.Appointment, error) {
	token, err := utils.NewToken(tokenBytes)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:           uuid.NewString(),
		Email:        email,
		Message:      message,
		Status:       models.AppointmentStatusPending,
		ConfirmToken: &token,
		Created:      time.Now().UTC(),
	}
	if err := s.store.AppendAppointment(appt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment created",
		zap.String("appointment_id", appt.ID), zap.Bool("has_email", email != ""))

	if email != "" && s.mailer.Enabled() {
		if err := s.mailer.SendConfirmation(ctx, email, message, appt.ID, token); err != nil {
			s.logger.Error("confirmation email failed",
				zap.String("appointment_id", appt.ID), zap.Error(err))
		}
	}

	s.alerter.BookingCaptured(appt)

	return appt, nil
}

// Confirm applies the single pending -> confirmed transition. Validation
// order: unknown id first (storage.ErrNotFound), then token match. An
// already confirmed appointment has a nil token, so replaying a used link
// fails with ErrInvalidToken. Nothing is persisted on a failed attempt.
func (s *AppointmentService) Confirm(id, token string) (*models.Appointment, error) {
	appt, err := s.store.GetAppointment(id)
	if err != nil {
		return nil, err
	}

	if appt.ConfirmToken == nil || *appt.ConfirmToken != token {
		return nil, ErrInvalidToken
	}

	now := time.Now().UTC()
	appt.Status = models.AppointmentStatusConfirmed
	appt.ConfirmedAt = &now
	appt.ConfirmToken = nil
	if err := s.store.UpdateAppointment(appt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment confirmed", zap.String("appointment_id", appt.ID))
	return appt, nil
}
