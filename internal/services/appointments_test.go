package services

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/config"
	"github.com/snowskye/clinic-backend/internal/models"
	"github.com/snowskye/clinic-backend/internal/storage"
)

type sentMail struct {
	To            string
	AppointmentID string
	Token         string
}

// recordingMailer stands in for the SMTP transport.
type recordingMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failing bool
}

func (m *recordingMailer) Enabled() bool { return true }

func (m *recordingMailer) SendConfirmation(_ context.Context, to, _, appointmentID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{To: to, AppointmentID: appointmentID, Token: token})
	return nil
}

func (m *recordingMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func newApptService(t *testing.T) (*AppointmentService, *storage.MemoryStore, *recordingMailer) {
	t.Helper()
	store := storage.NewMemoryStore()
	mailer := &recordingMailer{}
	alerter := NewStaffAlerter(config.TwilioConfig{}, zap.NewNop())
	return NewAppointmentService(store, mailer, alerter, zap.NewNop()), store, mailer
}

func TestCreateFromChat(t *testing.T) {
	svc, store, mailer := newApptService(t)

	appt, err := svc.CreateFromChat(context.Background(), "a@b.com", "I want to book a haircut")
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusPending, appt.Status)
	require.NotNil(t, appt.ConfirmToken)
	assert.Len(t, *appt.ConfirmToken, 48)
	_, err = hex.DecodeString(*appt.ConfirmToken)
	assert.NoError(t, err)
	assert.Nil(t, appt.ConfirmedAt)

	appts, err := store.ListAppointments()
	require.NoError(t, err)
	require.Len(t, appts, 1)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@b.com", sent[0].To)
	assert.Equal(t, appt.ID, sent[0].AppointmentID)
	assert.Equal(t, *appt.ConfirmToken, sent[0].Token)
}

func TestCreateFromChatWithoutEmailSkipsMail(t *testing.T) {
	svc, _, mailer := newApptService(t)

	appt, err := svc.CreateFromChat(context.Background(), "", "book me in")
	require.NoError(t, err)
	assert.Equal(t, "", appt.Email)
	assert.Empty(t, mailer.Sent())
}

func TestCreateFromChatSwallowsMailFailure(t *testing.T) {
	svc, store, mailer := newApptService(t)
	mailer.failing = true

	appt, err := svc.CreateFromChat(context.Background(), "a@b.com", "book me in")
	require.NoError(t, err, "a failing transport must not fail the booking")
	assert.Equal(t, models.AppointmentStatusPending, appt.Status)

	appts, err := store.ListAppointments()
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}

func TestConfirm(t *testing.T) {
	svc, store, _ := newApptService(t)

	appt, err := svc.CreateFromChat(context.Background(), "a@b.com", "book me")
	require.NoError(t, err)
	token := *appt.ConfirmToken

	confirmed, err := svc.Confirm(appt.ID, token)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)
	assert.Nil(t, confirmed.ConfirmToken)
	require.NotNil(t, confirmed.ConfirmedAt)

	stored, err := store.GetAppointment(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, stored.Status)
	assert.Nil(t, stored.ConfirmToken)
}

func TestConfirmIsSingleUse(t *testing.T) {
	svc, _, _ := newApptService(t)

	appt, err := svc.CreateFromChat(context.Background(), "a@b.com", "book me")
	require.NoError(t, err)
	token := *appt.ConfirmToken

	_, err = svc.Confirm(appt.ID, token)
	require.NoError(t, err)

	_, err = svc.Confirm(appt.ID, token)
	assert.ErrorIs(t, err, ErrInvalidToken, "replaying a used link must fail")
}

func TestConfirmRejectsWithoutMutating(t *testing.T) {
	svc, store, _ := newApptService(t)

	appt, err := svc.CreateFromChat(context.Background(), "a@b.com", "book me")
	require.NoError(t, err)

	_, err = svc.Confirm(appt.ID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidToken)

	stored, err := store.GetAppointment(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusPending, stored.Status)
	require.NotNil(t, stored.ConfirmToken)
	assert.Equal(t, *appt.ConfirmToken, *stored.ConfirmToken)

	_, err = svc.Confirm("unknown-id", "whatever")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
