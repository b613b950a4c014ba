package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowskye/clinic-backend/internal/models"
)

func TestMemoryStoreLeadOrder(t *testing.T) {
	m := NewMemoryStore()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, m.AppendLead(&models.Lead{ID: id, Time: time.Now().UTC()}))
	}

	leads, err := m.ListLeads()
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, "1", leads[0].ID)
	assert.Equal(t, "3", leads[2].ID)
}

func TestMemoryStoreAppointmentLifecycle(t *testing.T) {
	m := NewMemoryStore()

	token := "tok"
	appt := &models.Appointment{ID: "a1", Status: models.AppointmentStatusPending, ConfirmToken: &token}
	require.NoError(t, m.AppendAppointment(appt))

	appt.Status = models.AppointmentStatusConfirmed
	appt.ConfirmToken = nil
	require.NoError(t, m.UpdateAppointment(appt))

	got, err := m.GetAppointment("a1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, got.Status)
	assert.Nil(t, got.ConfirmToken)

	_, err = m.GetAppointment("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.UpdateAppointment(&models.Appointment{ID: "missing"}), ErrNotFound)
}

func TestMemoryStoreUserUniqueness(t *testing.T) {
	m := NewMemoryStore()

	require.NoError(t, m.CreateUser(&models.User{ID: "u1", Email: "a@b.com"}))
	assert.ErrorIs(t, m.CreateUser(&models.User{ID: "u2", Email: "a@b.com"}), ErrUserExists)

	got, err := m.GetUserByEmail("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.AppendLead(&models.Lead{ID: "1", Message: "original"}))

	leads, err := m.ListLeads()
	require.NoError(t, err)
	leads[0].Message = "mutated"

	again, err := m.ListLeads()
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Message)
}
