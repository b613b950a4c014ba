package storage

import (
	"sync"

	"github.com/snowskye/clinic-backend/internal/models"
)

// MemoryStore holds all data in memory, for tests and local development.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []models.User
	leads        []models.Lead
	appointments []models.Appointment
}

// NewMemoryStore creates a new in-memory storage.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrUserExists
		}
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.User(nil), m.users...), nil
}

func (m *MemoryStore) AppendLead(lead *models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *MemoryStore) ListLeads() ([]models.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Lead(nil), m.leads...), nil
}

func (m *MemoryStore) AppendAppointment(appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = append(m.appointments, *appt)
	return nil
}

func (m *MemoryStore) GetAppointment(id string) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.appointments {
		if m.appointments[i].ID == id {
			a := m.appointments[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateAppointment(appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.appointments {
		if m.appointments[i].ID == appt.ID {
			m.appointments[i] = *appt
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) ListAppointments() ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Appointment(nil), m.appointments...), nil
}

func (m *MemoryStore) Close() error { return nil }
