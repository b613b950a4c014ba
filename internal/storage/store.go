package storage

import (
	"errors"

	"github.com/snowskye/clinic-backend/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrUserExists = errors.New("user already exists")
)

// Store defines the persistence boundary for the three record kinds. Every
// implementation must keep insertion order on list operations (oldest first)
// and serialize mutations per record kind, so concurrent requests within one
// process cannot drop each other's writes.
type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]models.User, error)

	// Lead operations
	AppendLead(lead *models.Lead) error
	ListLeads() ([]models.Lead, error)

	// Appointment operations
	AppendAppointment(appt *models.Appointment) error
	GetAppointment(id string) (*models.Appointment, error)
	UpdateAppointment(appt *models.Appointment) error
	ListAppointments() ([]models.Appointment, error)

	Close() error
}
