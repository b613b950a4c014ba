package models

import "time"

// Appointment is a booking request extracted from chat. It starts pending
// with a single-use confirmation token and moves to confirmed exactly once,
// when the emailed link is visited with a matching token. On that transition
// the token is cleared and can never match again; there is no cancellation,
// expiry or token regeneration.
//
// Invariant: ConfirmToken != nil implies Status == AppointmentStatusPending.
type Appointment struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email"`
	Message      string     `json:"message"`
	Status       string     `json:"status"`
	ConfirmToken *string    `json:"confirmToken"`
	Created      time.Time  `json:"created"`
	ConfirmedAt  *time.Time `json:"confirmedAt,omitempty"`
}

// Appointment status constants
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
)
