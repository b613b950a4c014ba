package models

import "time"

// Lead is one captured inbound chat message, used for follow-up. Leads are
// immutable once written and are never deleted.
type Lead struct {
	ID      string    `json:"id" gorm:"primaryKey"`
	Message string    `json:"message"`
	Email   string    `json:"email"` // validated email or empty string
	Time    time.Time `json:"time"`
}
