package models

import "time"

// User is a dashboard account created at registration. Records are never
// deleted; the password field holds a bcrypt hash, never plaintext.
type User struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	Email    string    `json:"email" gorm:"uniqueIndex"`
	Password string    `json:"password"`
	Role     string    `json:"role"`
	Created  time.Time `json:"created"`
}

const RoleAdmin = "admin"
