package domain

import "time"

// User represents a registered account of the system.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	CreatedAt    time.Time
}
