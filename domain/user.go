package domain

import "time"

// User holds the owner-level preferences the task core consumes.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email,omitempty"`
	FullName         string    `json:"full_name,omitempty"`
	RemindersEnabled bool      `json:"reminders_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
