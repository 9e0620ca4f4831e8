package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginSession records a successful login with the device it came from.
type LoginSession struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	IPAddress    NullString `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent    NullString `json:"user_agent,omitempty" db:"user_agent"`
	DeviceType   string     `json:"device_type" db:"device_type"`
	OS           string     `json:"os" db:"os"`
	Browser      string     `json:"browser" db:"browser"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastActiveAt time.Time  `json:"last_active_at" db:"last_active_at"`
}
