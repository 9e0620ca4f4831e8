package models

import (
	"database/sql"
	"encoding/json"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// NullString wraps sql.NullString to provide proper JSON marshaling
type NullString struct {
	sql.NullString
}

// MarshalJSON implements json.Marshaler
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.String)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		ns.Valid = true
		ns.String = *s
	} else {
		ns.Valid = false
	}
	return nil
}

// User represents a registered user. Users are created at registration and
// never mutated by the ride-matching core.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RollNumber   string    `json:"roll_number" db:"roll_number"`
	CollegeName  string    `json:"college_name" db:"college_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether the given string looks like an email address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	RollNumber  string `json:"roll_number" binding:"required"`
	CollegeName string `json:"college_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued tokens and the user record
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
