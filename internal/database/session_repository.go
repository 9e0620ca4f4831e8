package database

import (
	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
)

// SessionRepository handles database operations for login_sessions
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records a login session with its device details
func (r *SessionRepository) Create(session *models.LoginSession) error {
	query := `
		INSERT INTO login_sessions (id, user_id, ip_address, user_agent, device_type, os, browser)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, last_active_at
	`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		session.ID, session.UserID, session.IPAddress, session.UserAgent,
		session.DeviceType, session.OS, session.Browser,
	).Scan(&session.CreatedAt, &session.LastActiveAt)
	if err != nil {
		return apperrors.FromStore("failed to record login session", err)
	}

	return nil
}

// ListByUser returns the login sessions for a user, newest first
func (r *SessionRepository) ListByUser(userID uuid.UUID, limit int) ([]models.LoginSession, error) {
	query := `
		SELECT id, user_id, ip_address, user_agent, device_type, os, browser, created_at, last_active_at
		FROM login_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	sessions := []models.LoginSession{}
	if err := r.db.Select(&sessions, query, userID, limit); err != nil {
		return nil, apperrors.FromStore("failed to fetch login sessions", err)
	}

	return sessions, nil
}
