package database

import (
	"database/sql"
	"errors"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Email and roll number are unique; a duplicate
// surfaces as a conflict.
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, roll_number, college_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		user.ID, user.RollNumber, user.CollegeName, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.Conflict("email or roll number already exists")
		}
		return apperrors.FromStore("failed to create user", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, roll_number, college_name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	if err := r.db.Get(&user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.FromStore("failed to fetch user", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, roll_number, college_name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	if err := r.db.Get(&user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.FromStore("failed to fetch user", err)
	}

	return &user, nil
}
