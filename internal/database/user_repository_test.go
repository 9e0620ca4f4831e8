package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "roll_number", "college_name", "email", "password_hash", "created_at"}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		user := &models.User{
			RollNumber:   "CS2021045",
			CollegeName:  "Engineering Faculty",
			Email:        "jane@campus.edu",
			PasswordHash: "$2a$10$hash",
		}

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), user.RollNumber, user.CollegeName, user.Email, user.PasswordHash).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		err := repo.Create(user)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		user := &models.User{Email: "jane@campus.edu"}

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(user)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Store Fault", func(t *testing.T) {
		user := &models.User{Email: "jane@campus.edu"}

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(assert.AnError)

		err := repo.Create(user)
		assert.True(t, apperrors.IsKind(err, apperrors.KindTransient))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("jane@campus.edu").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "CS2021045", "Engineering Faculty",
				"jane@campus.edu", "$2a$10$hash", time.Now(),
			))

		user, err := repo.GetByEmail("jane@campus.edu")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "CS2021045", user.RollNumber)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("ghost@campus.edu").
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.GetByEmail("ghost@campus.edu")
		assert.Nil(t, user)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID.String(), "CS2021045", "Engineering Faculty",
				"jane@campus.edu", "$2a$10$hash", time.Now(),
			))

		user, err := repo.GetByID(userID)
		require.NoError(t, err)
		assert.Equal(t, "jane@campus.edu", user.Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.GetByID(userID)
		assert.Nil(t, user)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
