package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/campusride/carpool-backend/internal/observability"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MatchingService owns the join-request state machine. Requests move
// pending -> matched or pending -> rejected, exactly once, and every seat
// count change in the system routes through ResolveRequest. Both operations
// here run as a single transaction: concurrent handlers race on the
// conditional updates, and the loser sees zero rows affected instead of a
// lost update.
type MatchingService struct {
	db     database.DB
	logger *logrus.Logger
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(db database.DB, logger *logrus.Logger) *MatchingService {
	return &MatchingService{db: db, logger: logger}
}

// rideRow is the slice of a ride the state machine needs.
type rideRow struct {
	DriverID     uuid.UUID `db:"driver_id"`
	Source       string    `db:"source"`
	Destination  string    `db:"destination"`
	RideDate     time.Time `db:"ride_date"`
	RideTime     string    `db:"ride_time"`
	SeatsOffered int       `db:"seats_offered"`
}

// SubmitJoinRequest records a passenger's bid to join a ride. The whole
// check-then-insert runs in one transaction so no partial insert is visible
// to concurrent readers.
func (s *MatchingService) SubmitJoinRequest(passengerID, rideID uuid.UUID) (*models.RideRequest, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, apperrors.FromStore("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var ride rideRow
	err = tx.Get(&ride, `
		SELECT driver_id, source, destination, ride_date, ride_time, seats_offered
		FROM rides
		WHERE id = $1
	`, rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.FromStore("failed to fetch ride", err)
	}

	if ride.DriverID == passengerID {
		return nil, apperrors.Validation("you cannot request to join your own ride")
	}

	var passengers int
	err = tx.Get(&passengers, `
		SELECT COUNT(*)
		FROM ride_participations
		WHERE ride_id = $1 AND role = 'passenger'
	`, rideID)
	if err != nil {
		return nil, apperrors.FromStore("failed to count participants", err)
	}

	if ride.SeatsOffered-passengers <= 0 {
		observability.CapacityRejections.Inc()
		return nil, apperrors.Capacity("no seats available on this ride")
	}

	var alreadyInvolved bool
	err = tx.Get(&alreadyInvolved, `
		SELECT EXISTS (
			SELECT 1 FROM ride_participations WHERE ride_id = $1 AND passenger_id = $2
		) OR EXISTS (
			SELECT 1 FROM ride_requests WHERE ride_id = $1 AND passenger_id = $2 AND status = 'pending'
		)
	`, rideID, passengerID)
	if err != nil {
		return nil, apperrors.FromStore("failed to check existing requests", err)
	}
	if alreadyInvolved {
		return nil, apperrors.Conflict("you have already joined or requested this ride")
	}

	request := &models.RideRequest{
		ID:          uuid.New(),
		RideID:      rideID,
		PassengerID: passengerID,
		Source:      ride.Source,
		Destination: ride.Destination,
		RideDate:    ride.RideDate,
		RideTime:    ride.RideTime,
		Status:      models.RequestPending,
	}

	err = tx.QueryRow(`
		INSERT INTO ride_requests (id, ride_id, passenger_id, source, destination, ride_date, ride_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING created_at, updated_at
	`, request.ID, request.RideID, request.PassengerID, request.Source,
		request.Destination, request.RideDate, request.RideTime,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, apperrors.FromStore("failed to create join request", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.FromStore("failed to commit join request", err)
	}

	observability.JoinRequestsSubmitted.Inc()
	s.logger.WithFields(logrus.Fields{
		"request_id":   request.ID,
		"ride_id":      rideID,
		"passenger_id": passengerID,
	}).Info("Join request submitted")

	return request, nil
}

// ResolveRequest transitions a pending request to matched or rejected on
// behalf of the ride's driver. On accept it also decrements the ride's open
// seat count, inserts the participation row, and rejects any other pending
// requests the same passenger holds against the ride. All of it commits or
// none of it does.
func (s *MatchingService) ResolveRequest(requestID, rideID, actingDriverID uuid.UUID, action models.ResolveAction) error {
	if !action.Valid() {
		return apperrors.Validationf("invalid action %q, must be accept or reject", action)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return apperrors.FromStore("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var driverID uuid.UUID
	err = tx.Get(&driverID, `SELECT driver_id FROM rides WHERE id = $1`, rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("ride not found")
		}
		return apperrors.FromStore("failed to fetch ride", err)
	}
	if driverID != actingDriverID {
		return apperrors.Authorization("you do not own this ride")
	}

	var passengerID uuid.UUID
	err = tx.Get(&passengerID, `
		SELECT passenger_id FROM ride_requests WHERE id = $1 AND ride_id = $2
	`, requestID, rideID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("request not found")
		}
		return apperrors.FromStore("failed to fetch request", err)
	}

	newStatus := models.RequestRejected
	if action == models.ActionAccept {
		newStatus = models.RequestMatched
	}

	// Conditional transition: only a pending request moves. A concurrent
	// resolve that got here first leaves zero rows for us.
	result, err := tx.Exec(`
		UPDATE ride_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND ride_id = $3 AND status = 'pending'
	`, newStatus, requestID, rideID)
	if err != nil {
		return apperrors.FromStore("failed to update request status", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.FromStore("failed to update request status", err)
	}
	if rows == 0 {
		return apperrors.Conflict("request already processed")
	}

	if action == models.ActionAccept {
		// Guarded decrement: the seat count never goes below zero even
		// under concurrent accepts across a ride's requests.
		result, err = tx.Exec(`
			UPDATE rides
			SET seats_offered = seats_offered - 1
			WHERE id = $1 AND seats_offered > 0
		`, rideID)
		if err != nil {
			return apperrors.FromStore("failed to update seat count", err)
		}
		rows, err = result.RowsAffected()
		if err != nil {
			return apperrors.FromStore("failed to update seat count", err)
		}
		if rows == 0 {
			observability.CapacityRejections.Inc()
			return apperrors.Capacity("no seats available on this ride")
		}

		participation := models.Participation{
			ID:          uuid.New(),
			RideID:      rideID,
			PassengerID: passengerID,
			Role:        models.RolePassenger,
		}
		_, err = tx.Exec(`
			INSERT INTO ride_participations (id, ride_id, passenger_id, role)
			VALUES ($1, $2, $3, $4)
		`, participation.ID, participation.RideID, participation.PassengerID, participation.Role)
		if err != nil {
			return apperrors.FromStore("failed to create participation", err)
		}

		// The passenger may have duplicate pending requests against the
		// same ride; one seat means the rest are dead.
		_, err = tx.Exec(`
			UPDATE ride_requests
			SET status = 'rejected', updated_at = NOW()
			WHERE passenger_id = $1 AND ride_id = $2 AND id != $3 AND status = 'pending'
		`, passengerID, rideID, requestID)
		if err != nil {
			return apperrors.FromStore("failed to reject duplicate requests", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.FromStore("failed to commit request resolution", err)
	}

	observability.RequestsResolved.WithLabelValues(string(action)).Inc()
	s.logger.WithFields(logrus.Fields{
		"request_id":   requestID,
		"ride_id":      rideID,
		"passenger_id": passengerID,
		"action":       action,
	}).Info("Join request resolved")

	return nil
}
