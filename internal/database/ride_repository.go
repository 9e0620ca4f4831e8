package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
)

// RideRepository handles database operations for the rides table
type RideRepository struct {
	db DB
}

// NewRideRepository creates a new RideRepository
func NewRideRepository(db DB) *RideRepository {
	return &RideRepository{db: db}
}

// Create publishes a new ride
func (r *RideRepository) Create(ride *models.Ride) error {
	query := `
		INSERT INTO rides (id, driver_id, vehicle_id, source, destination, ride_date, ride_time, seats_offered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	if ride.ID == uuid.Nil {
		ride.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		ride.ID, ride.DriverID, ride.VehicleID, ride.Source, ride.Destination,
		ride.RideDate, ride.RideTime, ride.SeatsOffered,
	).Scan(&ride.CreatedAt)
	if err != nil {
		return apperrors.FromStore("failed to create ride", err)
	}

	return nil
}

// GetByID retrieves a ride by ID
func (r *RideRepository) GetByID(rideID uuid.UUID) (*models.Ride, error) {
	query := `
		SELECT id, driver_id, vehicle_id, source, destination, ride_date, ride_time, seats_offered, created_at
		FROM rides
		WHERE id = $1
	`

	var ride models.Ride
	if err := r.db.Get(&ride, query, rideID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("ride not found")
		}
		return nil, apperrors.FromStore("failed to fetch ride", err)
	}

	return &ride, nil
}

// ListOpen returns upcoming rides joined with driver and vehicle display
// data, filtered by the given predicates. Source and destination filter by
// substring, date by exact match. Every clause is parameterized; user input
// never reaches the query text.
func (r *RideRepository) ListOpen(filter models.RideFilter) ([]models.RideDetails, error) {
	conditions := []string{"r.ride_date >= CURRENT_DATE"}
	args := []interface{}{}

	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		conditions = append(conditions, fmt.Sprintf("r.source ILIKE $%d", len(args)))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		conditions = append(conditions, fmt.Sprintf("r.destination ILIKE $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, fmt.Sprintf("r.ride_date = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.driver_id, r.vehicle_id, r.source, r.destination,
		       r.ride_date, r.ride_time, r.seats_offered, r.created_at,
		       u.email AS driver_email, v.model AS vehicle_model, v.plate_no AS vehicle_plate
		FROM rides r
		JOIN users u ON r.driver_id = u.id
		JOIN vehicles v ON r.vehicle_id = v.id
		WHERE %s
		ORDER BY r.ride_date, r.ride_time
	`, strings.Join(conditions, " AND "))

	rides := []models.RideDetails{}
	if err := r.db.Select(&rides, query, args...); err != nil {
		return nil, apperrors.FromStore("failed to search rides", err)
	}

	return rides, nil
}

// ListByDriver returns all rides owned by a driver with confirmed passenger
// counts, newest trip first.
func (r *RideRepository) ListByDriver(driverID uuid.UUID) ([]models.DriverRide, error) {
	query := `
		SELECT r.id, r.driver_id, r.vehicle_id, r.source, r.destination,
		       r.ride_date, r.ride_time, r.seats_offered, r.created_at,
		       u.email AS driver_email, v.model AS vehicle_model, v.plate_no AS vehicle_plate,
		       COUNT(p.id) AS passenger_count
		FROM rides r
		JOIN users u ON r.driver_id = u.id
		JOIN vehicles v ON r.vehicle_id = v.id
		LEFT JOIN ride_participations p ON r.id = p.ride_id AND p.role = 'passenger'
		WHERE r.driver_id = $1
		GROUP BY r.id, u.email, v.model, v.plate_no
		ORDER BY r.ride_date DESC, r.ride_time DESC
	`

	rides := []models.DriverRide{}
	if err := r.db.Select(&rides, query, driverID); err != nil {
		return nil, apperrors.FromStore("failed to fetch driver rides", err)
	}

	return rides, nil
}

// ListForPassenger returns rides the user holds a passenger seat on.
func (r *RideRepository) ListForPassenger(passengerID uuid.UUID) ([]models.PassengerRide, error) {
	query := `
		SELECT r.id, r.driver_id, r.vehicle_id, r.source, r.destination,
		       r.ride_date, r.ride_time, r.seats_offered, r.created_at,
		       u.email AS driver_email
		FROM rides r
		JOIN ride_participations p ON r.id = p.ride_id
		JOIN users u ON r.driver_id = u.id
		WHERE p.passenger_id = $1 AND p.role = 'passenger'
		ORDER BY r.ride_date DESC, r.ride_time DESC
	`

	rides := []models.PassengerRide{}
	if err := r.db.Select(&rides, query, passengerID); err != nil {
		return nil, apperrors.FromStore("failed to fetch passenger rides", err)
	}

	return rides, nil
}

// DeleteCascade removes a ride together with its requests and
// participations in one transaction. Dependents go first so the delete
// never trips foreign keys.
func (r *RideRepository) DeleteCascade(rideID uuid.UUID) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return apperrors.FromStore("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ride_requests WHERE ride_id = $1`, rideID); err != nil {
		return apperrors.FromStore("failed to delete ride requests", err)
	}

	if _, err := tx.Exec(`DELETE FROM ride_participations WHERE ride_id = $1`, rideID); err != nil {
		return apperrors.FromStore("failed to delete ride participations", err)
	}

	result, err := tx.Exec(`DELETE FROM rides WHERE id = $1`, rideID)
	if err != nil {
		return apperrors.FromStore("failed to delete ride", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.FromStore("failed to delete ride", err)
	}
	if rows == 0 {
		return apperrors.NotFound("ride not found or already deleted")
	}

	if err := tx.Commit(); err != nil {
		return apperrors.FromStore("failed to commit ride deletion", err)
	}

	return nil
}

// IsOwner reports whether the given user is the driver of the ride.
func (r *RideRepository) IsOwner(rideID, userID uuid.UUID) (bool, error) {
	query := `SELECT driver_id FROM rides WHERE id = $1`

	var driverID uuid.UUID
	if err := r.db.Get(&driverID, query, rideID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperrors.NotFound("ride not found")
		}
		return false, apperrors.FromStore("failed to fetch ride owner", err)
	}

	return driverID == userID, nil
}
