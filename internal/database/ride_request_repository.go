package database

import (
	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
)

// RideRequestRepository handles database operations for the ride_requests table
type RideRequestRepository struct {
	db DB
}

// NewRideRequestRepository creates a new RideRequestRepository
func NewRideRequestRepository(db DB) *RideRequestRepository {
	return &RideRequestRepository{db: db}
}

// ListPendingForDriver returns all pending join requests against rides the
// driver owns, joined with passenger and vehicle display data, newest first.
func (r *RideRequestRepository) ListPendingForDriver(driverID uuid.UUID) ([]models.PendingRequest, error) {
	query := `
		SELECT rr.id, rr.ride_id, rr.passenger_id, rr.source, rr.destination,
		       rr.ride_date, rr.ride_time, rr.status, rr.created_at, rr.updated_at,
		       u.email AS passenger_email, v.model AS vehicle_model, v.plate_no AS vehicle_plate
		FROM ride_requests rr
		JOIN rides r ON rr.ride_id = r.id
		JOIN users u ON rr.passenger_id = u.id
		JOIN vehicles v ON r.vehicle_id = v.id
		WHERE r.driver_id = $1 AND rr.status = 'pending'
		ORDER BY rr.created_at DESC
	`

	requests := []models.PendingRequest{}
	if err := r.db.Select(&requests, query, driverID); err != nil {
		return nil, apperrors.FromStore("failed to fetch pending requests", err)
	}

	return requests, nil
}
