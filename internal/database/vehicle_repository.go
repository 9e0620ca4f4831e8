package database

import (
	"database/sql"
	"errors"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
)

// VehicleRepository handles database operations for the vehicles table
type VehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create registers a vehicle under its owner. Plate numbers are unique.
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_id, plate_no, model, seat_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}

	err := r.db.QueryRow(
		query,
		vehicle.ID, vehicle.OwnerID, vehicle.PlateNo, vehicle.Model, vehicle.SeatCount,
	).Scan(&vehicle.CreatedAt)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return apperrors.Conflict("vehicle with this plate number already exists")
		}
		return apperrors.FromStore("failed to create vehicle", err)
	}

	return nil
}

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(vehicleID uuid.UUID) (*models.Vehicle, error) {
	query := `
		SELECT id, owner_id, plate_no, model, seat_count, created_at
		FROM vehicles
		WHERE id = $1
	`

	var vehicle models.Vehicle
	if err := r.db.Get(&vehicle, query, vehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("vehicle not found")
		}
		return nil, apperrors.FromStore("failed to fetch vehicle", err)
	}

	return &vehicle, nil
}

// GetByOwnerID retrieves all vehicles registered by a user
func (r *VehicleRepository) GetByOwnerID(ownerID uuid.UUID) ([]models.Vehicle, error) {
	query := `
		SELECT id, owner_id, plate_no, model, seat_count, created_at
		FROM vehicles
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	vehicles := []models.Vehicle{}
	if err := r.db.Select(&vehicles, query, ownerID); err != nil {
		return nil, apperrors.FromStore("failed to fetch vehicles", err)
	}

	return vehicles, nil
}
