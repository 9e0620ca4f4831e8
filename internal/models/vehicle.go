package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vehicle is owned by exactly one user and never reassigned.
type Vehicle struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	PlateNo   string    `json:"plate_no" db:"plate_no"`
	Model     string    `json:"model" db:"model"`
	SeatCount int       `json:"seat_count" db:"seat_count"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AddVehicleRequest is the payload for registering a vehicle
type AddVehicleRequest struct {
	PlateNo   string `json:"plate_no" binding:"required"`
	Model     string `json:"model" binding:"required"`
	SeatCount int    `json:"seat_count" binding:"required"`
}

// Validate checks the vehicle payload
func (r *AddVehicleRequest) Validate() error {
	if r.SeatCount <= 0 {
		return fmt.Errorf("seat_count must be greater than 0")
	}
	return nil
}
