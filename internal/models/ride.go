package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ride is a driver-published trip offer. SeatsOffered always reflects the
// seats still open: it is decremented each time a join request is accepted
// and never goes below zero.
type Ride struct {
	ID           uuid.UUID `json:"id" db:"id"`
	DriverID     uuid.UUID `json:"driver_id" db:"driver_id"`
	VehicleID    uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Source       string    `json:"source" db:"source"`
	Destination  string    `json:"destination" db:"destination"`
	RideDate     time.Time `json:"ride_date" db:"ride_date"`
	RideTime     string    `json:"ride_time" db:"ride_time"`
	SeatsOffered int       `json:"seats_offered" db:"seats_offered"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RideDetails is a ride joined with driver and vehicle display data, as
// shown in ride listings.
type RideDetails struct {
	Ride
	DriverEmail  string `json:"driver_email" db:"driver_email"`
	VehicleModel string `json:"vehicle_model" db:"vehicle_model"`
	VehiclePlate string `json:"vehicle_plate" db:"vehicle_plate"`
}

// DriverRide is a ride as shown on the driver's own dashboard, with the
// number of confirmed passengers.
type DriverRide struct {
	RideDetails
	PassengerCount int `json:"passenger_count" db:"passenger_count"`
}

// PassengerRide is a ride the user participates in as a passenger.
type PassengerRide struct {
	Ride
	DriverEmail string `json:"driver_email" db:"driver_email"`
}

// RideFilter holds the optional predicates for searching open rides.
// Source and destination are substring matches, date is an exact match.
type RideFilter struct {
	Source      string
	Destination string
	Date        string
}

// CreateRideRequest is the payload for publishing a ride
type CreateRideRequest struct {
	VehicleID    uuid.UUID `json:"vehicle_id" binding:"required"`
	Source       string    `json:"source" binding:"required"`
	Destination  string    `json:"destination" binding:"required"`
	RideDate     string    `json:"ride_date" binding:"required"`
	RideTime     string    `json:"ride_time" binding:"required"`
	SeatsOffered int       `json:"seats_offered" binding:"required"`
}

// Validate checks the ride payload
func (r *CreateRideRequest) Validate() error {
	if r.SeatsOffered <= 0 {
		return fmt.Errorf("seats_offered must be greater than 0")
	}
	if _, err := time.Parse("2006-01-02", r.RideDate); err != nil {
		return fmt.Errorf("invalid ride_date format, use YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", r.RideTime); err != nil {
		return fmt.Errorf("invalid ride_time format, use HH:MM")
	}
	return nil
}
