package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the state of a join request. Requests start pending and
// transition exactly once, to matched or rejected.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestMatched  RequestStatus = "matched"
	RequestRejected RequestStatus = "rejected"
)

// ResolveAction is what a driver does with a pending request.
type ResolveAction string

const (
	ActionAccept ResolveAction = "accept"
	ActionReject ResolveAction = "reject"
)

// Valid reports whether the action is one of accept/reject.
func (a ResolveAction) Valid() bool {
	return a == ActionAccept || a == ActionReject
}

// RideRequest is a passenger's bid to join a specific ride. The source,
// destination, date and time fields snapshot the ride at submission time so
// a later generalized matcher can work from the rider's stated preference.
type RideRequest struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	RideID      uuid.UUID     `json:"ride_id" db:"ride_id"`
	PassengerID uuid.UUID     `json:"passenger_id" db:"passenger_id"`
	Source      string        `json:"source" db:"source"`
	Destination string        `json:"destination" db:"destination"`
	RideDate    time.Time     `json:"ride_date" db:"ride_date"`
	RideTime    string        `json:"ride_time" db:"ride_time"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// PendingRequest is a pending join request joined with the passenger, ride
// and vehicle display data a driver needs to decide on it.
type PendingRequest struct {
	RideRequest
	PassengerEmail string `json:"passenger_email" db:"passenger_email"`
	VehicleModel   string `json:"vehicle_model" db:"vehicle_model"`
	VehiclePlate   string `json:"vehicle_plate" db:"vehicle_plate"`
}

// JoinRideRequest is the payload for submitting a join request
type JoinRideRequest struct {
	RideID uuid.UUID `json:"ride_id" binding:"required"`
}

// ResolveRequestPayload is the payload for accepting or rejecting a request
type ResolveRequestPayload struct {
	RequestID uuid.UUID     `json:"request_id" binding:"required"`
	RideID    uuid.UUID     `json:"ride_id" binding:"required"`
	Action    ResolveAction `json:"action" binding:"required"`
}
