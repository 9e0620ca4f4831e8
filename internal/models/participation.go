package models

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationRole distinguishes who sits where. The driver is the implicit
// owner of the ride and never gets a participation row.
type ParticipationRole string

const (
	RolePassenger ParticipationRole = "passenger"
)

// Participation is a confirmed passenger seat on a ride. Created exactly
// once per accepted request, never updated, deleted only when the ride is.
type Participation struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	RideID      uuid.UUID         `json:"ride_id" db:"ride_id"`
	PassengerID uuid.UUID         `json:"passenger_id" db:"passenger_id"`
	Role        ParticipationRole `json:"role" db:"role"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
}
