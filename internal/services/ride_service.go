package services

import (
	"time"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/campusride/carpool-backend/internal/observability"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RideService implements the ride registry: publishing, listing, searching
// and deleting rides. Mutations are gated on ride ownership.
type RideService struct {
	rideRepo    *database.RideRepository
	vehicleRepo *database.VehicleRepository
	logger      *logrus.Logger
}

// NewRideService creates a new RideService
func NewRideService(rideRepo *database.RideRepository, vehicleRepo *database.VehicleRepository, logger *logrus.Logger) *RideService {
	return &RideService{rideRepo: rideRepo, vehicleRepo: vehicleRepo, logger: logger}
}

// CreateRide publishes a ride for the given driver. The vehicle must belong
// to the driver and the seat count must be positive.
func (s *RideService) CreateRide(driverID uuid.UUID, req *models.CreateRideRequest) (*models.Ride, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	vehicle, err := s.vehicleRepo.GetByID(req.VehicleID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("vehicle not found")
		}
		return nil, err
	}
	if vehicle.OwnerID != driverID {
		return nil, apperrors.Validation("vehicle is not owned by you")
	}

	rideDate, err := time.Parse("2006-01-02", req.RideDate)
	if err != nil {
		return nil, apperrors.Validation("invalid ride_date format, use YYYY-MM-DD")
	}

	ride := &models.Ride{
		DriverID:     driverID,
		VehicleID:    req.VehicleID,
		Source:       req.Source,
		Destination:  req.Destination,
		RideDate:     rideDate,
		RideTime:     req.RideTime,
		SeatsOffered: req.SeatsOffered,
	}

	if err := s.rideRepo.Create(ride); err != nil {
		return nil, err
	}

	observability.RidesCreated.Inc()
	s.logger.WithFields(logrus.Fields{
		"ride_id":   ride.ID,
		"driver_id": driverID,
		"seats":     ride.SeatsOffered,
	}).Info("Ride created")

	return ride, nil
}

// ListOpenRides returns upcoming rides matching the filter.
func (s *RideService) ListOpenRides(filter models.RideFilter) ([]models.RideDetails, error) {
	if filter.Date != "" {
		if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
			return nil, apperrors.Validation("invalid date filter, use YYYY-MM-DD")
		}
	}
	return s.rideRepo.ListOpen(filter)
}

// ListRidesForDriver returns the driver's own rides with passenger counts.
func (s *RideService) ListRidesForDriver(driverID uuid.UUID) ([]models.DriverRide, error) {
	return s.rideRepo.ListByDriver(driverID)
}

// DeleteRide removes a ride and everything hanging off it. Only the owning
// driver may delete.
func (s *RideService) DeleteRide(rideID, requesterID uuid.UUID) error {
	owner, err := s.rideRepo.IsOwner(rideID, requesterID)
	if err != nil {
		return err
	}
	if !owner {
		return apperrors.Authorization("you do not own this ride")
	}

	if err := s.rideRepo.DeleteCascade(rideID); err != nil {
		return err
	}

	observability.RidesDeleted.Inc()
	s.logger.WithFields(logrus.Fields{
		"ride_id":   rideID,
		"driver_id": requesterID,
	}).Info("Ride deleted")

	return nil
}

// IsOwner reports whether userID drives the ride.
func (s *RideService) IsOwner(rideID, userID uuid.UUID) (bool, error) {
	return s.rideRepo.IsOwner(rideID, userID)
}
