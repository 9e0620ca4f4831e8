package handlers

import (
	"net/http"

	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileHandler assembles the user's full profile view: their record,
// vehicles, rides as driver and rides as passenger.
type ProfileHandler struct {
	userRepo    *database.UserRepository
	vehicleRepo *database.VehicleRepository
	rideRepo    *database.RideRepository
	sessionRepo *database.SessionRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo *database.UserRepository, vehicleRepo *database.VehicleRepository, rideRepo *database.RideRepository, sessionRepo *database.SessionRepository) *ProfileHandler {
	return &ProfileHandler{
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		rideRepo:    rideRepo,
		sessionRepo: sessionRepo,
	}
}

// GetProfile returns the full profile of the authenticated user
// GET /api/v1/user/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userRepo.GetByID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	vehicles, err := h.vehicleRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	driverRides, err := h.rideRepo.ListByDriver(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	passengerRides, err := h.rideRepo.ListForPassenger(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	sessions, err := h.sessionRepo.ListByUser(userCtx.UserID, 5)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"vehicles":        vehicles,
		"driver_rides":    driverRides,
		"passenger_rides": passengerRides,
		"recent_sessions": sessions,
	})
}
