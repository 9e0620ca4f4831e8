package handlers

import (
	"net/http"

	"github.com/campusride/carpool-backend/internal/middleware"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/campusride/carpool-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RideHandler exposes the ride registry endpoints
type RideHandler struct {
	rideService *services.RideService
}

// NewRideHandler creates a new RideHandler
func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRide publishes a ride for the authenticated driver
// POST /api/v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	ride, err := h.rideService.CreateRide(userCtx.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ride)
}

// ListOpenRides lists upcoming rides, optionally filtered
// GET /api/v1/rides?source=&destination=&date=
func (h *RideHandler) ListOpenRides(c *gin.Context) {
	filter := models.RideFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
	}

	rides, err := h.rideService.ListOpenRides(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rides)
}

// GetMyRides lists the authenticated driver's rides
// GET /api/v1/rides/mine
func (h *RideHandler) GetMyRides(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rides, err := h.rideService.ListRidesForDriver(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rides)
}

// DeleteRide removes a ride owned by the authenticated driver
// DELETE /api/v1/rides/:id
func (h *RideHandler) DeleteRide(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ride id", "code": "VALIDATION_ERROR"})
		return
	}

	if err := h.rideService.DeleteRide(rideID, userCtx.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ride deleted successfully"})
}
