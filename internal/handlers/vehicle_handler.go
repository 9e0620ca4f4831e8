package handlers

import (
	"net/http"

	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/middleware"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// VehicleHandler exposes vehicle registration and listing
type VehicleHandler struct {
	vehicleRepo *database.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleRepo *database.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{vehicleRepo: vehicleRepo}
}

// AddVehicle registers a vehicle under the authenticated user
// POST /api/v1/vehicles
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	vehicle := &models.Vehicle{
		OwnerID:   userCtx.UserID,
		PlateNo:   req.PlateNo,
		Model:     req.Model,
		SeatCount: req.SeatCount,
	}

	if err := h.vehicleRepo.Create(vehicle); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetMyVehicles lists the authenticated user's vehicles
// GET /api/v1/vehicles
func (h *VehicleHandler) GetMyVehicles(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vehicles, err := h.vehicleRepo.GetByOwnerID(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicles)
}
