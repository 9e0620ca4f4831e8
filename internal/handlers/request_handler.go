package handlers

import (
	"net/http"

	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/middleware"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/campusride/carpool-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RequestHandler exposes the join-request endpoints
type RequestHandler struct {
	matchingService *services.MatchingService
	requestRepo     *database.RideRequestRepository
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(matchingService *services.MatchingService, requestRepo *database.RideRequestRepository) *RequestHandler {
	return &RequestHandler{matchingService: matchingService, requestRepo: requestRepo}
}

// JoinRide submits a join request for the authenticated passenger
// POST /api/v1/requests
func (h *RequestHandler) JoinRide(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.JoinRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	request, err := h.matchingService.SubmitJoinRequest(userCtx.UserID, req.RideID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Join request sent successfully",
		"request": request,
	})
}

// GetPendingRequests lists pending requests against the driver's rides
// GET /api/v1/requests/pending
func (h *RequestHandler) GetPendingRequests(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.requestRepo.ListPendingForDriver(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// ResolveRequest accepts or rejects a pending request
// POST /api/v1/requests/resolve
func (h *RequestHandler) ResolveRequest(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ResolveRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
		return
	}

	err := h.matchingService.ResolveRequest(req.RequestID, req.RideID, userCtx.UserID, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request " + string(req.Action) + "ed successfully"})
}
