package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/policy"
)

// LocationHandler handles location CRUD endpoints
type LocationHandler struct {
	locationRepo *database.LocationRepository
	logger       *logrus.Logger
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationRepo *database.LocationRepository, logger *logrus.Logger) *LocationHandler {
	return &LocationHandler{locationRepo: locationRepo, logger: logger}
}

// GetAllLocations retrieves all locations
// GET /api/v1/locations
func (h *LocationHandler) GetAllLocations(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	locations, err := h.locationRepo.GetAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// GetLocationByID retrieves a specific location
// GET /api/v1/locations/:id
func (h *LocationHandler) GetLocationByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	location, err := h.locationRepo.GetByID(locationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// CreateLocation creates a new location
// POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	var req models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	location := &models.Location{
		City:    req.City,
		Address: req.Address,
	}
	if err := h.locationRepo.Create(location); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, location)
}

// UpdateLocation applies a partial update to a location
// PUT /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var req models.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.City == nil && req.Address == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.locationRepo.Update(locationID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	location, err := h.locationRepo.GetByID(locationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// DeleteLocation deletes a location and, via cascade, its routes and schedules
// DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.locationRepo.Delete(locationID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
