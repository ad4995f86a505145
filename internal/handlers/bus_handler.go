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

// BusHandler handles bus CRUD endpoints. Reads are open to any authenticated
// caller; writes require an admin.
type BusHandler struct {
	busRepo *database.BusRepository
	logger  *logrus.Logger
}

// NewBusHandler creates a new BusHandler
func NewBusHandler(busRepo *database.BusRepository, logger *logrus.Logger) *BusHandler {
	return &BusHandler{busRepo: busRepo, logger: logger}
}

// GetAllBuses retrieves all buses
// GET /api/v1/buses
func (h *BusHandler) GetAllBuses(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	buses, err := h.busRepo.GetAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// GetBusByID retrieves a specific bus
// GET /api/v1/buses/:id
func (h *BusHandler) GetBusByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	bus, err := h.busRepo.GetByID(busID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}

// CreateBus creates a new bus
// POST /api/v1/buses
func (h *BusHandler) CreateBus(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Duplicate plates get a field-level error rather than a raw DB failure
	existing, err := h.busRepo.GetByPlateNumber(req.PlateNumber)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if existing != nil {
		respondError(c, h.logger, models.NewValidationError("plate_number", "a bus with this plate number already exists"))
		return
	}

	bus := &models.Bus{
		PlateNumber: req.PlateNumber,
		Capacity:    req.Capacity,
		Model:       req.Model,
	}
	if err := h.busRepo.Create(bus); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, bus)
}

// UpdateBus applies a partial update to a bus
// PUT /api/v1/buses/:id
func (h *BusHandler) UpdateBus(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	var req models.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.PlateNumber == nil && req.Capacity == nil && req.Model == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.busRepo.Update(busID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	bus, err := h.busRepo.GetByID(busID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}

// DeleteBus deletes a bus and, via cascade, its schedules
// DELETE /api/v1/buses/:id
func (h *BusHandler) DeleteBus(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	busID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bus ID"})
		return
	}

	if err := h.busRepo.Delete(busID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted"})
}
