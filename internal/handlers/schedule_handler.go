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

// ScheduleHandler handles schedule CRUD and filtered listing endpoints
type ScheduleHandler struct {
	scheduleRepo *database.ScheduleRepository
	logger       *logrus.Logger
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleRepo *database.ScheduleRepository, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduleRepo: scheduleRepo, logger: logger}
}

// ListSchedules retrieves schedules, optionally filtered by departure city,
// arrival city and departure date. All filters are combined with AND.
// GET /api/v1/schedules?departure=Col&arrival=Kan&date=2026-01-15
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	filter := models.ScheduleFilter{
		Departure: c.Query("departure"),
		Arrival:   c.Query("arrival"),
		Date:      c.Query("date"),
	}

	schedules, err := h.scheduleRepo.List(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetScheduleByID retrieves a specific schedule
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetScheduleByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	schedule, err := h.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// CreateSchedule creates a new schedule
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	schedule := &models.Schedule{
		BusID:               req.BusID,
		DepartureLocationID: req.DepartureLocationID,
		ArrivalLocationID:   req.ArrivalLocationID,
		DepartureTime:       req.DepartureTime,
		ArrivalTime:         req.ArrivalTime,
		Price:               req.Price,
		AvailableSeats:      req.AvailableSeats,
	}
	if err := h.scheduleRepo.Create(schedule); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// UpdateSchedule applies a partial update to a schedule. Cross-field
// invariants are validated against the stored row merged with the request.
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	var req models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BusID == nil && req.DepartureLocationID == nil && req.ArrivalLocationID == nil &&
		req.DepartureTime == nil && req.ArrivalTime == nil &&
		req.Price == nil && req.AvailableSeats == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	current, err := h.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := req.ValidateAgainst(current); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.scheduleRepo.Update(scheduleID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	schedule, err := h.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule deletes a schedule
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	if err := h.scheduleRepo.Delete(scheduleID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}
