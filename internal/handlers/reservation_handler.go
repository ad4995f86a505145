package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/services"
)

// ReservationHandler handles reservation lifecycle endpoints
type ReservationHandler struct {
	reservationService *services.ReservationService
	logger             *logrus.Logger
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationService *services.ReservationService, logger *logrus.Logger) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService, logger: logger}
}

// ListReservations returns all reservations for admins and only the
// caller's own reservations otherwise
// GET /api/v1/reservations
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	reservations, err := h.reservationService.List(userCtx.AuthContext())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListOwnReservations returns the caller's reservations regardless of role
// GET /api/v1/reservations/user
func (h *ReservationHandler) ListOwnReservations(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	reservations, err := h.reservationService.ListOwn(userCtx.AuthContext())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// CreateReservation books seats on a schedule for the caller
// POST /api/v1/reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.reservationService.Create(userCtx.AuthContext(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservationByID retrieves a single reservation, owner or admin only
// GET /api/v1/reservations/:id
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	reservation, err := h.reservationService.Get(userCtx.AuthContext(), reservationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation cancels a confirmed reservation, owner or admin only
// POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	reservation, err := h.reservationService.Cancel(userCtx.AuthContext(), reservationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation removes a reservation outright, admin only
// DELETE /api/v1/reservations/:id
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.reservationService.Delete(userCtx.AuthContext(), reservationID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}
