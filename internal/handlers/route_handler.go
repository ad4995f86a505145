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

// RouteHandler handles route CRUD endpoints
type RouteHandler struct {
	routeRepo *database.RouteRepository
	logger    *logrus.Logger
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository, logger *logrus.Logger) *RouteHandler {
	return &RouteHandler{routeRepo: routeRepo, logger: logger}
}

// GetAllRoutes retrieves all routes
// GET /api/v1/routes
func (h *RouteHandler) GetAllRoutes(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	routes, err := h.routeRepo.GetAll()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}

// GetRouteByID retrieves a specific route
// GET /api/v1/routes/:id
func (h *RouteHandler) GetRouteByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	route, err := h.routeRepo.GetByID(routeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

// CreateRoute creates a new route between two locations
// POST /api/v1/routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	route := &models.Route{
		Name:                req.Name,
		DepartureLocationID: req.DepartureLocationID,
		ArrivalLocationID:   req.ArrivalLocationID,
		DistanceKM:          req.DistanceKM,
		DurationMinutes:     req.DurationMinutes,
		Price:               req.Price,
	}
	if err := h.routeRepo.Create(route); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

// UpdateRoute applies a partial update to a route
// PUT /api/v1/routes/:id
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var req models.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == nil && req.DepartureLocationID == nil && req.ArrivalLocationID == nil &&
		req.DistanceKM == nil && req.DurationMinutes == nil && req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	current, err := h.routeRepo.GetByID(routeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := req.ValidateAgainst(current); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.routeRepo.Update(routeID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	route, err := h.routeRepo.GetByID(routeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, route)
}

// DeleteRoute deletes a route
// DELETE /api/v1/routes/:id
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if !policy.ReadOnlyUnlessAdmin(userCtx.AuthContext(), true) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	if err := h.routeRepo.Delete(routeID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}
