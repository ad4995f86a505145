package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/policy"
	"github.com/citytransit/bus-reservation-backend/internal/services"
)

// ProfileHandler handles user profile endpoints
type ProfileHandler struct {
	profiles   *database.ProfileRepository
	profileSvc *services.ProfileService
	logger     *logrus.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	profiles *database.ProfileRepository,
	profileSvc *services.ProfileService,
	logger *logrus.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles:   profiles,
		profileSvc: profileSvc,
		logger:     logger,
	}
}

// GetProfile returns the caller's profile, or every profile when the caller
// is an admin. A missing profile is provisioned on first access.
// GET /api/v1/users/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if policy.AdminOnly(userCtx.AuthContext()) {
		profiles, err := h.profiles.GetAll()
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, profiles)
		return
	}

	profile, err := h.profileSvc.EnsureProfile(userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the caller's profile. Admins may
// target another identity's profile via user_id and may change the admin
// flag; both are ignored-with-403 for everyone else.
// PATCH /api/v1/users/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if req.FullName == nil && req.Phone == nil && req.IsAdmin == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	actx := userCtx.AuthContext()
	targetUserID := userCtx.UserID
	if req.UserID != nil && *req.UserID != userCtx.UserID {
		targetUserID = *req.UserID
	}

	// Targeting another profile and toggling the admin flag are admin-only
	if !policy.OwnerOrAdmin(actx, targetUserID) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}
	if req.IsAdmin != nil && !policy.AdminOnly(actx) {
		respondError(c, h.logger, models.ErrPermissionDenied)
		return
	}

	if err := h.profiles.Update(targetUserID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.profiles.GetByUserID(targetUserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
