package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/services"
)

// AuthHandler handles registration, login and token lifecycle endpoints
type AuthHandler struct {
	authService *services.AuthService
	profileSvc  *services.ProfileService
	userRepo    *database.UserRepository
	logger      *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService *services.AuthService,
	profileSvc *services.ProfileService,
	userRepo *database.UserRepository,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		profileSvc:  profileSvc,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Register creates a new identity and profile
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, profile, tokens, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   models.NewUserResponse(user, profile),
		"tokens": tokens,
	})
}

// Login verifies credentials and returns a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, profile, tokens, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   models.NewUserResponse(user, profile),
		"tokens": tokens,
	})
}

// RefreshToken exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout revokes the caller's refresh tokens
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(userCtx.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CurrentUser returns the caller's identity
// GET /api/v1/auth/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userCtx, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.profileSvc.EnsureProfile(user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user, profile))
}
