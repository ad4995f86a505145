package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/middleware"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/services"
)

// respondError maps domain errors onto HTTP responses. Validation and state
// errors become field-keyed 400s, permission errors 403, missing resources
// 404. Anything unrecognized is logged with detail server-side and returned
// as a generic 500 so no internal detail leaks to the caller.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	if ve, ok := models.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{ve.Field: ve.Message})
		return
	}

	switch {
	case errors.Is(err, models.ErrCannotCancel):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot cancel this reservation"})
	case errors.Is(err, models.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, models.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, services.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
	default:
		logger.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUser fetches the authenticated user context, writing a 401 when the
// auth middleware did not run
func currentUser(c *gin.Context) (middleware.UserContext, bool) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userCtx, exists
}
