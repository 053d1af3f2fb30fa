package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireachef/backend/internal/models"
	"github.com/hireachef/backend/internal/service"
)

// respondError maps service errors onto HTTP statuses. Unknown errors
// are logged and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrChefNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrMenuNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrDuplicateReview):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrChefRateUnset),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrCancellationWindow),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrPaymentNotSucceeded),
		errors.Is(err, service.ErrAlreadyRefunded),
		isTransitionError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[API] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func isTransitionError(err error) bool {
	var te *models.TransitionError
	return errors.As(err, &te)
}
