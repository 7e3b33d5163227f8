package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps a service error to a status code and a JSON body.
// Validation failures carry a "fields" map of field path to message.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var seatErr *domain.DuplicateSeatError

	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, domain.ErrEmptyTickets):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": gin.H{"tickets": err.Error()}})
	case errors.As(err, &seatErr):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":  domain.ErrDuplicateSeat.Error(),
			"flight": seatErr.FlightID,
			"row":    seatErr.Row,
			"seat":   seatErr.Seat,
		})
	case errors.Is(err, domain.ErrDuplicateSeat):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": domain.ErrDuplicateSeat.Error()})
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
