package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/zvrva/stayfinder/internal/domain"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondBindingError renders request-body validation failures as a list of
// field/message pairs.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: fe.Tag() + " validation failed"})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": out})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is treated as a storage failure: logged, returned opaque.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrDatesConflict),
		errors.Is(err, domain.ErrTooManyGuests),
		errors.Is(err, domain.ErrStatusTransition),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
