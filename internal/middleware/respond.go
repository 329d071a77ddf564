package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
)

// StatusClientClosedRequest is the nginx convention for a client-cancelled
// request; there is no net/http constant for it.
const StatusClientClosedRequest = 499

// ValidationProblem is the error body for failed validation.
type ValidationProblem struct {
	Status   int                 `json:"status"`
	Title    string              `json:"title"`
	Detail   string              `json:"detail"`
	Instance string              `json:"instance"`
	Errors   map[string][]string `json:"errors"`
}

// RespondWithError writes a plain message body with the given status.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// RespondWithValidationProblem writes the structured validation failure body.
func RespondWithValidationProblem(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, ValidationProblem{
		Status:   http.StatusBadRequest,
		Title:    "Validation failed",
		Detail:   "Validation errors occurred",
		Instance: c.FullPath(),
		Errors:   fields,
	})
}

// WriteError maps a service error onto the HTTP taxonomy: 499 cancelled,
// 400 validation, 404 not found, 401/403 auth, 409 restrict-delete conflict,
// 500 otherwise.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrCancelled):
		c.Status(StatusClientClosedRequest)
	case errors.Is(err, apperr.ErrUnauthorized):
		RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperr.ErrForbidden):
		RespondWithError(c, http.StatusForbidden, "You can't do this")
	case errors.Is(err, apperr.ErrRefreshTokenExpired):
		RespondWithError(c, http.StatusUnauthorized, "The refresh token has expired")
	case errors.Is(err, apperr.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		RespondWithError(c, http.StatusConflict, err.Error())
	default:
		if ve, ok := apperr.AsValidation(err); ok {
			RespondWithValidationProblem(c, ve.Fields)
			return
		}
		_ = c.Error(err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
