// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/pokedex-service/internal/repository"
	"github.com/maxviazov/pokedex-service/internal/service"
)

// ErrMalformedBody marks a request body that could not be decoded (bad JSON, unknown field, wrong type).
var ErrMalformedBody = errors.New("malformed request body")

// detailsKey is the gin context key that enables internal error details in 500 payloads.
const detailsKey = "response.expose_details"

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
	Details     string               `json:"details,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more parameters are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_body", Message: err.Error()}
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity, ErrorPayload{
			Error:       "validation_failed",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	case errors.Is(err, repository.ErrConstraint):
		return http.StatusUnprocessableEntity, ErrorPayload{Error: "constraint_violation"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// ExposeDetails returns middleware that, when enabled, adds the underlying error text to 500 responses.
// Meant for dev environments only.
func ExposeDetails(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(detailsKey, enabled)
		c.Next()
	}
}

// WriteError writes an error response and aborts the context.
// The error is also attached to the context so access logging can report it.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status == http.StatusInternalServerError && c.GetBool(detailsKey) {
		payload.Details = err.Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
