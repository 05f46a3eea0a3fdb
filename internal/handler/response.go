package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"charter/internal/repository"
	"charter/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		// Never leak storage internals to callers.
		c.JSON(code, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrUnknownDestination),
		errors.Is(err, service.ErrInvalidPassengerCount),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidTransactionID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidFlightDate),
		errors.Is(err, service.ErrInvalidTransactionStatus),
		errors.Is(err, service.ErrUnsupportedPaymentMethod),
		errors.Is(err, service.ErrCapacityExceeded):
		return http.StatusBadRequest

	// Payment required
	case errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusPaymentRequired

	// Conflict errors
	case errors.Is(err, service.ErrBookingAlreadyPaid),
		errors.Is(err, service.ErrBookingNotPaid),
		errors.Is(err, service.ErrBookingAlreadyCancelled),
		errors.Is(err, service.ErrTransactionAlreadyProcessed),
		errors.Is(err, service.ErrHelicopterUnavailable),
		errors.Is(err, service.ErrExperienceInactive),
		errors.Is(err, service.ErrOperationInProgress):
		return http.StatusConflict

	// Forbidden/ownership errors
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrBookingNotOwned):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
