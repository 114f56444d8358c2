package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ErrorFor maps an error to its HTTP status and response body. Errors outside the
// apperr taxonomy become a generic 500 so internals are never leaked.
func ErrorFor(err error) (int, ErrorResponse) {
	kind := apperr.Kind(err)
	var status int
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidArgument), errors.Is(err, apperr.ErrDataFormat):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrPermissionDenied):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrAuth):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperr.ErrConflict):
		status = fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError, ErrorResponse{Message: "internal server error", Error: kind}
	}
	return status, ErrorResponse{Message: err.Error(), Error: kind}
}
