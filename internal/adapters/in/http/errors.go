package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/pkg/errs"
)

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Code            int      `json:"code"`
	Message         string   `json:"message"`
	CurrentStatus   string   `json:"currentStatus,omitempty"`
	AllowedStatuses []string `json:"allowedStatuses,omitempty"`
}

// writeError maps application errors onto HTTP status codes. Illegal status
// transitions additionally expose the current status and the legal next
// statuses so clients can recover without another round trip.
func writeError(c echo.Context, err error) error {
	var statusConflict *errs.StatusConflictError
	if errors.As(err, &statusConflict) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:            http.StatusConflict,
			Message:         err.Error(),
			CurrentStatus:   statusConflict.Current,
			AllowedStatuses: statusConflict.Allowed,
		})
	}

	switch {
	case errors.Is(err, errs.ErrVersionConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func writeBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
