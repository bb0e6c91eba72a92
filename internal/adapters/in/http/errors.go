package http

import (
	"errors"
	"net/http"

	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func statusFor(err error) int {
	var httpErr *echo.HTTPError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &validationErr),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, vehicle.ErrCapacityExceeded),
		errors.Is(err, services.ErrNoCapacityAvailable),
		errors.Is(err, services.ErrNoDriverAvailable),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	body := Error{Code: code, Message: err.Error()}

	var httpErr *echo.HTTPError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &httpErr):
		body.Message = http.StatusText(code)
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	case errors.As(err, &validationErr):
		body.Message = "validation failed"
		body.Fields = validationErr.Fields
	case code == http.StatusInternalServerError:
		s.logger.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
		body.Message = "internal server error"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
