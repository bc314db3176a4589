package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fooddelivery/internal/pkg/errs"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError renders domain errors with their mapped status. Internal errors are logged
// and answered with a generic message.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		_ = c.JSON(he.Code, ErrorResponse{Code: he.Code, Message: message})
		return
	}

	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = "Internal server error"
	}

	_ = c.JSON(status, ErrorResponse{Code: status, Message: message})
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
