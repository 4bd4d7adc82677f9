package http

import (
	"context"
	"errors"
	"net/http"

	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusOf(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrVerificationRequired),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrVerificationInProgress),
		errors.Is(err, errs.ErrAlreadyVerified):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(c echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()

	switch code {
	case http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = "Internal server error"
	case http.StatusUnauthorized:
		message = "Unauthorized"
	}

	return c.JSON(code, Error{Code: code, Message: message})
}
