package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/albaranes/deliverynotes-api/internal/api/handler"
	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error  string               `json:"error"`
	Fields []handler.FieldError `json:"fields"`
}

// statusByError maps domain errors to HTTP codes. Order matters only where
// one error wraps another.
var statusByError = []struct {
	err  error
	code int
}{
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrClientNotFound, http.StatusNotFound},
	{domain.ErrProjectNotFound, http.StatusNotFound},
	{domain.ErrDeliveryNoteNotFound, http.StatusNotFound},
	{domain.ErrNotDeleted, http.StatusNotFound},
	{domain.ErrNotFound, http.StatusNotFound},

	{domain.ErrEmailTaken, http.StatusConflict},
	{domain.ErrTaxIDTaken, http.StatusConflict},
	{domain.ErrClientExists, http.StatusConflict},
	{domain.ErrProjectExists, http.StatusConflict},
	{domain.ErrAlreadySigned, http.StatusConflict},
	{domain.ErrAlreadyVerified, http.StatusConflict},

	{domain.ErrProjectClientMismatch, http.StatusUnprocessableEntity},
	{domain.ErrInvalidDate, http.StatusUnprocessableEntity},
	{domain.ErrInvalidDateRange, http.StatusUnprocessableEntity},
	{domain.ErrInvalidFormat, http.StatusUnprocessableEntity},
	{domain.ErrInvalidCode, http.StatusUnprocessableEntity},
	{domain.ErrTooManyAttempts, http.StatusUnprocessableEntity},
	{domain.ErrCompanyRequired, http.StatusUnprocessableEntity},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders validation failures as 422 with per-field messages.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusUnprocessableEntity, validationResponse{Error: "validation failed", Fields: ve.Fields})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.code, m.err.Error()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
