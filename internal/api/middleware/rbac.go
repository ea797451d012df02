package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// Context keys set by Auth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// RequireRole rejects accounts whose role is not listed with
// domain.ErrForbidden, rendered by the HTTP error handler. Mount it after Auth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" || !slices.Contains(roles, role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
