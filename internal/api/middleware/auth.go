package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// Bodies of the 401 responses. Clients match on these literals.
const (
	NoToken   = "NOT_TOKEN"
	NoSession = "NOT_SESSION"
)

// UserFinder resolves the account a token was issued to.
type UserFinder interface {
	FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.User, error)
}

// Auth verifies the bearer token, checks it was issued for purpose and that
// its account is still active, then injects user_id and role.
func Auth(tokens ports.TokenIssuer, users UserFinder, purpose ports.TokenPurpose) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.String(http.StatusUnauthorized, NoToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return c.String(http.StatusUnauthorized, NoSession)
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil || claims.Purpose != purpose {
				return c.String(http.StatusUnauthorized, NoSession)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID, domain.ScopeActive)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return c.String(http.StatusUnauthorized, NoSession)
				}
				return err
			}

			c.Set(ContextUserID, user.ID)
			c.Set(ContextRole, user.Role)
			return next(c)
		}
	}
}
