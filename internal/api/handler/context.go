package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/albaranes/deliverynotes-api/internal/api/middleware"
	"github.com/albaranes/deliverynotes-api/internal/core/domain"
)

// currentUser returns the id injected by the Auth middleware. An empty id
// means the route was mounted without it.
func currentUser(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bind decodes the body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// softDelete reads ?soft=. Only the literal "false" selects a hard delete.
func softDelete(c echo.Context) bool {
	return c.QueryParam("soft") != "false"
}

func scope(c echo.Context) domain.Scope {
	return domain.ParseScope(c.QueryParam("scope"))
}
