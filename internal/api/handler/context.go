package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/api/middleware"
	"github.com/playlistify/music-api/internal/core/domain"
)

// ctxProfile extracts the profile injected by the Auth middleware. A missing
// profile means the route was mounted without Auth; reject with 401.
func ctxProfile(c echo.Context) (domain.SecurityProfile, error) {
	p, ok := middleware.Profile(c)
	if !ok {
		return domain.SecurityProfile{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
