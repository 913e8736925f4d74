package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/pkg/metrics"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(gate ports.Authorizer, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile, ok := Profile(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if err := gate.Authorize(profile, allowedRoles...); err != nil {
				metrics.AuthorizationDeniedTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
