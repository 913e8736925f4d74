package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
	"github.com/playlistify/music-api/internal/pkg/metrics"
)

// ProfileKey is the echo.Context key holding the verified domain.SecurityProfile.
const ProfileKey = "profile"

// Auth verifies the bearer token and injects the caller's profile into context.
// Every failure is a generic 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			profile, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(ProfileKey, profile)

			return next(c)
		}
	}
}

// Profile returns the profile stored by Auth.
func Profile(c echo.Context) (domain.SecurityProfile, bool) {
	p, ok := c.Get(ProfileKey).(domain.SecurityProfile)
	if !ok || p.ID == "" {
		return domain.SecurityProfile{}, false
	}
	return p, true
}
