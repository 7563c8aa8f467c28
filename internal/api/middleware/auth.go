package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nectarnook/catalog-api/internal/api/metrics"
	"github.com/nectarnook/catalog-api/internal/core/ports"
)

// Auth validates the bearer token and injects the authenticated subject into
// the request context under "username". Signature and expiry checks are
// delegated to the auth service so there is exactly one verification path.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := authService.VerifyToken(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("failure").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set("username", subject)

			return next(c)
		}
	}
}
