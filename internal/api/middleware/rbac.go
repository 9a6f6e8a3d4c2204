package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/catalog-system/internal/api/metrics"
	"github.com/bookhaven/catalog-system/internal/core/authz"
	"github.com/bookhaven/catalog-system/internal/core/domain"
)

// RBAC enforces the static role policy for op. It must run after Auth.
func RBAC(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := authz.Authorize(ClaimsFrom(c), op)
			if !decision.Allowed {
				metrics.AuthzDenialsTotal.WithLabelValues(string(decision.Reason)).Inc()
				if decision.Reason == domain.DenyNotAuthenticated {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
				}
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
