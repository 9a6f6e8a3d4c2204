package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/catalog-system/internal/core/token"
)

// ClaimsKey is the echo context key under which Auth stores the verified
// claims.
const ClaimsKey = "claims"

// TokenVerifier validates a raw bearer token and returns its claims. The
// access-control facade implements it.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*token.Claims, error)
}

// Auth validates the bearer token and injects the verified claims into
// the request context. Expired and invalid tokens both map to 401 but
// carry distinct messages.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
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

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the claims stored by Auth, or nil when the request
// never passed through it.
func ClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(ClaimsKey).(*token.Claims)
	return claims
}
