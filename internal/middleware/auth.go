package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gym-service/pkg/jwtutil"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

const principalKey = "user"

// RequireAuth validates the JWT token from the Authorization header and
// stores the authenticated principal in the context
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid or expired token"})
		}

		setPrincipal(c, claims)
		return next(c)
	}
}

// OptionalAuth resolves the principal when a valid bearer token is present and
// leaves the request anonymous otherwise. Used on public routes whose
// behavior is enriched by an authenticated principal (e.g. booking creation
// attributing the booking to the logged-in user).
func OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return next(c)
		}

		if claims, err := jwtutil.ValidateToken(parts[1]); err == nil {
			setPrincipal(c, claims)
		}
		return next(c)
	}
}

func setPrincipal(c echo.Context, claims *jwtutil.UserClaims) {
	c.Set(principalKey, claims)
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
}

// Principal returns the authenticated principal, or nil for anonymous requests
func Principal(c echo.Context) *jwtutil.UserClaims {
	claims, ok := c.Get(principalKey).(*jwtutil.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
