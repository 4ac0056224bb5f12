package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gym-service/internal/model"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

// RequireRole is a declarative route guard: the authenticated principal's
// role must be in the allowed set. Evaluated once per route registration.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims := Principal(c)
			if claims == nil {
				log.Warn("Role-gated route accessed without principal")
				prometheus.RecordAuthError("missing_principal")
				return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "authentication required"})
			}

			if _, ok := allowed[model.Role(claims.Role)]; !ok {
				log.Warn("Insufficient role for route",
					zap.String("user_id", claims.UserID),
					zap.String("role", claims.Role),
					zap.String("path", c.Path()))
				prometheus.RecordAuthError("insufficient_role")
				return c.JSON(http.StatusForbidden, echo.Map{"status": "error", "message": "you do not have permission to perform this action"})
			}

			return next(c)
		}
	}
}
