package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gym-service/internal/model"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

// TenantHeader selects a tenant on anonymous requests and lets superadmins
// impersonate a tenant
const TenantHeader = "X-Tenant-ID"

const tenantScopeKey = "tenant_id"

// TenantScope resolves the effective tenant scope for a request and attaches
// it to the context. Precedence:
//
//  1. tenant-bound principal (user, admin): the principal's own tenant; the
//     header is ignored for these roles
//  2. superadmin: the X-Tenant-ID header, if present; otherwise no scope
//  3. anonymous: the X-Tenant-ID header, if present
//  4. otherwise no scope
//
// A missing scope is not an error here; scope-requiring routes and handlers
// decide how to treat absence.
func TenantScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		var scope string
		if claims := Principal(c); claims != nil {
			role := model.Role(claims.Role)
			if role == model.RoleSuperAdmin {
				scope = c.Request().Header.Get(TenantHeader)
			} else if claims.TenantID != nil && *claims.TenantID != "" {
				scope = *claims.TenantID
			}
		} else {
			scope = c.Request().Header.Get(TenantHeader)
		}

		if scope != "" {
			c.Set(tenantScopeKey, scope)
			prometheus.RecordScopeResolution("scoped")
			log.Debug("Resolved tenant scope", zap.String("tenant_id", scope))
		} else {
			prometheus.RecordScopeResolution("unscoped")
		}

		return next(c)
	}
}

// RequireTenantScope rejects requests that did not resolve a tenant scope.
// Applied to public per-tenant reads so they can never list across tenants.
func RequireTenantScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := ScopeFromContext(c); !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "tenant context required"})
		}
		return next(c)
	}
}

// ScopeFromContext returns the effective tenant scope of the request
func ScopeFromContext(c echo.Context) (string, bool) {
	scope, ok := c.Get(tenantScopeKey).(string)
	if !ok || scope == "" {
		return "", false
	}
	return scope, true
}

// ApplyScope merges the effective tenant scope, if any, into the query as a
// mandatory tenant_id filter. With no scope the query runs unscoped across
// tenants, which is acceptable only on superadmin routes.
func ApplyScope(c echo.Context, q *gorm.DB) *gorm.DB {
	if scope, ok := ScopeFromContext(c); ok {
		return q.Where("tenant_id = ?", scope)
	}
	return q
}
