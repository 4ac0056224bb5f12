package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gym-service/internal/middleware"
	"gym-service/internal/model"
	"gym-service/pkg/database"
	"gym-service/pkg/jwtutil"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

// canAccessTenant applies the tenant directory ownership rule: a superadmin
// may act on any tenant, an admin only on their own. Mismatches are denials,
// not a not-found.
func canAccessTenant(claims *jwtutil.UserClaims, tenantID string) bool {
	role := model.Role(claims.Role)
	if role == model.RoleSuperAdmin {
		return true
	}
	return role == model.RoleAdmin && claims.TenantID != nil && *claims.TenantID == tenantID
}

type tenantRequest struct {
	Name         string                `json:"name"`
	Slug         string                `json:"slug"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Address      *model.TenantAddress  `json:"address"`
	Settings     *model.TenantSettings `json:"settings"`
	Subscription *model.Subscription   `json:"subscription"`
	IsActive     *bool                 `json:"is_active"`
}

// CreateTenant provisions a new tenant. Superadmin only; the slug must be
// globally unique.
func CreateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("create")

	var req tenantRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Slug == "" || req.Email == "" || req.Phone == "" {
		return jsonError(c, http.StatusBadRequest, "name, slug, email and phone are required")
	}
	if req.Subscription != nil {
		if req.Subscription.Plan != "" && !req.Subscription.Plan.Valid() {
			return jsonError(c, http.StatusBadRequest, "invalid subscription plan")
		}
		if req.Subscription.Status != "" && !req.Subscription.Status.Valid() {
			return jsonError(c, http.StatusBadRequest, "invalid subscription status")
		}
	}

	tenant := model.Tenant{
		Name:     req.Name,
		Slug:     req.Slug,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.Settings != nil {
		tenant.Settings = *req.Settings
	}
	if req.Subscription != nil {
		tenant.Subscription = *req.Subscription
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "a tenant with this slug already exists")
		}
		log.Error("Failed to create tenant", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to create tenant")
	}

	log.Info("Tenant created",
		zap.String("id", tenant.ID),
		zap.String("slug", tenant.Slug))

	return jsonSuccess(c, http.StatusCreated, "", echo.Map{"tenant": tenant})
}

// ListTenants retrieves all tenants with an optional active-flag filter.
// Superadmin only; this is a tenant-global route by design.
func ListTenants(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("list")

	page, limit := parsePagination(c)
	isActive := c.QueryParam("is_active")

	query := func() *gorm.DB {
		q := database.GetDB().Model(&model.Tenant{})
		if isActive != "" {
			q = q.Where("is_active = ?", isActive == "true")
		}
		return q
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query().Count(&total).Error; err != nil {
		log.Error("Failed to count tenants", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve tenants")
	}

	var tenants []model.Tenant
	if err := query().
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tenants).Error; err != nil {
		log.Error("Failed to retrieve tenants", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve tenants")
	}

	return jsonList(c, echo.Map{"tenants": tenants}, newPagination(page, limit, total))
}

// GetTenantByID retrieves one tenant record subject to the ownership rule
func GetTenantByID(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("get")

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenant model.Tenant
	if err := database.GetDB().First(&tenant, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Tenant not found")
		}
		log.Error("Failed to retrieve tenant", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve tenant")
	}

	if !canAccessTenant(claims, tenant.ID) {
		log.Warn("Cross-tenant directory access attempt",
			zap.String("user_id", claims.UserID),
			zap.String("target_tenant_id", tenant.ID))
		return jsonError(c, http.StatusForbidden, "Access denied")
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"tenant": tenant})
}

// UpdateTenant updates a tenant record subject to the ownership rule
func UpdateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("update")

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	var req tenantRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Subscription != nil {
		if req.Subscription.Plan != "" && !req.Subscription.Plan.Valid() {
			return jsonError(c, http.StatusBadRequest, "invalid subscription plan")
		}
		if req.Subscription.Status != "" && !req.Subscription.Status.Valid() {
			return jsonError(c, http.StatusBadRequest, "invalid subscription status")
		}
	}

	var tenant model.Tenant
	if err := database.GetDB().First(&tenant, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Tenant not found")
		}
		log.Error("Failed to retrieve tenant", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update tenant")
	}

	if !canAccessTenant(claims, tenant.ID) {
		log.Warn("Cross-tenant directory update attempt",
			zap.String("user_id", claims.UserID),
			zap.String("target_tenant_id", tenant.ID))
		return jsonError(c, http.StatusForbidden, "Access denied")
	}

	if req.Name != "" {
		tenant.Name = req.Name
	}
	if req.Slug != "" {
		tenant.Slug = req.Slug
	}
	if req.Email != "" {
		tenant.Email = req.Email
	}
	if req.Phone != "" {
		tenant.Phone = req.Phone
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.Settings != nil {
		tenant.Settings = *req.Settings
	}
	if req.Subscription != nil {
		tenant.Subscription = *req.Subscription
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "a tenant with this slug already exists")
		}
		log.Error("Failed to update tenant", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update tenant")
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"tenant": tenant})
}

// DeleteTenant removes a tenant and all of its scoped resources in one
// transaction, so no orphaned records survive the tenant. Superadmin only.
func DeleteTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("delete")

	var tenant model.Tenant
	if err := database.GetDB().First(&tenant, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Tenant not found")
		}
		log.Error("Failed to retrieve tenant", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to delete tenant")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Booking{},
			&model.Coach{},
			&model.Contact{},
			&model.FAQ{},
			&model.User{},
		} {
			if err := tx.Where("tenant_id = ?", tenant.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&tenant).Error
	})
	if err != nil {
		log.Error("Failed to delete tenant", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to delete tenant")
	}

	log.Info("Tenant deleted", zap.String("id", tenant.ID), zap.String("slug", tenant.Slug))

	return jsonSuccess(c, http.StatusOK, "Tenant deleted successfully", nil)
}
