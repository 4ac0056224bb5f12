package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gym-service/internal/apperror"
	"gym-service/internal/middleware"
	"gym-service/internal/model"
	"gym-service/pkg/database"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

// ListCoaches retrieves the coaches of the scoped tenant, active ones by
// default, sorted by name
func ListCoaches(c echo.Context) error {
	log := logger.FromEcho(c)

	isActive := true
	if c.QueryParam("is_active") == "false" {
		isActive = false
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var coaches []model.Coach
	if err := middleware.ApplyScope(c, database.GetDB()).
		Where("is_active = ?", isActive).
		Order("name ASC").
		Find(&coaches).Error; err != nil {
		log.Error("Failed to retrieve coaches", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve coaches")
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"coaches": coaches})
}

// GetCoach retrieves one coach by id or slug under the effective tenant
// scope. An identifier that parses as a uuid resolves by primary key,
// anything else is treated as a slug; the tenant filter applies to both.
func GetCoach(c echo.Context) error {
	log := logger.FromEcho(c)

	identifier := c.Param("identifier")

	defer prometheus.TrackDBOperation("query")(time.Now())
	q := middleware.ApplyScope(c, database.GetDB())
	var coach model.Coach
	var err error
	if _, parseErr := uuid.Parse(identifier); parseErr == nil {
		err = q.First(&coach, "id = ?", identifier).Error
	} else {
		err = q.First(&coach, "slug = ?", identifier).Error
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("Failed to retrieve coach", zap.Error(err))
		}
		return jsonAppError(c, apperror.FromStore(err, "Coach"))
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"coach": coach})
}

type coachRequest struct {
	Name           string             `json:"name"`
	Slug           string             `json:"slug"`
	Specialty      string             `json:"specialty"`
	Experience     string             `json:"experience"`
	Certifications string             `json:"certifications"`
	Bio            string             `json:"bio"`
	Image          string             `json:"image"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Availability   model.Availability `json:"availability"`
}

// CreateCoach creates a coach in the scoped tenant. Admin-gated; superadmins
// must select a tenant via header.
func CreateCoach(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, ok := middleware.ScopeFromContext(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "tenant context required")
	}

	var req coachRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Slug == "" || req.Specialty == "" || req.Experience == "" || req.Certifications == "" {
		return jsonError(c, http.StatusBadRequest, "name, slug, specialty, experience and certifications are required")
	}

	coach := model.Coach{
		TenantID:       tenantID,
		Name:           req.Name,
		Slug:           req.Slug,
		Specialty:      req.Specialty,
		Experience:     req.Experience,
		Certifications: req.Certifications,
		Bio:            req.Bio,
		Image:          req.Image,
		Email:          req.Email,
		Phone:          req.Phone,
		Availability:   req.Availability,
		IsActive:       true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&coach).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "a coach with this slug already exists for this tenant")
		}
		log.Error("Failed to create coach", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to create coach")
	}

	log.Info("Coach created",
		zap.String("id", coach.ID),
		zap.String("tenant_id", coach.TenantID),
		zap.String("slug", coach.Slug))

	return jsonSuccess(c, http.StatusCreated, "Coach created successfully", echo.Map{"coach": coach})
}

// UpdateCoach updates a coach under the effective tenant scope
func UpdateCoach(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		coachRequest
		Rating        *float64 `json:"rating"`
		TotalSessions *int     `json:"total_sessions"`
		IsActive      *bool    `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	var coach model.Coach
	if err := middleware.ApplyScope(c, database.GetDB()).First(&coach, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Coach not found")
		}
		log.Error("Failed to retrieve coach", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update coach")
	}

	if req.Name != "" {
		coach.Name = req.Name
	}
	if req.Slug != "" {
		coach.Slug = req.Slug
	}
	if req.Specialty != "" {
		coach.Specialty = req.Specialty
	}
	if req.Experience != "" {
		coach.Experience = req.Experience
	}
	if req.Certifications != "" {
		coach.Certifications = req.Certifications
	}
	if req.Bio != "" {
		coach.Bio = req.Bio
	}
	if req.Image != "" {
		coach.Image = req.Image
	}
	if req.Email != "" {
		coach.Email = req.Email
	}
	if req.Phone != "" {
		coach.Phone = req.Phone
	}
	if req.Availability != nil {
		coach.Availability = req.Availability
	}
	if req.Rating != nil {
		coach.Rating = *req.Rating
	}
	if req.TotalSessions != nil {
		coach.TotalSessions = *req.TotalSessions
	}
	if req.IsActive != nil {
		coach.IsActive = *req.IsActive
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&coach).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "a coach with this slug already exists for this tenant")
		}
		log.Error("Failed to update coach", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update coach")
	}

	return jsonSuccess(c, http.StatusOK, "Coach updated successfully", echo.Map{"coach": coach})
}

// DeleteCoach removes a coach under the effective tenant scope
func DeleteCoach(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := middleware.ApplyScope(c, database.GetDB()).Delete(&model.Coach{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Error("Failed to delete coach", zap.Error(result.Error))
		return jsonError(c, http.StatusInternalServerError, "failed to delete coach")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, http.StatusNotFound, "Coach not found")
	}

	return jsonSuccess(c, http.StatusOK, "Coach deleted successfully", nil)
}
