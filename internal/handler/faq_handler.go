package handler

import (
	"errors"
	"net/http"
	"time"

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

// ListFAQs retrieves the scoped tenant's FAQs, active ones by default,
// ordered by display order then creation time
func ListFAQs(c echo.Context) error {
	log := logger.FromEcho(c)

	page, limit := parsePagination(c)
	category := c.QueryParam("category")
	isActive := true
	if c.QueryParam("is_active") == "false" {
		isActive = false
	}

	query := func() *gorm.DB {
		q := middleware.ApplyScope(c, database.GetDB().Model(&model.FAQ{})).Where("is_active = ?", isActive)
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query().Count(&total).Error; err != nil {
		log.Error("Failed to count FAQs", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve FAQs")
	}

	var faqs []model.FAQ
	if err := query().
		Order("display_order ASC, created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&faqs).Error; err != nil {
		log.Error("Failed to retrieve FAQs", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve FAQs")
	}

	return jsonList(c, echo.Map{"faqs": faqs}, newPagination(page, limit, total))
}

// GetFAQByID retrieves one FAQ under the effective tenant scope
func GetFAQByID(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var faq model.FAQ
	if err := middleware.ApplyScope(c, database.GetDB()).First(&faq, "id = ?", c.Param("id")).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("Failed to retrieve FAQ", zap.Error(err))
		}
		return jsonAppError(c, apperror.FromStore(err, "FAQ"))
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"faq": faq})
}

// CreateFAQ creates an FAQ in the scoped tenant
func CreateFAQ(c echo.Context) error {
	log := logger.FromEcho(c)

	tenantID, ok := middleware.ScopeFromContext(c)
	if !ok {
		return jsonError(c, http.StatusBadRequest, "tenant context required")
	}

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Category string `json:"category"`
		Order    int    `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Question == "" || req.Answer == "" {
		return jsonError(c, http.StatusBadRequest, "question and answer are required")
	}
	if req.Category != "" && !model.FAQCategory(req.Category).Valid() {
		return jsonError(c, http.StatusBadRequest, "invalid FAQ category")
	}

	faq := model.FAQ{
		TenantID: tenantID,
		Question: req.Question,
		Answer:   req.Answer,
		Category: model.FAQCategory(req.Category),
		Order:    req.Order,
		IsActive: true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&faq).Error; err != nil {
		log.Error("Failed to create FAQ", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to create FAQ")
	}

	return jsonSuccess(c, http.StatusCreated, "FAQ created successfully", echo.Map{"faq": faq})
}

// UpdateFAQ updates an FAQ under the effective tenant scope
func UpdateFAQ(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Category string `json:"category"`
		Order    *int   `json:"order"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Category != "" && !model.FAQCategory(req.Category).Valid() {
		return jsonError(c, http.StatusBadRequest, "invalid FAQ category")
	}

	var faq model.FAQ
	if err := middleware.ApplyScope(c, database.GetDB()).First(&faq, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "FAQ not found")
		}
		log.Error("Failed to retrieve FAQ", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update FAQ")
	}

	if req.Question != "" {
		faq.Question = req.Question
	}
	if req.Answer != "" {
		faq.Answer = req.Answer
	}
	if req.Category != "" {
		faq.Category = model.FAQCategory(req.Category)
	}
	if req.Order != nil {
		faq.Order = *req.Order
	}
	if req.IsActive != nil {
		faq.IsActive = *req.IsActive
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&faq).Error; err != nil {
		log.Error("Failed to update FAQ", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update FAQ")
	}

	return jsonSuccess(c, http.StatusOK, "FAQ updated successfully", echo.Map{"faq": faq})
}

// DeleteFAQ removes an FAQ under the effective tenant scope
func DeleteFAQ(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := middleware.ApplyScope(c, database.GetDB()).Delete(&model.FAQ{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Error("Failed to delete FAQ", zap.Error(result.Error))
		return jsonError(c, http.StatusInternalServerError, "failed to delete FAQ")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, http.StatusNotFound, "FAQ not found")
	}

	return jsonSuccess(c, http.StatusOK, "FAQ deleted successfully", nil)
}
