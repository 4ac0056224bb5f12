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

// CreateContact handles the public enquiry flow. Tenant attribution follows
// the booking rule: effective scope first, then the payload tenant id.
func CreateContact(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		TenantID string `json:"tenant_id"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return jsonError(c, http.StatusBadRequest, "name, email, subject and message are required")
	}

	tenantID, ok := middleware.ScopeFromContext(c)
	if !ok {
		tenantID = req.TenantID
	}
	if tenantID == "" {
		return jsonError(c, http.StatusBadRequest, "tenant context required")
	}

	contact := model.Contact{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&contact).Error; err != nil {
		log.Error("Failed to create contact", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to submit message")
	}

	log.Info("Contact enquiry created",
		zap.String("id", contact.ID),
		zap.String("tenant_id", contact.TenantID))

	return jsonSuccess(c, http.StatusCreated,
		"Your message has been submitted successfully. We will get back to you soon!",
		echo.Map{"contact": contact})
}

// ListContacts retrieves enquiries under the effective tenant scope with
// optional status/priority filters and pagination
func ListContacts(c echo.Context) error {
	log := logger.FromEcho(c)

	page, limit := parsePagination(c)
	status := c.QueryParam("status")
	priority := c.QueryParam("priority")

	query := func() *gorm.DB {
		q := middleware.ApplyScope(c, database.GetDB().Model(&model.Contact{}))
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if priority != "" {
			q = q.Where("priority = ?", priority)
		}
		return q
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query().Count(&total).Error; err != nil {
		log.Error("Failed to count contacts", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve contacts")
	}

	var contacts []model.Contact
	if err := query().
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&contacts).Error; err != nil {
		log.Error("Failed to retrieve contacts", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve contacts")
	}

	return jsonList(c, echo.Map{"contacts": contacts}, newPagination(page, limit, total))
}

// GetContactByID retrieves one enquiry under the effective tenant scope
func GetContactByID(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var contact model.Contact
	if err := middleware.ApplyScope(c, database.GetDB()).First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("Failed to retrieve contact", zap.Error(err))
		}
		return jsonAppError(c, apperror.FromStore(err, "Contact"))
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"contact": contact})
}

// UpdateContact updates the triage fields of an enquiry under the effective
// tenant scope
func UpdateContact(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Status     string  `json:"status"`
		Priority   string  `json:"priority"`
		AssignedTo *string `json:"assigned_to"`
		Notes      string  `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Status != "" && !model.ContactStatus(req.Status).Valid() {
		return jsonError(c, http.StatusBadRequest, "invalid contact status")
	}
	if req.Priority != "" && !model.ContactPriority(req.Priority).Valid() {
		return jsonError(c, http.StatusBadRequest, "invalid contact priority")
	}

	var contact model.Contact
	if err := middleware.ApplyScope(c, database.GetDB()).First(&contact, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Contact not found")
		}
		log.Error("Failed to retrieve contact", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update contact")
	}

	if req.Status != "" {
		contact.Status = model.ContactStatus(req.Status)
	}
	if req.Priority != "" {
		contact.Priority = model.ContactPriority(req.Priority)
	}
	if req.AssignedTo != nil {
		contact.AssignedTo = req.AssignedTo
	}
	if req.Notes != "" {
		contact.Notes = req.Notes
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&contact).Error; err != nil {
		log.Error("Failed to update contact", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update contact")
	}

	return jsonSuccess(c, http.StatusOK, "Contact updated successfully", echo.Map{"contact": contact})
}

// DeleteContact removes an enquiry under the effective tenant scope
func DeleteContact(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := middleware.ApplyScope(c, database.GetDB()).Delete(&model.Contact{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Error("Failed to delete contact", zap.Error(result.Error))
		return jsonError(c, http.StatusInternalServerError, "failed to delete contact")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, http.StatusNotFound, "Contact not found")
	}

	return jsonSuccess(c, http.StatusOK, "Contact deleted successfully", nil)
}
