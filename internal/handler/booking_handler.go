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

const bookingDateLayout = "2006-01-02"

var activeBookingStatuses = []model.BookingStatus{model.BookingPending, model.BookingConfirmed}

// CreateBooking handles the public booking flow. The tenant id comes from the
// effective scope when one is resolved, otherwise from the request payload
// (pre-authentication enrollment); a booking without a tenant is rejected.
func CreateBooking(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordBookingOperation("create")

	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Coach       string `json:"coach"`
		SessionType string `json:"session_type"`
		Date        string `json:"date"`
		Time        string `json:"time"`
		Notes       string `json:"notes"`
		TenantID    string `json:"tenant_id"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse booking request", zap.Error(err))
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Coach == "" || req.Date == "" || req.Time == "" {
		return jsonError(c, http.StatusBadRequest, "name, email, phone, coach, date and time are required")
	}
	if !model.SessionType(req.SessionType).Valid() {
		return jsonError(c, http.StatusBadRequest, "invalid session type")
	}
	if !model.ValidTimeSlot(req.Time) {
		return jsonError(c, http.StatusBadRequest, "invalid time slot")
	}

	date, err := time.Parse(bookingDateLayout, req.Date)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	tenantID, ok := middleware.ScopeFromContext(c)
	if !ok {
		tenantID = req.TenantID
	}
	if tenantID == "" {
		return jsonError(c, http.StatusBadRequest, "tenant context required")
	}

	// Friendly pre-check; the partial unique index is the authoritative guard
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.Booking
	result := database.GetDB().
		Where("tenant_id = ? AND coach = ? AND date = ? AND time = ? AND status IN ?",
			tenantID, req.Coach, date, req.Time, activeBookingStatuses).
		First(&existing)
	if result.Error == nil {
		prometheus.RecordBookingConflict()
		return jsonError(c, http.StatusBadRequest, "This time slot is already booked")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		log.Error("Failed to check booking slot", zap.Error(result.Error))
		return jsonError(c, http.StatusInternalServerError, "failed to create booking")
	}

	booking := model.Booking{
		TenantID:    tenantID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Coach:       req.Coach,
		SessionType: model.SessionType(req.SessionType),
		Date:        date,
		Time:        req.Time,
		Notes:       req.Notes,
	}
	if claims := middleware.Principal(c); claims != nil {
		userID := claims.UserID
		booking.UserID = &userID
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&booking).Error; err != nil {
		// A concurrent insert may still win between check and write; the
		// unique-constraint violation maps to the same conflict response.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			prometheus.RecordBookingConflict()
			return jsonError(c, http.StatusBadRequest, "This time slot is already booked")
		}
		log.Error("Failed to create booking", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to create booking")
	}

	log.Info("Booking created",
		zap.String("id", booking.ID),
		zap.String("tenant_id", booking.TenantID),
		zap.String("coach", booking.Coach),
		zap.String("time", booking.Time))

	return jsonSuccess(c, http.StatusCreated, "Booking created successfully", echo.Map{"booking": booking})
}

// ListBookings retrieves bookings under the effective tenant scope with
// optional status/coach filters and pagination. Admin-gated; an unscoped
// listing is only reachable by superadmins.
func ListBookings(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordBookingOperation("list")

	page, limit := parsePagination(c)
	status := c.QueryParam("status")
	coach := c.QueryParam("coach")

	query := func() *gorm.DB {
		q := middleware.ApplyScope(c, database.GetDB().Model(&model.Booking{}))
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if coach != "" {
			q = q.Where("coach = ?", coach)
		}
		return q
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var total int64
	if err := query().Count(&total).Error; err != nil {
		log.Error("Failed to count bookings", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve bookings")
	}

	var bookings []model.Booking
	if err := query().
		Order("date DESC, created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&bookings).Error; err != nil {
		log.Error("Failed to retrieve bookings", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve bookings")
	}

	return jsonList(c, echo.Map{"bookings": bookings}, newPagination(page, limit, total))
}

// MyBookings retrieves the authenticated principal's bookings, matched by
// user id or by the contact email stored on the booking
func MyBookings(c echo.Context) error {
	log := logger.FromEcho(c)

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var bookings []model.Booking
	q := middleware.ApplyScope(c, database.GetDB().Model(&model.Booking{}))
	if err := q.
		Where("(user_id = ? OR email = ?)", claims.UserID, claims.Email).
		Order("date DESC").
		Find(&bookings).Error; err != nil {
		log.Error("Failed to retrieve bookings", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve bookings")
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"bookings": bookings})
}

// GetBookingByID retrieves one booking under the effective tenant scope. A
// booking belonging to another tenant is reported as absent.
func GetBookingByID(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var booking model.Booking
	if err := middleware.ApplyScope(c, database.GetDB()).First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("Failed to retrieve booking", zap.Error(err))
		}
		return jsonAppError(c, apperror.FromStore(err, "Booking"))
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"booking": booking})
}

// UpdateBookingStatus updates the status (and optionally notes) of a booking
// under the effective tenant scope
func UpdateBookingStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordBookingOperation("status")

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if !model.BookingStatus(req.Status).Valid() {
		return jsonError(c, http.StatusBadRequest, "invalid booking status")
	}

	var booking model.Booking
	if err := middleware.ApplyScope(c, database.GetDB()).First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Booking not found")
		}
		log.Error("Failed to retrieve booking", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update booking")
	}

	booking.Status = model.BookingStatus(req.Status)
	if req.Notes != "" {
		booking.Notes = req.Notes
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&booking).Error; err != nil {
		// Reviving a cancelled booking collides with the unique index when
		// the slot has been re-booked in the meantime.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			prometheus.RecordBookingConflict()
			return jsonError(c, http.StatusBadRequest, "This time slot is already booked")
		}
		log.Error("Failed to update booking status", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update booking")
	}

	return jsonSuccess(c, http.StatusOK, "Booking status updated successfully", echo.Map{"booking": booking})
}

// CancelBooking cancels a booking. Allowed for admins, for the booking's
// owning user, or when the booking's contact email matches the principal.
func CancelBooking(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordBookingOperation("cancel")

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	var booking model.Booking
	if err := middleware.ApplyScope(c, database.GetDB()).First(&booking, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "Booking not found")
		}
		log.Error("Failed to retrieve booking", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to cancel booking")
	}

	role := model.Role(claims.Role)
	owns := (booking.UserID != nil && *booking.UserID == claims.UserID) || booking.Email == claims.Email
	if role != model.RoleAdmin && role != model.RoleSuperAdmin && !owns {
		log.Warn("Unauthorized booking cancellation attempt",
			zap.String("user_id", claims.UserID),
			zap.String("booking_id", booking.ID))
		return jsonError(c, http.StatusForbidden, "You are not authorized to cancel this booking")
	}

	booking.Status = model.BookingCancelled

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&booking).Error; err != nil {
		log.Error("Failed to cancel booking", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to cancel booking")
	}

	return jsonSuccess(c, http.StatusOK, "Booking cancelled successfully", echo.Map{"booking": booking})
}

// DeleteBooking removes a booking under the effective tenant scope
func DeleteBooking(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordBookingOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := middleware.ApplyScope(c, database.GetDB()).Delete(&model.Booking{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Error("Failed to delete booking", zap.Error(result.Error))
		return jsonError(c, http.StatusInternalServerError, "failed to delete booking")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, http.StatusNotFound, "Booking not found")
	}

	return jsonSuccess(c, http.StatusOK, "Booking deleted successfully", nil)
}
