package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-service/internal/model"
)

const bookingPayload = `{
	"name": "Rahul Sharma",
	"email": "rahul@example.com",
	"phone": "+91 9222222222",
	"coach": "vikram",
	"session_type": "personal",
	"date": "2026-09-01",
	"time": "6am"
}`

func TestCreateBooking(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	withScope(c, tenant.ID)
	require.NoError(t, CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking model.Booking
	require.NoError(t, db.First(&booking, "tenant_id = ?", tenant.ID).Error)
	assert.Equal(t, "rahul@example.com", booking.Email)
	assert.Equal(t, model.BookingPending, booking.Status)
	assert.Nil(t, booking.UserID)
}

func TestCreateBookingAttributesAuthenticatedUser(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	asPrincipal(c, "user-1", "rahul@example.com", "user", &tenant.ID)
	withScope(c, tenant.ID)
	require.NoError(t, CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking model.Booking
	require.NoError(t, db.First(&booking, "tenant_id = ?", tenant.ID).Error)
	require.NotNil(t, booking.UserID)
	assert.Equal(t, "user-1", *booking.UserID)
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	seedBooking(t, db, tenant.ID, "first@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	withScope(c, tenant.ID)
	require.NoError(t, CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")
}

func TestCreateBookingCancelledSlotIsRebookable(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	cancelled := seedBooking(t, db, tenant.ID, "first@example.com", "vikram", "2026-09-01", "6am")
	cancelled.Status = model.BookingCancelled
	require.NoError(t, db.Save(&cancelled).Error)

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	withScope(c, tenant.ID)
	require.NoError(t, CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBookingCompletedSlotStillConflicts(t *testing.T) {
	// A completed booking is outside the pre-check's pending/confirmed
	// filter, so the insert reaches the unique index; the violation must map
	// to the same conflict response.
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	completed := seedBooking(t, db, tenant.ID, "first@example.com", "vikram", "2026-09-01", "6am")
	completed.Status = model.BookingCompleted
	require.NoError(t, db.Save(&completed).Error)

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	withScope(c, tenant.ID)
	require.NoError(t, CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")
}

func TestCreateBookingSameSlotAcrossTenants(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	seedBooking(t, db, tenantA.ID, "first@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	withScope(c, tenantB.ID)
	require.NoError(t, CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBookingValidation(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing fields",
			body: `{"name": "Rahul"}`,
			want: "required",
		},
		{
			name: "invalid session type",
			body: `{"name":"R","email":"r@example.com","phone":"1","coach":"vikram","session_type":"cardio","date":"2026-09-01","time":"6am"}`,
			want: "invalid session type",
		},
		{
			name: "invalid time slot",
			body: `{"name":"R","email":"r@example.com","phone":"1","coach":"vikram","session_type":"personal","date":"2026-09-01","time":"7am"}`,
			want: "invalid time slot",
		},
		{
			name: "invalid date",
			body: `{"name":"R","email":"r@example.com","phone":"1","coach":"vikram","session_type":"personal","date":"01-09-2026","time":"6am"}`,
			want: "invalid date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/api/bookings", tt.body)
			withScope(c, tenant.ID)
			require.NoError(t, CreateBooking(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestCreateBookingRequiresTenant(t *testing.T) {
	setupDB(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", bookingPayload)
	require.NoError(t, CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant context required")
}

func TestCreateBookingTenantFromPayload(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")

	body := `{"name":"R","email":"r@example.com","phone":"1","coach":"vikram","session_type":"personal","date":"2026-09-01","time":"6am","tenant_id":"` + tenant.ID + `"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/bookings", body)
	require.NoError(t, CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var booking model.Booking
	require.NoError(t, db.First(&booking, "email = ?", "r@example.com").Error)
	assert.Equal(t, tenant.ID, booking.TenantID)
}

func TestListBookingsScoped(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	seedBooking(t, db, tenantA.ID, "a@example.com", "vikram", "2026-09-01", "6am")
	seedBooking(t, db, tenantA.ID, "a@example.com", "vikram", "2026-09-02", "8am")
	seedBooking(t, db, tenantB.ID, "b@example.com", "priya", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodGet, "/api/bookings", "")
	asPrincipal(c, "admin-a", "admin@gym-a.com", "admin", &tenantA.ID)
	withScope(c, tenantA.ID)
	require.NoError(t, ListBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["bookings"], 2)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total"])
}

func TestListBookingsUnscopedSeesAllTenants(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	seedBooking(t, db, tenantA.ID, "a@example.com", "vikram", "2026-09-01", "6am")
	seedBooking(t, db, tenantB.ID, "b@example.com", "priya", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodGet, "/api/bookings", "")
	asPrincipal(c, "root", "root@example.com", "superadmin", nil)
	require.NoError(t, ListBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["bookings"], 2)
}

func TestListBookingsStatusFilter(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	confirmed := seedBooking(t, db, tenant.ID, "a@example.com", "vikram", "2026-09-01", "6am")
	confirmed.Status = model.BookingConfirmed
	require.NoError(t, db.Save(&confirmed).Error)
	seedBooking(t, db, tenant.ID, "a@example.com", "vikram", "2026-09-02", "8am")

	c, rec := newTestContext(t, http.MethodGet, "/api/bookings?status=confirmed", "")
	withScope(c, tenant.ID)
	require.NoError(t, ListBookings(c))

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["bookings"], 1)
}

func TestMyBookingsMatchesUserIDOrEmail(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")

	owned := seedBooking(t, db, tenant.ID, "other@example.com", "vikram", "2026-09-01", "6am")
	userID := "user-1"
	owned.UserID = &userID
	require.NoError(t, db.Save(&owned).Error)

	seedBooking(t, db, tenant.ID, "me@example.com", "vikram", "2026-09-02", "8am")
	seedBooking(t, db, tenant.ID, "stranger@example.com", "vikram", "2026-09-03", "10am")

	c, rec := newTestContext(t, http.MethodGet, "/api/bookings/my-bookings", "")
	asPrincipal(c, "user-1", "me@example.com", "user", &tenant.ID)
	withScope(c, tenant.ID)
	require.NoError(t, MyBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["bookings"], 2)
}

func TestGetBookingCrossTenantNotFound(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	booking := seedBooking(t, db, tenantA.ID, "a@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodGet, "/api/bookings/"+booking.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	withScope(c, tenantB.ID)
	require.NoError(t, GetBookingByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	booking := seedBooking(t, db, tenant.ID, "a@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPut, "/api/bookings/"+booking.ID+"/status", `{"status":"confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	withScope(c, tenant.ID)
	require.NoError(t, UpdateBookingStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Booking
	require.NoError(t, db.First(&updated, "id = ?", booking.ID).Error)
	assert.Equal(t, model.BookingConfirmed, updated.Status)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	booking := seedBooking(t, db, tenant.ID, "a@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPut, "/api/bookings/"+booking.ID+"/status", `{"status":"done"}`)
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	withScope(c, tenant.ID)
	require.NoError(t, UpdateBookingStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBookingStatusRevivingCancelledIntoTakenSlot(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	cancelled := seedBooking(t, db, tenant.ID, "first@example.com", "vikram", "2026-09-01", "6am")
	cancelled.Status = model.BookingCancelled
	require.NoError(t, db.Save(&cancelled).Error)
	seedBooking(t, db, tenant.ID, "second@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPut, "/api/bookings/"+cancelled.ID+"/status", `{"status":"confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues(cancelled.ID)
	withScope(c, tenant.ID)
	require.NoError(t, UpdateBookingStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")

	var still model.Booking
	require.NoError(t, db.First(&still, "id = ?", cancelled.ID).Error)
	assert.Equal(t, model.BookingCancelled, still.Status)
}

func TestCancelBookingByOwner(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	booking := seedBooking(t, db, tenant.ID, "me@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPut, "/api/bookings/"+booking.ID+"/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	asPrincipal(c, "user-1", "me@example.com", "user", &tenant.ID)
	withScope(c, tenant.ID)
	require.NoError(t, CancelBooking(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cancelled model.Booking
	require.NoError(t, db.First(&cancelled, "id = ?", booking.ID).Error)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)
}

func TestCancelBookingByStrangerForbidden(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	booking := seedBooking(t, db, tenant.ID, "other@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPut, "/api/bookings/"+booking.ID+"/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	asPrincipal(c, "user-1", "me@example.com", "user", &tenant.ID)
	withScope(c, tenant.ID)
	require.NoError(t, CancelBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelBookingByAdmin(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	booking := seedBooking(t, db, tenant.ID, "other@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodPut, "/api/bookings/"+booking.ID+"/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	asPrincipal(c, "admin-1", "admin@gym-a.com", "admin", &tenant.ID)
	withScope(c, tenant.ID)
	require.NoError(t, CancelBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteBookingCrossTenantNotFound(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	booking := seedBooking(t, db, tenantA.ID, "a@example.com", "vikram", "2026-09-01", "6am")

	c, rec := newTestContext(t, http.MethodDelete, "/api/bookings/"+booking.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(booking.ID)
	withScope(c, tenantB.ID)
	require.NoError(t, DeleteBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var still model.Booking
	assert.NoError(t, db.First(&still, "id = ?", booking.ID).Error)
}
