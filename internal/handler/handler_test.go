package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gym-service/internal/model"
	"gym-service/pkg/database"
	"gym-service/pkg/jwtutil"
)

// setupDB swaps the global database for an isolated in-memory instance for
// the duration of one test
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Booking{},
		&model.Coach{},
		&model.Contact{},
		&model.FAQ{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asPrincipal attaches an authenticated principal the way the auth middleware
// does
func asPrincipal(c echo.Context, userID, email, role string, tenantID *string) {
	c.Set("user", &jwtutil.UserClaims{
		UserID:   userID,
		Email:    email,
		Role:     role,
		TenantID: tenantID,
	})
}

// withScope attaches a resolved tenant scope the way the scoping middleware
// does
func withScope(c echo.Context, tenantID string) {
	c.Set("tenant_id", tenantID)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seedTenant(t *testing.T, db *gorm.DB, slug string) model.Tenant {
	t.Helper()

	tenant := model.Tenant{
		Name:  "Gym " + slug,
		Slug:  slug,
		Email: slug + "@example.com",
		Phone: "+91 9000000000",
	}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func seedBooking(t *testing.T, db *gorm.DB, tenantID, email, coach, date, slot string) model.Booking {
	t.Helper()

	day, err := time.Parse(bookingDateLayout, date)
	require.NoError(t, err)
	booking := model.Booking{
		TenantID:    tenantID,
		Name:        "Test Member",
		Email:       email,
		Phone:       "+91 9111111111",
		Coach:       coach,
		SessionType: model.SessionPersonal,
		Date:        day,
		Time:        slot,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func seedCoach(t *testing.T, db *gorm.DB, tenantID, slug string) model.Coach {
	t.Helper()

	coach := model.Coach{
		TenantID:       tenantID,
		Name:           "Coach " + slug,
		Slug:           slug,
		Specialty:      "Strength",
		Experience:     "5+ years",
		Certifications: "NASM-CPT",
		IsActive:       true,
	}
	require.NoError(t, db.Create(&coach).Error)
	return coach
}
