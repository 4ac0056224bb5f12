package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-service/internal/model"
)

func TestCreateCoach(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")

	body := `{
		"name": "Vikram Malhotra",
		"slug": "Vikram",
		"specialty": "Strength & Conditioning",
		"experience": "8+ years",
		"certifications": "NASM-CPT",
		"availability": [{"day": "monday", "slots": ["6am", "8am"]}]
	}`
	c, rec := newTestContext(t, http.MethodPost, "/api/coaches", body)
	asPrincipal(c, "admin-1", "admin@gym-a.com", "admin", &tenant.ID)
	withScope(c, tenant.ID)
	require.NoError(t, CreateCoach(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var coach model.Coach
	require.NoError(t, db.First(&coach, "tenant_id = ?", tenant.ID).Error)
	assert.Equal(t, "vikram", coach.Slug)
	require.Len(t, coach.Availability, 1)
	assert.Equal(t, "monday", coach.Availability[0].Day)
	assert.Equal(t, []string{"6am", "8am"}, coach.Availability[0].Slots)
}

func TestCreateCoachRequiresScope(t *testing.T) {
	setupDB(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/coaches", `{"name":"X"}`)
	asPrincipal(c, "root", "root@example.com", "superadmin", nil)
	require.NoError(t, CreateCoach(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tenant context required")
}

func TestCreateCoachDuplicateSlugSameTenant(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	seedCoach(t, db, tenant.ID, "vikram")

	body := `{"name":"Another Vikram","slug":"vikram","specialty":"Yoga","experience":"2 years","certifications":"RYT-200"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/coaches", body)
	withScope(c, tenant.ID)
	require.NoError(t, CreateCoach(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestCreateCoachSameSlugAcrossTenants(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	seedCoach(t, db, tenantA.ID, "vikram")

	body := `{"name":"Vikram B","slug":"vikram","specialty":"Yoga","experience":"2 years","certifications":"RYT-200"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/coaches", body)
	withScope(c, tenantB.ID)
	require.NoError(t, CreateCoach(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetCoachBySlug(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	seedCoach(t, db, tenant.ID, "vikram")

	c, rec := newTestContext(t, http.MethodGet, "/api/coaches/vikram", "")
	c.SetParamNames("identifier")
	c.SetParamValues("vikram")
	withScope(c, tenant.ID)
	require.NoError(t, GetCoach(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	coach := data["coach"].(map[string]interface{})
	assert.Equal(t, "vikram", coach["slug"])
}

func TestGetCoachByID(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	coach := seedCoach(t, db, tenant.ID, "vikram")

	c, rec := newTestContext(t, http.MethodGet, "/api/coaches/"+coach.ID, "")
	c.SetParamNames("identifier")
	c.SetParamValues(coach.ID)
	withScope(c, tenant.ID)
	require.NoError(t, GetCoach(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCoachCrossTenantNotFound(t *testing.T) {
	db := setupDB(t)
	tenantA := seedTenant(t, db, "gym-a")
	tenantB := seedTenant(t, db, "gym-b")
	seedCoach(t, db, tenantA.ID, "vikram")

	c, rec := newTestContext(t, http.MethodGet, "/api/coaches/vikram", "")
	c.SetParamNames("identifier")
	c.SetParamValues("vikram")
	withScope(c, tenantB.ID)
	require.NoError(t, GetCoach(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCoachesActiveByDefault(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	seedCoach(t, db, tenant.ID, "vikram")
	inactive := seedCoach(t, db, tenant.ID, "priya")
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	c, rec := newTestContext(t, http.MethodGet, "/api/coaches", "")
	withScope(c, tenant.ID)
	require.NoError(t, ListCoaches(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["coaches"], 1)
}

func TestUpdateCoach(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	coach := seedCoach(t, db, tenant.ID, "vikram")

	c, rec := newTestContext(t, http.MethodPut, "/api/coaches/"+coach.ID, `{"specialty":"Mobility","rating":4.5,"is_active":false}`)
	c.SetParamNames("id")
	c.SetParamValues(coach.ID)
	withScope(c, tenant.ID)
	require.NoError(t, UpdateCoach(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Coach
	require.NoError(t, db.First(&updated, "id = ?", coach.ID).Error)
	assert.Equal(t, "Mobility", updated.Specialty)
	assert.Equal(t, 4.5, updated.Rating)
	assert.False(t, updated.IsActive)
}

func TestDeleteCoach(t *testing.T) {
	db := setupDB(t)
	tenant := seedTenant(t, db, "gym-a")
	coach := seedCoach(t, db, tenant.ID, "vikram")

	c, rec := newTestContext(t, http.MethodDelete, "/api/coaches/"+coach.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(coach.ID)
	withScope(c, tenant.ID)
	require.NoError(t, DeleteCoach(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var gone model.Coach
	err := db.First(&gone, "id = ?", coach.ID).Error
	assert.Error(t, err)
}
