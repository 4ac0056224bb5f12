package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, ValidTimeSlot(slot), slot)
	}
	assert.False(t, ValidTimeSlot("7am"))
	assert.False(t, ValidTimeSlot(""))
	assert.False(t, ValidTimeSlot("6AM"))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleTenantBound(t *testing.T) {
	assert.True(t, RoleUser.TenantBound())
	assert.True(t, RoleAdmin.TenantBound())
	assert.False(t, RoleSuperAdmin.TenantBound())
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, BookingPending.Valid())
	assert.True(t, BookingCancelled.Valid())
	assert.False(t, BookingStatus("done").Valid())
}

func TestSessionTypeValid(t *testing.T) {
	assert.True(t, SessionPersonal.Valid())
	assert.True(t, SessionAssessment.Valid())
	assert.True(t, SessionNutrition.Valid())
	assert.False(t, SessionType("cardio").Valid())
	assert.False(t, SessionType("").Valid())
}

func TestAvailabilityRoundTrip(t *testing.T) {
	availability := Availability{
		{Day: "monday", Slots: []string{"6am", "8am"}},
		{Day: "friday", Slots: []string{"4pm"}},
	}

	value, err := availability.Value()
	require.NoError(t, err)

	var decoded Availability
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, availability, decoded)
}

func TestAvailabilityScanNil(t *testing.T) {
	var decoded Availability
	require.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestAvailabilityScanString(t *testing.T) {
	var decoded Availability
	require.NoError(t, decoded.Scan(`[{"day":"tuesday","slots":["10am"]}]`))
	require.Len(t, decoded, 1)
	assert.Equal(t, "tuesday", decoded[0].Day)
}

func TestAvailabilityScanUnsupportedType(t *testing.T) {
	var decoded Availability
	assert.Error(t, decoded.Scan(42))
}
