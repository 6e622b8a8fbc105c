package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk_backend/internal/models"
)

func TestGetAttendancePolicyDefaults(t *testing.T) {
	svc := NewSettingService(newFakeSettingRepo(), nil)

	policy := svc.GetAttendancePolicy()
	assert.Equal(t, models.DefaultAttendancePolicy(), policy)
}

func TestGetAttendancePolicyMergesStoredValues(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.set(models.SettingDailyShiftLimit, "3")
	repo.set(models.SettingDefaultShiftHours, "7.5")
	repo.set(models.SettingAutoEndEnabled, "true")
	repo.set(models.SettingAutoEndHour, "22")
	svc := NewSettingService(repo, nil)

	policy := svc.GetAttendancePolicy()
	assert.Equal(t, 3, policy.DailyShiftLimit)
	assert.Equal(t, 7.5, policy.DefaultShiftHours)
	assert.True(t, policy.AutoEndEnabled)
	assert.Equal(t, 22, policy.AutoEndHour)
}

func TestGetAttendancePolicyIgnoresBadValues(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.set(models.SettingDailyShiftLimit, "lots")
	repo.set(models.SettingDefaultShiftHours, "-4")
	repo.set(models.SettingAutoEndHour, "25")
	svc := NewSettingService(repo, nil)

	defaults := models.DefaultAttendancePolicy()
	policy := svc.GetAttendancePolicy()
	assert.Equal(t, defaults.DailyShiftLimit, policy.DailyShiftLimit)
	assert.Equal(t, defaults.DefaultShiftHours, policy.DefaultShiftHours)
	assert.Equal(t, defaults.AutoEndHour, policy.AutoEndHour)
}

func TestUpsertSettingValidatesTypedKeys(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewSettingService(repo, nil)

	value := "not-a-number"
	_, err := svc.UpsertSetting(UpsertSettingRequest{
		SettingKey:   models.SettingDailyShiftLimit,
		SettingValue: &value,
	})
	assert.ErrorIs(t, err, ErrInvalidSettingValue)

	value = "4"
	saved, err := svc.UpsertSetting(UpsertSettingRequest{
		SettingKey:   models.SettingDailyShiftLimit,
		SettingValue: &value,
	})
	require.NoError(t, err)
	require.NotNil(t, saved.SettingValue)
	assert.Equal(t, "4", *saved.SettingValue)

	// Unknown keys are stored untyped.
	value = "anything goes"
	_, err = svc.UpsertSetting(UpsertSettingRequest{
		SettingKey:   "branding.company_name",
		SettingValue: &value,
	})
	assert.NoError(t, err)
}

func TestDeleteSetting(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.set("branding.company_name", "TripDesk")
	svc := NewSettingService(repo, nil)

	require.NoError(t, svc.DeleteSetting("branding.company_name"))
	assert.ErrorIs(t, svc.DeleteSetting("branding.company_name"), ErrSettingNotFound)

	_, err := svc.GetSettingByKey("branding.company_name")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}
