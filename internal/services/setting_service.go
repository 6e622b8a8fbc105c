package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
	"tripdesk_backend/pkg/utils"
)

var (
	ErrSettingNotFound     = errors.New("setting not found")
	ErrInvalidSettingValue = errors.New("invalid setting value")
)

// UpsertSettingRequest is used for creating or overwriting a setting.
type UpsertSettingRequest struct {
	SettingKey   string  `json:"setting_key" binding:"required"`
	SettingValue *string `json:"setting_value"`
	Description  *string `json:"description"`
}

// SettingService manages application_settings rows and exposes the typed
// attendance policy built from them.
type SettingService interface {
	GetSettings() ([]models.ApplicationSetting, error)
	GetSettingByKey(key string) (*models.ApplicationSetting, error)
	UpsertSetting(req UpsertSettingRequest) (*models.ApplicationSetting, error)
	DeleteSetting(key string) error
	GetAttendancePolicy() models.AttendancePolicy
}

type settingService struct {
	settingRepo repositories.SettingRepository
	db          *sql.DB
}

// NewSettingService creates a new instance of SettingService.
func NewSettingService(sr repositories.SettingRepository, db *sql.DB) SettingService {
	return &settingService{settingRepo: sr, db: db}
}

func (s *settingService) GetSettings() ([]models.ApplicationSetting, error) {
	return s.settingRepo.GetSettings()
}

func (s *settingService) GetSettingByKey(key string) (*models.ApplicationSetting, error) {
	setting, err := s.settingRepo.GetSettingByKey(key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: key %q", ErrSettingNotFound, key)
		}
		return nil, err
	}
	return setting, nil
}

func (s *settingService) UpsertSetting(req UpsertSettingRequest) (*models.ApplicationSetting, error) {
	if err := validatePolicyValue(req.SettingKey, req.SettingValue); err != nil {
		return nil, err
	}
	setting := &models.ApplicationSetting{
		SettingKey:   req.SettingKey,
		SettingValue: req.SettingValue,
		Description:  req.Description,
	}
	return s.settingRepo.UpsertSetting(s.db, setting)
}

func (s *settingService) DeleteSetting(key string) error {
	err := s.settingRepo.DeleteSetting(s.db, key)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: key %q", ErrSettingNotFound, key)
	}
	return err
}

// validatePolicyValue rejects values that would not parse for the typed
// attendance policy keys. Unknown keys pass through untyped.
func validatePolicyValue(key string, value *string) error {
	if value == nil {
		return nil
	}
	switch key {
	case models.SettingDailyShiftLimit, models.SettingAutoEndHour:
		if _, err := strconv.Atoi(*value); err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidSettingValue, key)
		}
	case models.SettingDefaultShiftHours:
		if _, err := strconv.ParseFloat(*value, 64); err != nil {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidSettingValue, key)
		}
	case models.SettingAutoEndEnabled:
		if _, err := strconv.ParseBool(*value); err != nil {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidSettingValue, key)
		}
	}
	return nil
}

// GetAttendancePolicy merges stored settings rows over the built-in defaults.
// Rows that are missing or fail to parse leave the default in place.
func (s *settingService) GetAttendancePolicy() models.AttendancePolicy {
	policy := models.DefaultAttendancePolicy()

	settings, err := s.settingRepo.GetSettings()
	if err != nil {
		utils.LogError(err, "failed to load settings, using default attendance policy")
		return policy
	}

	for _, setting := range settings {
		if setting.SettingValue == nil {
			continue
		}
		value := *setting.SettingValue
		switch setting.SettingKey {
		case models.SettingDailyShiftLimit:
			if parsed, parseErr := strconv.Atoi(value); parseErr == nil && parsed > 0 {
				policy.DailyShiftLimit = parsed
			}
		case models.SettingDefaultShiftHours:
			if parsed, parseErr := strconv.ParseFloat(value, 64); parseErr == nil && parsed > 0 {
				policy.DefaultShiftHours = parsed
			}
		case models.SettingAutoEndEnabled:
			if parsed, parseErr := strconv.ParseBool(value); parseErr == nil {
				policy.AutoEndEnabled = parsed
			}
		case models.SettingAutoEndHour:
			if parsed, parseErr := strconv.Atoi(value); parseErr == nil && parsed >= 0 && parsed <= 23 {
				policy.AutoEndHour = parsed
			}
		}
	}
	return policy
}
