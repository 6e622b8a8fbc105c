package models

import "time"

// ApplicationSetting represents a key-value pair for application configuration.
type ApplicationSetting struct {
	ID           int64     `json:"id" db:"id"`
	SettingKey   string    `json:"setting_key" db:"setting_key" binding:"required"`
	SettingValue *string   `json:"setting_value,omitempty" db:"setting_value"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Setting keys consumed by the attendance policy.
const (
	SettingDailyShiftLimit   = "attendance.daily_shift_limit"
	SettingDefaultShiftHours = "attendance.default_shift_hours"
	SettingAutoEndEnabled    = "attendance.auto_end_enabled"
	SettingAutoEndHour       = "attendance.auto_end_hour"
)

// AttendancePolicy is the typed view of the attendance settings, merged
// field-by-field over these defaults from application_settings rows.
type AttendancePolicy struct {
	DailyShiftLimit   int     `json:"daily_shift_limit"`
	DefaultShiftHours float64 `json:"default_shift_hours"`
	AutoEndEnabled    bool    `json:"auto_end_enabled"`
	AutoEndHour       int     `json:"auto_end_hour"` // hour of day the dayclose job closes open shifts at
}

// DefaultAttendancePolicy returns the policy used when no settings rows override it.
func DefaultAttendancePolicy() AttendancePolicy {
	return AttendancePolicy{
		DailyShiftLimit:   2,
		DefaultShiftHours: 8,
		AutoEndEnabled:    false,
		AutoEndHour:       23,
	}
}
