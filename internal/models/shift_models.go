package models

import "time"

// Shift represents one continuous work session for a user. EndTime is nil
// while the shift is in progress. BreakSeconds accumulates the duration of
// closed breaks.
type Shift struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	StartTime    time.Time  `json:"start_time" db:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty" db:"end_time"`
	BreakSeconds int64      `json:"break_seconds" db:"break_seconds"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	User         *User      `json:"user,omitempty"`   // For joining with User details
	Breaks       []Break    `json:"breaks,omitempty"` // For joining with the shift's breaks
}

// InProgress reports whether the shift has not been ended yet.
func (s *Shift) InProgress() bool {
	return s.EndTime == nil
}

// NetWorkSeconds returns wall-clock duration minus accumulated breaks, in
// seconds, clamped to zero. For an in-progress shift the duration is measured
// up to now.
func (s *Shift) NetWorkSeconds(now time.Time) int64 {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	net := int64(end.Sub(s.StartTime).Seconds()) - s.BreakSeconds
	if net < 0 {
		return 0
	}
	return net
}

// Break represents a pause within a shift, excluded from net work time.
// EndTime is nil while the break is open.
type Break struct {
	ID        int64      `json:"id" db:"id"`
	ShiftID   int64      `json:"shift_id" db:"shift_id"`
	StartTime time.Time  `json:"start_time" db:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty" db:"end_time"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// ShiftFilters defines the available filters for querying shifts.
type ShiftFilters struct {
	UserID    *int64     `form:"user_id"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}
