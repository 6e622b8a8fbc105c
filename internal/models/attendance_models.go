package models

// DayStatus classifies one calendar day for the attendance view.
type DayStatus string

const (
	DayStatusPresent          DayStatus = "present"
	DayStatusExcusedAbsence   DayStatus = "excused-absence"
	DayStatusUnexcusedAbsence DayStatus = "unexcused-absence"
)

// AttendanceDay is the per-day entry of the attendance calendar. Exactly one
// of Shifts or Leave is populated depending on Status; days on or after today
// with neither remain absent from the calendar entirely.
type AttendanceDay struct {
	Date   string        `json:"date"` // YYYY-MM-DD
	Status DayStatus     `json:"status"`
	Shifts []Shift       `json:"shifts,omitempty"`
	Leave  *LeaveRequest `json:"leave,omitempty"`
}

// AttendanceReport is the aggregated response for a user and date range.
type AttendanceReport struct {
	UserID        int64                    `json:"user_id"`
	StartDate     string                   `json:"start_date"`
	EndDate       string                   `json:"end_date"`
	Calendar      map[string]AttendanceDay `json:"calendar"`
	RequiredHours float64                  `json:"required_hours"`
	ActualHours   float64                  `json:"actual_hours"`
}
