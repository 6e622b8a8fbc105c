package models

import "time"

// LeaveStatus defines the type for leave request statuses.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// IsValidLeaveStatus checks if the provided status string is a valid LeaveStatus.
func IsValidLeaveStatus(status string) bool {
	switch LeaveStatus(status) {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected:
		return true
	default:
		return false
	}
}

// LeaveRequest represents a dated leave request with a one-way review
// lifecycle: pending -> approved or rejected.
type LeaveRequest struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	LeaveType  string    `json:"leave_type" db:"leave_type"`
	LeaveDate  string    `json:"leave_date" db:"leave_date"` // YYYY-MM-DD
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	Status     string    `json:"status" db:"status"`
	ReviewerID *int64    `json:"reviewer_id,omitempty" db:"reviewer_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	User       *User     `json:"user,omitempty"`     // For joining with the requesting user
	Reviewer   *User     `json:"reviewer,omitempty"` // For joining with the reviewing user
}

// LeaveFilters defines the available filters for querying leave requests.
type LeaveFilters struct {
	UserID    *int64  `form:"user_id"`
	Status    *string `form:"status"`
	DateFrom  *string `form:"start_date"` // YYYY-MM-DD
	DateTo    *string `form:"end_date"`   // YYYY-MM-DD
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size"`
}
