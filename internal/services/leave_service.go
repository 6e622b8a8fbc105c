package services

import (
	"database/sql"
	"errors"
	"time"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
)

var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrLeaveAlreadyReviewed = errors.New("leave request has already been reviewed")
	ErrInvalidLeaveStatus   = errors.New("invalid leave review status")
	ErrInvalidLeaveDate     = errors.New("leave date must be in YYYY-MM-DD format")
)

// CreateLeaveRequest is used when a user files a leave request.
type CreateLeaveRequest struct {
	LeaveType string  `json:"leave_type" binding:"required"`
	LeaveDate string  `json:"leave_date" binding:"required"`
	Notes     *string `json:"notes"`
}

// ReviewLeaveRequest carries the reviewer's decision.
type ReviewLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// LeaveService manages leave requests and their one-way review lifecycle.
type LeaveService interface {
	CreateLeave(userID int64, req CreateLeaveRequest) (*models.LeaveRequest, error)
	GetLeaves(filters models.LeaveFilters) ([]models.LeaveRequest, int, error)
	GetLeaveByID(leaveID int64) (*models.LeaveRequest, error)
	ReviewLeave(leaveID int64, reviewerID int64, req ReviewLeaveRequest) (*models.LeaveRequest, error)
	DeleteLeave(leaveID int64) error
	GetApprovedLeaves(userID int64, startDate, endDate string) ([]models.LeaveRequest, error)
}

type leaveService struct {
	leaveRepo repositories.LeaveRepository
	db        *sql.DB
}

// NewLeaveService creates a new instance of LeaveService.
func NewLeaveService(lr repositories.LeaveRepository, db *sql.DB) LeaveService {
	return &leaveService{leaveRepo: lr, db: db}
}

// CreateLeave files a new request. New requests always start pending; the
// caller cannot set the status.
func (s *leaveService) CreateLeave(userID int64, req CreateLeaveRequest) (*models.LeaveRequest, error) {
	if _, err := time.Parse("2006-01-02", req.LeaveDate); err != nil {
		return nil, ErrInvalidLeaveDate
	}

	leave := &models.LeaveRequest{
		UserID:    userID,
		LeaveType: req.LeaveType,
		LeaveDate: req.LeaveDate,
		Notes:     req.Notes,
		Status:    string(models.LeaveStatusPending),
	}
	return s.leaveRepo.CreateLeave(s.db, leave)
}

func (s *leaveService) GetLeaves(filters models.LeaveFilters) ([]models.LeaveRequest, int, error) {
	return s.leaveRepo.GetLeaves(filters)
}

func (s *leaveService) GetLeaveByID(leaveID int64) (*models.LeaveRequest, error) {
	leave, err := s.leaveRepo.GetLeaveByID(leaveID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return leave, nil
}

// ReviewLeave applies the reviewer's decision. The underlying update only
// matches pending rows, so a request that was already approved or rejected
// cannot be flipped, even by concurrent reviewers.
func (s *leaveService) ReviewLeave(leaveID int64, reviewerID int64, req ReviewLeaveRequest) (*models.LeaveRequest, error) {
	if !models.IsValidLeaveStatus(req.Status) || req.Status == string(models.LeaveStatusPending) {
		return nil, ErrInvalidLeaveStatus
	}

	if _, err := s.leaveRepo.GetLeaveByID(leaveID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}

	if err := s.leaveRepo.UpdateLeaveReview(s.db, leaveID, req.Status, reviewerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// The row exists but is no longer pending.
			return nil, ErrLeaveAlreadyReviewed
		}
		return nil, err
	}
	return s.leaveRepo.GetLeaveByID(leaveID)
}

// GetApprovedLeaves returns the user's approved leaves whose leave date falls
// inside the closed range.
func (s *leaveService) GetApprovedLeaves(userID int64, startDate, endDate string) ([]models.LeaveRequest, error) {
	for _, date := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, ErrInvalidLeaveDate
		}
	}
	return s.leaveRepo.GetApprovedLeavesInRange(userID, startDate, endDate)
}

func (s *leaveService) DeleteLeave(leaveID int64) error {
	err := s.leaveRepo.DeleteLeave(s.db, leaveID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrLeaveNotFound
	}
	return err
}
