package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
	"tripdesk_backend/pkg/utils"
)

var (
	ErrShiftNotFound          = errors.New("shift not found")
	ErrShiftAlreadyActive     = errors.New("an active shift already exists for this user")
	ErrNoActiveShift          = errors.New("no active shift for this user")
	ErrShiftAlreadyEnded      = errors.New("shift has already ended")
	ErrDailyShiftLimitReached = errors.New("daily shift limit reached")
	ErrBreakAlreadyActive     = errors.New("an open break already exists for this shift")
	ErrNoActiveBreak          = errors.New("no open break for this shift")
	ErrBreakNotFound          = errors.New("break not found")
	ErrBreakAlreadyEnded      = errors.New("break has already ended")
	ErrInvalidShiftTimes      = errors.New("shift end time must be after start time")
)

// Work states derived from the open shift and its open break.
const (
	ShiftStateNotStarted = "not_started"
	ShiftStateActive     = "active"
	ShiftStateOnBreak    = "on_break"
	ShiftStateEnded      = "ended"
)

// CreateShiftRecordRequest is used by admins to record a shift with explicit
// times, bypassing the clock-in flow.
type CreateShiftRecordRequest struct {
	UserID       int64      `json:"user_id" binding:"required"`
	StartTime    time.Time  `json:"start_time" binding:"required"`
	EndTime      *time.Time `json:"end_time"`
	BreakSeconds int64      `json:"total_break_seconds" binding:"omitempty,gte=0"`
	Notes        *string    `json:"notes"`
}

// StartShiftRequest is used when a user clocks in.
type StartShiftRequest struct {
	Notes *string `json:"notes"`
}

// EndShiftRequest is used when a user clocks out.
type EndShiftRequest struct {
	Notes *string `json:"notes"`
}

// UpdateShiftRequest carries the admin-editable shift fields. Nil fields are
// left unchanged on the stored record.
type UpdateShiftRequest struct {
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	BreakSeconds *int64     `json:"break_seconds" binding:"omitempty,gte=0"`
	Notes        *string    `json:"notes"`
}

// ShiftStatusResponse reports the user's current work state and, when one
// exists, the open shift with its accumulated net work time.
type ShiftStatusResponse struct {
	State          string        `json:"state"`
	Shift          *models.Shift `json:"shift,omitempty"`
	NetWorkSeconds int64         `json:"net_work_seconds"`
}

// ShiftService drives the clock-in/break/clock-out lifecycle and the admin
// shift CRUD.
type ShiftService interface {
	StartShift(userID int64, req StartShiftRequest) (*models.Shift, error)
	EndShift(userID int64, req EndShiftRequest) (*models.Shift, error)
	StartBreak(userID int64) (*models.Break, error)
	EndBreak(userID int64) (*models.Break, error)
	EndBreakByID(breakID int64) (*models.Break, error)
	GetCurrentStatus(userID int64) (*ShiftStatusResponse, error)

	CreateShiftRecord(req CreateShiftRecordRequest) (*models.Shift, error)

	GetShifts(filters models.ShiftFilters) ([]models.Shift, int, error)
	GetShiftByID(shiftID int64) (*models.Shift, error)
	UpdateShift(shiftID int64, req UpdateShiftRequest) (*models.Shift, error)
	DeleteShift(shiftID int64) error

	CloseOpenShiftsStartedBefore(cutoff time.Time) (int, error)
}

type shiftService struct {
	shiftRepo      repositories.ShiftRepository
	settingService SettingService
	db             *sql.DB
	now            func() time.Time
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(sr repositories.ShiftRepository, ss SettingService, db *sql.DB) ShiftService {
	return &shiftService{
		shiftRepo:      sr,
		settingService: ss,
		db:             db,
		now:            time.Now,
	}
}

// StartShift clocks the user in. It refuses when the user already has an open
// shift or has hit the daily shift limit from the attendance policy. The open
// shift check is backed by a partial unique index, so a concurrent duplicate
// start surfaces as a duplicate-key error rather than a second open shift.
func (s *shiftService) StartShift(userID int64, req StartShiftRequest) (*models.Shift, error) {
	currentTime := s.now()

	if _, err := s.shiftRepo.GetOpenShiftByUserID(userID); err == nil {
		return nil, ErrShiftAlreadyActive
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	policy := s.settingService.GetAttendancePolicy()
	dayStart := time.Date(currentTime.Year(), currentTime.Month(), currentTime.Day(), 0, 0, 0, 0, currentTime.Location())
	startedToday, err := s.shiftRepo.CountShiftsStartedBetween(userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	if startedToday >= policy.DailyShiftLimit {
		return nil, fmt.Errorf("%w: limit is %d per day", ErrDailyShiftLimitReached, policy.DailyShiftLimit)
	}

	shift := &models.Shift{
		UserID:    userID,
		StartTime: currentTime,
		Notes:     req.Notes,
	}
	created, err := s.shiftRepo.CreateShift(s.db, shift)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrShiftAlreadyActive
		}
		return nil, err
	}
	utils.LogInfo("shift started", map[string]interface{}{"user_id": userID, "shift_id": created.ID})
	return created, nil
}

// EndShift clocks the user out, closing any open break first so its duration
// counts into break_seconds before the shift is sealed.
func (s *shiftService) EndShift(userID int64, req EndShiftRequest) (*models.Shift, error) {
	currentTime := s.now()

	openShift, err := s.shiftRepo.GetOpenShiftByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	if closeErr := s.closeOpenBreak(openShift.ID, currentTime); closeErr != nil {
		return nil, closeErr
	}

	if err = s.shiftRepo.EndShift(s.db, openShift.ID, currentTime); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftAlreadyEnded
		}
		return nil, err
	}

	ended, err := s.shiftRepo.GetShiftByID(openShift.ID)
	if err != nil {
		return nil, err
	}
	if req.Notes != nil {
		ended.Notes = req.Notes
		if ended, err = s.shiftRepo.UpdateShift(s.db, ended); err != nil {
			return nil, err
		}
	}
	utils.LogInfo("shift ended", map[string]interface{}{"user_id": userID, "shift_id": ended.ID})
	return ended, nil
}

// StartBreak opens a break on the user's active shift.
func (s *shiftService) StartBreak(userID int64) (*models.Break, error) {
	openShift, err := s.shiftRepo.GetOpenShiftByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	if _, err = s.shiftRepo.GetOpenBreakByShiftID(openShift.ID); err == nil {
		return nil, ErrBreakAlreadyActive
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	brk := &models.Break{ShiftID: openShift.ID, StartTime: s.now()}
	created, err := s.shiftRepo.CreateBreak(s.db, brk)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrBreakAlreadyActive
		}
		return nil, err
	}
	return created, nil
}

// EndBreak closes the open break on the user's active shift and folds its
// duration into the shift's break_seconds.
func (s *shiftService) EndBreak(userID int64) (*models.Break, error) {
	openShift, err := s.shiftRepo.GetOpenShiftByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveShift
		}
		return nil, err
	}

	openBreak, err := s.shiftRepo.GetOpenBreakByShiftID(openShift.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveBreak
		}
		return nil, err
	}

	currentTime := s.now()
	if err = s.shiftRepo.CloseBreak(s.db, openBreak.ID, currentTime); err != nil {
		return nil, err
	}
	seconds := int64(currentTime.Sub(openBreak.StartTime).Seconds())
	if seconds > 0 {
		if err = s.shiftRepo.AddBreakSeconds(s.db, openShift.ID, seconds); err != nil {
			return nil, err
		}
	}
	endTime := currentTime
	openBreak.EndTime = &endTime
	return openBreak, nil
}

// EndBreakByID closes a specific break and folds its duration into the owning
// shift's break_seconds.
func (s *shiftService) EndBreakByID(breakID int64) (*models.Break, error) {
	brk, err := s.shiftRepo.GetBreakByID(breakID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBreakNotFound
		}
		return nil, err
	}
	if brk.EndTime != nil {
		return nil, ErrBreakAlreadyEnded
	}

	currentTime := s.now()
	if err = s.shiftRepo.CloseBreak(s.db, brk.ID, currentTime); err != nil {
		return nil, err
	}
	seconds := int64(currentTime.Sub(brk.StartTime).Seconds())
	if seconds > 0 {
		if err = s.shiftRepo.AddBreakSeconds(s.db, brk.ShiftID, seconds); err != nil {
			return nil, err
		}
	}
	endTime := currentTime
	brk.EndTime = &endTime
	return brk, nil
}

// CreateShiftRecord inserts a shift with caller-supplied times. A record with
// no end time counts as that user's open shift, so the one-open-shift rule
// still applies.
func (s *shiftService) CreateShiftRecord(req CreateShiftRecordRequest) (*models.Shift, error) {
	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidShiftTimes
	}

	shift := &models.Shift{
		UserID:       req.UserID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakSeconds: req.BreakSeconds,
		Notes:        req.Notes,
	}
	created, err := s.shiftRepo.CreateShift(s.db, shift)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrShiftAlreadyActive
		}
		return nil, err
	}
	return created, nil
}

// GetCurrentStatus derives the user's work state from the open shift and its
// open break.
func (s *shiftService) GetCurrentStatus(userID int64) (*ShiftStatusResponse, error) {
	openShift, err := s.shiftRepo.GetOpenShiftByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ShiftStatusResponse{State: ShiftStateNotStarted}, nil
		}
		return nil, err
	}

	state := ShiftStateActive
	if _, err = s.shiftRepo.GetOpenBreakByShiftID(openShift.ID); err == nil {
		state = ShiftStateOnBreak
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	return &ShiftStatusResponse{
		State:          state,
		Shift:          openShift,
		NetWorkSeconds: openShift.NetWorkSeconds(s.now()),
	}, nil
}

func (s *shiftService) GetShifts(filters models.ShiftFilters) ([]models.Shift, int, error) {
	return s.shiftRepo.GetShifts(filters)
}

func (s *shiftService) GetShiftByID(shiftID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return shift, nil
}

// UpdateShift merges the non-nil request fields onto the stored record and
// writes it back.
func (s *shiftService) UpdateShift(shiftID int64, req UpdateShiftRequest) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}

	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = req.EndTime
	}
	if req.BreakSeconds != nil {
		shift.BreakSeconds = *req.BreakSeconds
	}
	if req.Notes != nil {
		shift.Notes = req.Notes
	}

	if shift.EndTime != nil && !shift.EndTime.After(shift.StartTime) {
		return nil, ErrInvalidShiftTimes
	}

	updated, err := s.shiftRepo.UpdateShift(s.db, shift)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *shiftService) DeleteShift(shiftID int64) error {
	err := s.shiftRepo.DeleteShift(s.db, shiftID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrShiftNotFound
	}
	return err
}

// CloseOpenShiftsStartedBefore ends every shift still open at the cutoff,
// closing open breaks first. It returns how many shifts were closed. The
// day-close job calls this when the auto-end policy is enabled.
func (s *shiftService) CloseOpenShiftsStartedBefore(cutoff time.Time) (int, error) {
	openShifts, err := s.shiftRepo.ListOpenShiftsStartedBefore(cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, shift := range openShifts {
		if err := s.closeOpenBreak(shift.ID, cutoff); err != nil {
			utils.LogError(err, fmt.Sprintf("failed to close open break for shift %d", shift.ID))
			continue
		}
		if err := s.shiftRepo.EndShift(s.db, shift.ID, cutoff); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				utils.LogError(err, fmt.Sprintf("failed to auto-end shift %d", shift.ID))
			}
			continue
		}
		closed++
	}
	return closed, nil
}

// closeOpenBreak closes the shift's open break, if any, at endTime and adds
// its duration to break_seconds.
func (s *shiftService) closeOpenBreak(shiftID int64, endTime time.Time) error {
	openBreak, err := s.shiftRepo.GetOpenBreakByShiftID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if err = s.shiftRepo.CloseBreak(s.db, openBreak.ID, endTime); err != nil {
		return err
	}
	seconds := int64(endTime.Sub(openBreak.StartTime).Seconds())
	if seconds > 0 {
		return s.shiftRepo.AddBreakSeconds(s.db, shiftID, seconds)
	}
	return nil
}
