package services

import (
	"errors"
	"math"
	"time"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
)

var ErrInvalidDateRange = errors.New("invalid date range")

const dateLayout = "2006-01-02"

// AttendanceService builds per-day attendance calendars and the hour totals
// derived from shifts, approved leaves, and the attendance policy.
type AttendanceService interface {
	GetAttendance(userID int64, startDate, endDate string) (*models.AttendanceReport, error)
}

type attendanceService struct {
	shiftRepo      repositories.ShiftRepository
	leaveRepo      repositories.LeaveRepository
	settingService SettingService
	now            func() time.Time
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(sr repositories.ShiftRepository, lr repositories.LeaveRepository, ss SettingService) AttendanceService {
	return &attendanceService{
		shiftRepo:      sr,
		leaveRepo:      lr,
		settingService: ss,
		now:            time.Now,
	}
}

func (s *attendanceService) GetAttendance(userID int64, startDate, endDate string) (*models.AttendanceReport, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	rangeEnd := end.Add(24 * time.Hour)
	shifts, _, err := s.shiftRepo.GetShifts(models.ShiftFilters{
		UserID:    &userID,
		StartDate: &start,
		EndDate:   &rangeEnd,
	})
	if err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.GetApprovedLeavesInRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	currentTime := s.now()
	calendar := BuildCalendar(start, end, currentTime, shifts, leaves)

	policy := s.settingService.GetAttendancePolicy()
	var actualSeconds int64
	for _, shift := range shifts {
		actualSeconds += shift.NetWorkSeconds(currentTime)
	}
	// Working days (Mon-Fri) minus approved leave days on those weekdays,
	// each worth the default shift hours.
	leaveDays := leavesByDayCount(leaves)
	requiredDays := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if weekday := day.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
			continue
		}
		if _, onLeave := leaveDays[day.Format(dateLayout)]; onLeave {
			continue
		}
		requiredDays++
	}

	return &models.AttendanceReport{
		UserID:        userID,
		StartDate:     startDate,
		EndDate:       endDate,
		Calendar:      calendar,
		RequiredHours: float64(requiredDays) * policy.DefaultShiftHours,
		ActualHours:   math.Round(float64(actualSeconds)/360) / 10,
	}, nil
}

// BuildCalendar classifies every day from start to end inclusive. Past days
// default to unexcused absence, then approved leaves overlay them as excused,
// then days with shifts become present regardless of leave. Shifts land on the
// day their start time falls on. Days on or after today stay out of the
// calendar unless a shift or leave touches them.
func BuildCalendar(start, end, today time.Time, shifts []models.Shift, leaves []models.LeaveRequest) map[string]models.AttendanceDay {
	todayKey := today.Format(dateLayout)

	shiftsByDay := make(map[string][]models.Shift)
	for _, shift := range shifts {
		key := shift.StartTime.Format(dateLayout)
		shiftsByDay[key] = append(shiftsByDay[key], shift)
	}
	leavesByDay := make(map[string]models.LeaveRequest)
	for _, leave := range leaves {
		if _, seen := leavesByDay[leave.LeaveDate]; !seen {
			leavesByDay[leave.LeaveDate] = leave
		}
	}

	calendar := make(map[string]models.AttendanceDay)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)

		if dayShifts, ok := shiftsByDay[key]; ok {
			calendar[key] = models.AttendanceDay{Date: key, Status: models.DayStatusPresent, Shifts: dayShifts}
			continue
		}
		if leave, ok := leavesByDay[key]; ok {
			leaveCopy := leave
			calendar[key] = models.AttendanceDay{Date: key, Status: models.DayStatusExcusedAbsence, Leave: &leaveCopy}
			continue
		}
		if key < todayKey {
			calendar[key] = models.AttendanceDay{Date: key, Status: models.DayStatusUnexcusedAbsence}
		}
	}
	return calendar
}

// leavesByDayCount deduplicates approved leaves by date so a day with two
// overlapping approvals only reduces required hours once.
func leavesByDayCount(leaves []models.LeaveRequest) map[string]struct{} {
	days := make(map[string]struct{}, len(leaves))
	for _, leave := range leaves {
		days[leave.LeaveDate] = struct{}{}
	}
	return days
}
