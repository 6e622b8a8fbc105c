package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk_backend/internal/models"
)

func newTestShiftService(repo *fakeShiftRepo, now time.Time) *shiftService {
	return &shiftService{
		shiftRepo:      repo,
		settingService: NewSettingService(newFakeSettingRepo(), nil),
		now:            func() time.Time { return now },
	}
}

func TestStartShiftRejectsSecondActiveShift(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := newTestShiftService(repo, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	first, err := svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)
	assert.Nil(t, first.EndTime)

	_, err = svc.StartShift(1, StartShiftRequest{})
	assert.ErrorIs(t, err, ErrShiftAlreadyActive)

	// A different user is unaffected.
	_, err = svc.StartShift(2, StartShiftRequest{})
	assert.NoError(t, err)
}

func TestStartShiftEnforcesDailyLimit(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	settingRepo := newFakeSettingRepo()
	settingRepo.set(models.SettingDailyShiftLimit, "2")
	svc := &shiftService{
		shiftRepo:      repo,
		settingService: NewSettingService(settingRepo, nil),
		now:            func() time.Time { return now },
	}

	for i := 0; i < 2; i++ {
		shift, err := svc.StartShift(1, StartShiftRequest{})
		require.NoError(t, err)
		now = now.Add(time.Hour)
		svc.now = func() time.Time { return now }
		_, err = svc.EndShift(1, EndShiftRequest{})
		require.NoError(t, err)
		_ = shift
	}

	_, err := svc.StartShift(1, StartShiftRequest{})
	assert.ErrorIs(t, err, ErrDailyShiftLimitReached)

	// The limit resets on the next day.
	now = now.Add(24 * time.Hour)
	svc.now = func() time.Time { return now }
	_, err = svc.StartShift(1, StartShiftRequest{})
	assert.NoError(t, err)
}

func TestEndShiftClosesOpenBreakFirst(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestShiftService(repo, now)

	started, err := svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	svc.now = func() time.Time { return now }
	_, err = svc.StartBreak(1)
	require.NoError(t, err)

	// Clock out 30 minutes into the break without ending it explicitly.
	now = now.Add(30 * time.Minute)
	svc.now = func() time.Time { return now }
	notes := "forgot to end my break"
	ended, err := svc.EndShift(1, EndShiftRequest{Notes: &notes})
	require.NoError(t, err)

	require.NotNil(t, ended.EndTime)
	assert.Equal(t, int64(30*60), ended.BreakSeconds)
	require.NotNil(t, ended.Notes)
	assert.Equal(t, notes, *ended.Notes)
	assert.Equal(t, int64(2*3600), ended.NetWorkSeconds(now))

	// The break record itself was sealed too.
	breaks, err := repo.GetBreaksByShiftID(started.ID)
	require.NoError(t, err)
	require.Len(t, breaks, 1)
	assert.NotNil(t, breaks[0].EndTime)
}

func TestEndShiftWithoutActiveShift(t *testing.T) {
	svc := newTestShiftService(newFakeShiftRepo(), time.Now())

	_, err := svc.EndShift(1, EndShiftRequest{})
	assert.ErrorIs(t, err, ErrNoActiveShift)
}

func TestBreakLifecycle(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestShiftService(repo, now)

	_, err := svc.StartBreak(1)
	assert.ErrorIs(t, err, ErrNoActiveShift)

	started, err := svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)

	_, err = svc.EndBreak(1)
	assert.ErrorIs(t, err, ErrNoActiveBreak)

	_, err = svc.StartBreak(1)
	require.NoError(t, err)
	_, err = svc.StartBreak(1)
	assert.ErrorIs(t, err, ErrBreakAlreadyActive)

	now = now.Add(10 * time.Minute)
	svc.now = func() time.Time { return now }
	closed, err := svc.EndBreak(1)
	require.NoError(t, err)
	assert.NotNil(t, closed.EndTime)

	shift, err := repo.GetShiftByID(started.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), shift.BreakSeconds)

	// A second break on the same shift accumulates on top.
	_, err = svc.StartBreak(1)
	require.NoError(t, err)
	now = now.Add(5 * time.Minute)
	svc.now = func() time.Time { return now }
	_, err = svc.EndBreak(1)
	require.NoError(t, err)

	shift, err = repo.GetShiftByID(started.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(900), shift.BreakSeconds)
}

func TestEndBreakByID(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestShiftService(repo, now)

	started, err := svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)
	brk, err := svc.StartBreak(1)
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	svc.now = func() time.Time { return now }
	closed, err := svc.EndBreakByID(brk.ID)
	require.NoError(t, err)
	assert.NotNil(t, closed.EndTime)

	shift, err := repo.GetShiftByID(started.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(900), shift.BreakSeconds)

	_, err = svc.EndBreakByID(brk.ID)
	assert.ErrorIs(t, err, ErrBreakAlreadyEnded)

	_, err = svc.EndBreakByID(9999)
	assert.ErrorIs(t, err, ErrBreakNotFound)
}

func TestGetCurrentStatusStates(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestShiftService(repo, now)

	status, err := svc.GetCurrentStatus(1)
	require.NoError(t, err)
	assert.Equal(t, ShiftStateNotStarted, status.State)
	assert.Nil(t, status.Shift)

	_, err = svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)

	now = now.Add(time.Hour)
	svc.now = func() time.Time { return now }
	status, err = svc.GetCurrentStatus(1)
	require.NoError(t, err)
	assert.Equal(t, ShiftStateActive, status.State)
	assert.Equal(t, int64(3600), status.NetWorkSeconds)

	_, err = svc.StartBreak(1)
	require.NoError(t, err)
	status, err = svc.GetCurrentStatus(1)
	require.NoError(t, err)
	assert.Equal(t, ShiftStateOnBreak, status.State)

	_, err = svc.EndBreak(1)
	require.NoError(t, err)
	_, err = svc.EndShift(1, EndShiftRequest{})
	require.NoError(t, err)
	status, err = svc.GetCurrentStatus(1)
	require.NoError(t, err)
	assert.Equal(t, ShiftStateNotStarted, status.State)
}

func TestCreateShiftRecord(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := newTestShiftService(repo, time.Now())

	start := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	created, err := svc.CreateShiftRecord(CreateShiftRecordRequest{
		UserID:       3,
		StartTime:    start,
		EndTime:      &end,
		BreakSeconds: 1800,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8*3600-1800), created.NetWorkSeconds(time.Now()))

	_, err = svc.CreateShiftRecord(CreateShiftRecordRequest{
		UserID:    3,
		StartTime: end,
		EndTime:   &start,
	})
	assert.ErrorIs(t, err, ErrInvalidShiftTimes)
}

func TestUpdateShiftMergesFields(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestShiftService(repo, now)

	started, err := svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)

	end := now.Add(4 * time.Hour)
	breakSeconds := int64(1200)
	updated, err := svc.UpdateShift(started.ID, UpdateShiftRequest{
		EndTime:      &end,
		BreakSeconds: &breakSeconds,
	})
	require.NoError(t, err)
	assert.Equal(t, now, updated.StartTime)
	require.NotNil(t, updated.EndTime)
	assert.Equal(t, breakSeconds, updated.BreakSeconds)

	badEnd := now.Add(-time.Hour)
	_, err = svc.UpdateShift(started.ID, UpdateShiftRequest{EndTime: &badEnd})
	assert.ErrorIs(t, err, ErrInvalidShiftTimes)

	_, err = svc.UpdateShift(9999, UpdateShiftRequest{})
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

func TestCloseOpenShiftsStartedBefore(t *testing.T) {
	repo := newFakeShiftRepo()
	now := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)
	svc := newTestShiftService(repo, now)

	// Two forgotten shifts from earlier in the day, one with an open break.
	svc.now = func() time.Time { return now.Add(-12 * time.Hour) }
	_, err := svc.StartShift(1, StartShiftRequest{})
	require.NoError(t, err)
	_, err = svc.StartShift(2, StartShiftRequest{})
	require.NoError(t, err)
	_, err = svc.StartBreak(2)
	require.NoError(t, err)

	// One shift started after the cutoff stays open.
	cutoff := now.Add(-time.Hour)
	svc.now = func() time.Time { return now }
	_, err = svc.StartShift(3, StartShiftRequest{})
	require.NoError(t, err)

	closed, err := svc.CloseOpenShiftsStartedBefore(cutoff)
	require.NoError(t, err)
	assert.Equal(t, 2, closed)

	_, err = repo.GetOpenShiftByUserID(1)
	assert.Error(t, err)
	_, err = repo.GetOpenShiftByUserID(3)
	assert.NoError(t, err)
}

func TestNetWorkSecondsClampsToZero(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Minute)
	shift := models.Shift{StartTime: start, EndTime: &end, BreakSeconds: 3600}

	assert.Equal(t, int64(0), shift.NetWorkSeconds(end))
}
