package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripdesk_backend/internal/models"

	"github.com/lib/pq"
)

// ShiftRepository defines the interface for shift and break database operations.
type ShiftRepository interface {
	// Shift methods
	CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	GetShiftByID(id int64) (*models.Shift, error)
	GetOpenShiftByUserID(userID int64) (*models.Shift, error)
	CountShiftsStartedBetween(userID int64, from, to time.Time) (int, error)
	GetShifts(filters models.ShiftFilters) ([]models.Shift, int, error)
	UpdateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	EndShift(executor SQLExecutor, shiftID int64, endTime time.Time) error
	AddBreakSeconds(executor SQLExecutor, shiftID int64, seconds int64) error
	DeleteShift(executor SQLExecutor, id int64) error
	ListOpenShiftsStartedBefore(cutoff time.Time) ([]models.Shift, error)

	// Break methods
	CreateBreak(executor SQLExecutor, brk *models.Break) (*models.Break, error)
	GetBreakByID(id int64) (*models.Break, error)
	GetOpenBreakByShiftID(shiftID int64) (*models.Break, error)
	CloseBreak(executor SQLExecutor, breakID int64, endTime time.Time) error
	GetBreaksByShiftID(shiftID int64) ([]models.Break, error)
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

// --- Shift methods ---

func (r *shiftRepository) CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `INSERT INTO shifts (user_id, start_time, end_time, break_seconds, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	shift.CreatedAt = currentTime
	shift.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		shift.UserID, shift.StartTime, shift.EndTime, shift.BreakSeconds, shift.Notes,
		shift.CreatedAt, shift.UpdatedAt,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "shifts_one_open_per_user" {
				return nil, fmt.Errorf("%w: user %d already has an in-progress shift", ErrDuplicateKey, shift.UserID)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: user with ID %d not found", ErrNotFound, shift.UserID)
			}
		}
		return nil, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift, nil
}

const selectShiftFields = `
	s.id, s.user_id, s.start_time, s.end_time, s.break_seconds, s.notes, s.created_at, s.updated_at,
	COALESCE(u.username, ''), COALESCE(u.full_name, '')
`
const shiftJoins = `
	FROM shifts s
	LEFT JOIN users u ON s.user_id = u.id
`

func scanShiftRow(row scanner, isList bool) (*models.Shift, int, error) {
	var shift models.Shift
	var endTime sql.NullTime
	var notes sql.NullString
	var username, fullName sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&shift.ID, &shift.UserID, &shift.StartTime, &endTime, &shift.BreakSeconds, &notes,
		&shift.CreatedAt, &shift.UpdatedAt,
		&username, &fullName,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}

	if endTime.Valid {
		shift.EndTime = &endTime.Time
	}
	if notes.Valid {
		shift.Notes = &notes.String
	}
	if username.Valid && username.String != "" {
		user := &models.User{ID: shift.UserID, Username: username.String}
		if fullName.Valid && fullName.String != "" {
			user.FullName = &fullName.String
		}
		shift.User = user
	}
	return &shift, totalCount, nil
}

func (r *shiftRepository) GetShiftByID(id int64) (*models.Shift, error) {
	query := "SELECT " + selectShiftFields + shiftJoins + " WHERE s.id = $1 AND s.deleted_at IS NULL"
	shift, _, err := scanShiftRow(r.db.QueryRow(query, id), false)
	if err != nil {
		return nil, err
	}
	breaks, err := r.GetBreaksByShiftID(shift.ID)
	if err != nil {
		return nil, err
	}
	shift.Breaks = breaks
	return shift, nil
}

func (r *shiftRepository) GetOpenShiftByUserID(userID int64) (*models.Shift, error) {
	query := "SELECT " + selectShiftFields + shiftJoins +
		" WHERE s.user_id = $1 AND s.end_time IS NULL AND s.deleted_at IS NULL"
	shift, _, err := scanShiftRow(r.db.QueryRow(query, userID), false)
	if err != nil {
		return nil, err
	}
	breaks, err := r.GetBreaksByShiftID(shift.ID)
	if err != nil {
		return nil, err
	}
	shift.Breaks = breaks
	return shift, nil
}

func (r *shiftRepository) CountShiftsStartedBetween(userID int64, from, to time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM shifts
	          WHERE user_id = $1 AND start_time >= $2 AND start_time < $3 AND deleted_at IS NULL`
	if err := r.db.QueryRow(query, userID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting shifts for user %d: %v", ErrDatabaseError, userID, err)
	}
	return count, nil
}

func (r *shiftRepository) GetShifts(filters models.ShiftFilters) ([]models.Shift, int, error) {
	shifts := []models.Shift{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectShiftFields + ", COUNT(*) OVER() as total_count " + shiftJoins)

	conditions := []string{"s.deleted_at IS NULL"}
	var args []interface{}
	argCount := 1

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("s.user_id = $%d", argCount))
		args = append(args, *filters.UserID)
		argCount++
	}
	if filters.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("s.start_time >= $%d", argCount))
		args = append(args, *filters.StartDate)
		argCount++
	}
	if filters.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("s.start_time < $%d", argCount))
		args = append(args, *filters.EndDate)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY s.start_time DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		shift, scannedTotalCount, scanErr := scanShiftRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		shifts = append(shifts, *shift)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}

	if err := r.attachBreaks(shifts); err != nil {
		return nil, 0, err
	}
	return shifts, totalCount, nil
}

// attachBreaks loads the breaks of all listed shifts with a single query.
func (r *shiftRepository) attachBreaks(shifts []models.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(shifts))
	index := make(map[int64]int, len(shifts))
	for i := range shifts {
		ids = append(ids, shifts[i].ID)
		index[shifts[i].ID] = i
	}

	query := `SELECT id, shift_id, start_time, end_time, created_at, updated_at
	          FROM breaks WHERE shift_id = ANY($1) ORDER BY start_time`
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("%w: querying breaks for shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		brk, scanErr := scanBreakRow(rows)
		if scanErr != nil {
			return scanErr
		}
		if i, ok := index[brk.ShiftID]; ok {
			shifts[i].Breaks = append(shifts[i].Breaks, *brk)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating break rows: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *shiftRepository) UpdateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `UPDATE shifts SET
	            start_time = $1, end_time = $2, break_seconds = $3, notes = $4, updated_at = $5
	          WHERE id = $6 AND deleted_at IS NULL
	          RETURNING updated_at`
	shift.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		shift.StartTime, shift.EndTime, shift.BreakSeconds, shift.Notes,
		shift.UpdatedAt, shift.ID,
	).Scan(&shift.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating shift ID %d: %v", ErrDatabaseError, shift.ID, err)
	}
	return shift, nil
}

func (r *shiftRepository) EndShift(executor SQLExecutor, shiftID int64, endTime time.Time) error {
	query := `UPDATE shifts SET end_time = $1, updated_at = $2
	          WHERE id = $3 AND end_time IS NULL AND deleted_at IS NULL`
	result, err := executor.Exec(query, endTime, time.Now(), shiftID)
	if err != nil {
		return fmt.Errorf("%w: ending shift ID %d: %v", ErrDatabaseError, shiftID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shiftRepository) AddBreakSeconds(executor SQLExecutor, shiftID int64, seconds int64) error {
	query := `UPDATE shifts SET break_seconds = break_seconds + $1, updated_at = $2
	          WHERE id = $3 AND deleted_at IS NULL`
	result, err := executor.Exec(query, seconds, time.Now(), shiftID)
	if err != nil {
		return fmt.Errorf("%w: accumulating break seconds on shift ID %d: %v", ErrDatabaseError, shiftID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShift soft-deletes a shift; the row is retained for audit.
func (r *shiftRepository) DeleteShift(executor SQLExecutor, id int64) error {
	query := `UPDATE shifts SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deleting shift ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOpenShiftsStartedBefore returns in-progress shifts whose start time is
// before the cutoff. Used by the day-close job.
func (r *shiftRepository) ListOpenShiftsStartedBefore(cutoff time.Time) ([]models.Shift, error) {
	query := "SELECT " + selectShiftFields + shiftJoins +
		" WHERE s.end_time IS NULL AND s.deleted_at IS NULL AND s.start_time < $1 ORDER BY s.start_time"
	rows, err := r.db.Query(query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: querying open shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		shift, _, scanErr := scanShiftRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		shifts = append(shifts, *shift)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating open shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

// --- Break methods ---

func scanBreakRow(row scanner) (*models.Break, error) {
	var brk models.Break
	var endTime sql.NullTime

	err := row.Scan(&brk.ID, &brk.ShiftID, &brk.StartTime, &endTime, &brk.CreatedAt, &brk.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning break: %v", ErrDatabaseError, err)
	}
	if endTime.Valid {
		brk.EndTime = &endTime.Time
	}
	return &brk, nil
}

func (r *shiftRepository) CreateBreak(executor SQLExecutor, brk *models.Break) (*models.Break, error) {
	query := `INSERT INTO breaks (shift_id, start_time, end_time, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	brk.CreatedAt = currentTime
	brk.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		brk.ShiftID, brk.StartTime, brk.EndTime, brk.CreatedAt, brk.UpdatedAt,
	).Scan(&brk.ID, &brk.CreatedAt, &brk.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "breaks_one_open_per_shift" {
				return nil, fmt.Errorf("%w: shift %d already has an open break", ErrDuplicateKey, brk.ShiftID)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: shift with ID %d not found", ErrNotFound, brk.ShiftID)
			}
		}
		return nil, fmt.Errorf("%w: creating break: %v", ErrDatabaseError, err)
	}
	return brk, nil
}

func (r *shiftRepository) GetBreakByID(id int64) (*models.Break, error) {
	query := `SELECT id, shift_id, start_time, end_time, created_at, updated_at FROM breaks WHERE id = $1`
	return scanBreakRow(r.db.QueryRow(query, id))
}

func (r *shiftRepository) GetOpenBreakByShiftID(shiftID int64) (*models.Break, error) {
	query := `SELECT id, shift_id, start_time, end_time, created_at, updated_at
	          FROM breaks WHERE shift_id = $1 AND end_time IS NULL`
	return scanBreakRow(r.db.QueryRow(query, shiftID))
}

func (r *shiftRepository) CloseBreak(executor SQLExecutor, breakID int64, endTime time.Time) error {
	query := `UPDATE breaks SET end_time = $1, updated_at = $2 WHERE id = $3 AND end_time IS NULL`
	result, err := executor.Exec(query, endTime, time.Now(), breakID)
	if err != nil {
		return fmt.Errorf("%w: closing break ID %d: %v", ErrDatabaseError, breakID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shiftRepository) GetBreaksByShiftID(shiftID int64) ([]models.Break, error) {
	query := `SELECT id, shift_id, start_time, end_time, created_at, updated_at
	          FROM breaks WHERE shift_id = $1 ORDER BY start_time`
	rows, err := r.db.Query(query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying breaks for shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	defer rows.Close()

	breaks := []models.Break{}
	for rows.Next() {
		brk, scanErr := scanBreakRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		breaks = append(breaks, *brk)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating break rows: %v", ErrDatabaseError, err)
	}
	return breaks, nil
}
