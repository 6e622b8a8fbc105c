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

// LeaveRepository defines the interface for leave request database operations.
type LeaveRepository interface {
	CreateLeave(executor SQLExecutor, leave *models.LeaveRequest) (*models.LeaveRequest, error)
	GetLeaveByID(id int64) (*models.LeaveRequest, error)
	GetLeaves(filters models.LeaveFilters) ([]models.LeaveRequest, int, error)
	UpdateLeaveReview(executor SQLExecutor, id int64, status string, reviewerID int64) error
	DeleteLeave(executor SQLExecutor, id int64) error
	GetApprovedLeavesInRange(userID int64, from, to string) ([]models.LeaveRequest, error)
}

type leaveRepository struct {
	db *sql.DB
}

// NewLeaveRepository creates a new instance of LeaveRepository.
func NewLeaveRepository(db *sql.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

const selectLeaveFields = `
	l.id, l.user_id, l.leave_type, to_char(l.leave_date, 'YYYY-MM-DD'), l.notes, l.status, l.reviewer_id,
	l.created_at, l.updated_at,
	COALESCE(u.username, ''), COALESCE(u.full_name, ''),
	COALESCE(rv.username, ''), COALESCE(rv.full_name, '')
`
const leaveJoins = `
	FROM leave_requests l
	LEFT JOIN users u ON l.user_id = u.id
	LEFT JOIN users rv ON l.reviewer_id = rv.id
`

func scanLeaveRow(row scanner, isList bool) (*models.LeaveRequest, int, error) {
	var leave models.LeaveRequest
	var notes sql.NullString
	var reviewerID sql.NullInt64
	var username, fullName, reviewerUsername, reviewerFullName sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&leave.ID, &leave.UserID, &leave.LeaveType, &leave.LeaveDate, &notes, &leave.Status, &reviewerID,
		&leave.CreatedAt, &leave.UpdatedAt,
		&username, &fullName, &reviewerUsername, &reviewerFullName,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning leave request: %v", ErrDatabaseError, err)
	}

	if notes.Valid {
		leave.Notes = &notes.String
	}
	if username.Valid && username.String != "" {
		user := &models.User{ID: leave.UserID, Username: username.String}
		if fullName.Valid && fullName.String != "" {
			user.FullName = &fullName.String
		}
		leave.User = user
	}
	if reviewerID.Valid {
		leave.ReviewerID = &reviewerID.Int64
		if reviewerUsername.Valid && reviewerUsername.String != "" {
			reviewer := &models.User{ID: reviewerID.Int64, Username: reviewerUsername.String}
			if reviewerFullName.Valid && reviewerFullName.String != "" {
				reviewer.FullName = &reviewerFullName.String
			}
			leave.Reviewer = reviewer
		}
	}
	return &leave, totalCount, nil
}

func (r *leaveRepository) CreateLeave(executor SQLExecutor, leave *models.LeaveRequest) (*models.LeaveRequest, error) {
	query := `INSERT INTO leave_requests (user_id, leave_type, leave_date, notes, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	leave.CreatedAt = currentTime
	leave.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		leave.UserID, leave.LeaveType, leave.LeaveDate, leave.Notes, leave.Status,
		leave.CreatedAt, leave.UpdatedAt,
	).Scan(&leave.ID, &leave.CreatedAt, &leave.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: user with ID %d not found", ErrNotFound, leave.UserID)
		}
		return nil, fmt.Errorf("%w: creating leave request: %v", ErrDatabaseError, err)
	}
	return leave, nil
}

func (r *leaveRepository) GetLeaveByID(id int64) (*models.LeaveRequest, error) {
	query := "SELECT " + selectLeaveFields + leaveJoins + " WHERE l.id = $1 AND l.deleted_at IS NULL"
	leave, _, err := scanLeaveRow(r.db.QueryRow(query, id), false)
	return leave, err
}

func (r *leaveRepository) GetLeaves(filters models.LeaveFilters) ([]models.LeaveRequest, int, error) {
	leaves := []models.LeaveRequest{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectLeaveFields + ", COUNT(*) OVER() as total_count " + leaveJoins)

	conditions := []string{"l.deleted_at IS NULL"}
	var args []interface{}
	argCount := 1

	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("l.user_id = $%d", argCount))
		args = append(args, *filters.UserID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("l.leave_date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("l.leave_date <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY l.leave_date DESC")

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
		return nil, 0, fmt.Errorf("%w: querying leave requests: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		leave, scannedTotalCount, scanErr := scanLeaveRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		leaves = append(leaves, *leave)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating leave rows: %v", ErrDatabaseError, err)
	}
	return leaves, totalCount, nil
}

// UpdateLeaveReview records the review decision. It only succeeds while the
// request is still pending; reviewing twice returns ErrNotFound to the caller,
// which the service maps to an already-reviewed conflict.
func (r *leaveRepository) UpdateLeaveReview(executor SQLExecutor, id int64, status string, reviewerID int64) error {
	query := `UPDATE leave_requests SET status = $1, reviewer_id = $2, updated_at = $3
	          WHERE id = $4 AND status = 'pending' AND deleted_at IS NULL`
	result, err := executor.Exec(query, status, reviewerID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: reviewing leave request ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLeave soft-deletes a leave request.
func (r *leaveRepository) DeleteLeave(executor SQLExecutor, id int64) error {
	query := `UPDATE leave_requests SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deleting leave request ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetApprovedLeavesInRange returns the approved leave requests of a user whose
// leave date falls within [from, to], both YYYY-MM-DD.
func (r *leaveRepository) GetApprovedLeavesInRange(userID int64, from, to string) ([]models.LeaveRequest, error) {
	query := "SELECT " + selectLeaveFields + leaveJoins + `
	          WHERE l.user_id = $1 AND l.status = 'approved' AND l.deleted_at IS NULL
	          AND l.leave_date >= $2 AND l.leave_date <= $3
	          ORDER BY l.leave_date`
	rows, err := r.db.Query(query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying approved leaves: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	leaves := []models.LeaveRequest{}
	for rows.Next() {
		leave, _, scanErr := scanLeaveRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		leaves = append(leaves, *leave)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating approved leave rows: %v", ErrDatabaseError, err)
	}
	return leaves, nil
}
