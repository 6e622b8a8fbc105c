package repositories

import (
	"database/sql"
	"fmt"

	"tripdesk_backend/internal/models"
)

// NavigationRepository defines the interface for navigation tree reads.
type NavigationRepository interface {
	GetNavItems() ([]models.NavItem, error)
}

type navigationRepository struct {
	db *sql.DB
}

// NewNavigationRepository creates a new instance of NavigationRepository.
func NewNavigationRepository(db *sql.DB) NavigationRepository {
	return &navigationRepository{db: db}
}

// GetNavItems returns every nav row ordered by sort position. Role filtering
// and tree assembly happen in the service layer.
func (r *navigationRepository) GetNavItems() ([]models.NavItem, error) {
	items := []models.NavItem{}
	query := `SELECT id, parent_id, title, path, icon, sort_order, roles, created_at, updated_at
	          FROM nav_items
	          ORDER BY sort_order ASC, id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying nav items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.NavItem
		var parentID sql.NullInt64
		var path, icon sql.NullString
		if err := rows.Scan(&item.ID, &parentID, &item.Title, &path, &icon,
			&item.SortOrder, &item.Roles, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning nav item: %v", ErrDatabaseError, err)
		}
		if parentID.Valid {
			item.ParentID = &parentID.Int64
		}
		if path.Valid {
			item.Path = &path.String
		}
		if icon.Valid {
			item.Icon = &icon.String
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating nav item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}
