package models

import "time"

// NavItem is one entry of the role-filtered navigation tree. Roles is a
// comma-separated list of role names allowed to see the entry.
type NavItem struct {
	ID        int64     `json:"id" db:"id"`
	ParentID  *int64    `json:"parent_id,omitempty" db:"parent_id"`
	Title     string    `json:"title" db:"title"`
	Path      *string   `json:"path,omitempty" db:"path"`
	Icon      *string   `json:"icon,omitempty" db:"icon"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	Roles     string    `json:"-" db:"roles"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Children  []NavItem `json:"children,omitempty"`
}
