package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk_backend/internal/models"
)

type fakeNavigationRepo struct {
	items []models.NavItem
}

func (f *fakeNavigationRepo) GetNavItems() ([]models.NavItem, error) {
	return append([]models.NavItem(nil), f.items...), nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestGetNavigationForRoleFiltersAndNests(t *testing.T) {
	repo := &fakeNavigationRepo{items: []models.NavItem{
		{ID: 1, Title: "Dashboard", Roles: ""},
		{ID: 2, Title: "Reservations", Roles: "Admin,Manager"},
		{ID: 3, ParentID: int64Ptr(2), Title: "Flights", Roles: "Admin,Manager"},
		{ID: 4, ParentID: int64Ptr(2), Title: "Hotels", Roles: "Admin"},
		{ID: 5, Title: "Administration", Roles: "Admin"},
		{ID: 6, ParentID: int64Ptr(5), Title: "Settings", Roles: "Admin"},
	}}
	svc := NewNavigationService(repo)

	// Admin sees everything, nested.
	tree, err := svc.GetNavigationForRole(models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "Dashboard", tree[0].Title)
	assert.Equal(t, "Reservations", tree[1].Title)
	require.Len(t, tree[1].Children, 2)
	require.Len(t, tree[2].Children, 1)
	assert.Equal(t, "Settings", tree[2].Children[0].Title)

	// Managers lose the admin-only entries, including nested ones.
	tree, err = svc.GetNavigationForRole(models.RoleManager)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "Flights", tree[1].Children[0].Title)

	// Employees only see the unrestricted entry.
	tree, err = svc.GetNavigationForRole(models.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Dashboard", tree[0].Title)
}

func TestGetNavigationDropsOrphanedChildren(t *testing.T) {
	// The child is visible but its parent is admin-only.
	repo := &fakeNavigationRepo{items: []models.NavItem{
		{ID: 1, Title: "Administration", Roles: "Admin"},
		{ID: 2, ParentID: int64Ptr(1), Title: "Audit Log", Roles: ""},
	}}
	svc := NewNavigationService(repo)

	tree, err := svc.GetNavigationForRole(models.RoleEmployee)
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestRoleAllowedMatchesCaseInsensitively(t *testing.T) {
	assert.True(t, roleAllowed("", "Employee"))
	assert.True(t, roleAllowed("admin, manager", "Manager"))
	assert.True(t, roleAllowed("ADMIN", "admin"))
	assert.False(t, roleAllowed("Admin,Manager", "Employee"))
}

func TestBuildNavTreeKeepsGrandchildren(t *testing.T) {
	items := []models.NavItem{
		{ID: 1, Title: "Root"},
		{ID: 2, ParentID: int64Ptr(1), Title: "Child"},
		{ID: 3, ParentID: int64Ptr(2), Title: "Grandchild"},
	}
	tree := buildNavTree(items)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Grandchild", tree[0].Children[0].Children[0].Title)
}
