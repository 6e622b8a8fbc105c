package services

import (
	"strings"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
)

// NavigationService assembles the role-filtered navigation tree.
type NavigationService interface {
	GetNavigationForRole(role string) ([]models.NavItem, error)
}

type navigationService struct {
	navRepo repositories.NavigationRepository
}

// NewNavigationService creates a new instance of NavigationService.
func NewNavigationService(nr repositories.NavigationRepository) NavigationService {
	return &navigationService{navRepo: nr}
}

// GetNavigationForRole returns the nav tree visible to the given role. Items
// with an empty roles list are visible to everyone. A child whose parent is
// filtered out is dropped with it.
func (s *navigationService) GetNavigationForRole(role string) ([]models.NavItem, error) {
	items, err := s.navRepo.GetNavItems()
	if err != nil {
		return nil, err
	}

	visible := make([]models.NavItem, 0, len(items))
	for _, item := range items {
		if roleAllowed(item.Roles, role) {
			visible = append(visible, item)
		}
	}
	return buildNavTree(visible), nil
}

// roleAllowed checks a comma-separated role list against the caller's role.
func roleAllowed(roles, role string) bool {
	if strings.TrimSpace(roles) == "" {
		return true
	}
	for _, allowed := range strings.Split(roles, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), role) {
			return true
		}
	}
	return false
}

// buildNavTree nests children under their parents, preserving the repository's
// sort order. Items whose parent is not in the visible set are dropped.
func buildNavTree(items []models.NavItem) []models.NavItem {
	childrenOf := make(map[int64][]*models.NavItem, len(items))
	for i := range items {
		if items[i].ParentID != nil {
			childrenOf[*items[i].ParentID] = append(childrenOf[*items[i].ParentID], &items[i])
		}
	}

	var build func(item *models.NavItem) models.NavItem
	build = func(item *models.NavItem) models.NavItem {
		node := *item
		node.Children = nil
		for _, child := range childrenOf[item.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	roots := []models.NavItem{}
	for i := range items {
		if items[i].ParentID == nil {
			roots = append(roots, build(&items[i]))
		}
	}
	return roots
}
