package handlers

import (
	"net/http"

	"tripdesk_backend/internal/services"
	"tripdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NavigationHandler holds the navigation service.
type NavigationHandler struct {
	navigationService services.NavigationService
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(ns services.NavigationService) *NavigationHandler {
	return &NavigationHandler{navigationService: ns}
}

// GetNavigation returns the nav tree filtered by the caller's role.
func (h *NavigationHandler) GetNavigation(c *gin.Context) {
	role := currentUserRole(c)

	items, err := h.navigationService.GetNavigationForRole(role)
	if err != nil {
		utils.LogError(err, "GetNavigation: failed to build navigation")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch navigation", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
