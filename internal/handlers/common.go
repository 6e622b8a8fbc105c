package handlers

import (
	"net/http"
	"strconv"

	"tripdesk_backend/internal/middleware"
	"tripdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads an int64 path parameter, responding with a 400 on failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" parameter", "must be an integer"))
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return 0, false
	}
	userID, ok := value.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Invalid user ID in context", ""))
		return 0, false
	}
	return userID, true
}

// currentUserRole reads the authenticated user's role set by the auth middleware.
func currentUserRole(c *gin.Context) string {
	if value, exists := c.Get(middleware.ContextUserRole); exists {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}

// defaultPagination fills page/page_size when the query left them unset.
func defaultPagination(page, pageSize *int) {
	if *page <= 0 {
		*page = 1
	}
	if *pageSize <= 0 {
		*pageSize = 10
	}
}
