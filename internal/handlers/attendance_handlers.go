package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/services"
	"tripdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler holds the attendance service.
type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(as services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: as}
}

// GetAttendance builds the attendance calendar for a user and date range.
// Employees may only query themselves; admin and manager may pass user_id.
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetID := callerID
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		parsed, err := utils.StrToInt64(userIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid user_id parameter", "must be an integer"))
			return
		}
		role := currentUserRole(c)
		if parsed != callerID && !strings.EqualFold(role, models.RoleAdmin) && !strings.EqualFold(role, models.RoleManager) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You may only view your own attendance", ""))
			return
		}
		targetID = parsed
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "start_date and end_date are required", "use YYYY-MM-DD"))
		return
	}

	report, err := h.attendanceService.GetAttendance(targetID, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date range", "dates must be YYYY-MM-DD with end_date >= start_date"))
		} else {
			utils.LogError(err, "GetAttendance: failed to build attendance report")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build attendance report", ""))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
