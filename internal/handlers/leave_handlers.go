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

// LeaveHandler holds the leave service.
type LeaveHandler struct {
	leaveService services.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(ls services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: ls}
}

// CreateLeave files a leave request for the authenticated user.
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	leave, err := h.leaveService.CreateLeave(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLeaveDate) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateLeave: failed to create leave request")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create leave request", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, leave)
}

// GetLeaves lists leave requests. Employees see their own; admin and manager
// may filter across users.
func (h *LeaveHandler) GetLeaves(c *gin.Context) {
	var filters models.LeaveFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	defaultPagination(&filters.Page, &filters.PageSize)

	role := currentUserRole(c)
	if !strings.EqualFold(role, models.RoleAdmin) && !strings.EqualFold(role, models.RoleManager) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		filters.UserID = &userID
	}

	leaves, totalCount, err := h.leaveService.GetLeaves(filters)
	if err != nil {
		utils.LogError(err, "GetLeaves: failed to fetch leave requests")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch leave requests", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      leaves,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetApprovedLeaves returns approved leaves in a date range, as consumed by
// the attendance calendar. Employees may only query themselves.
func (h *LeaveHandler) GetApprovedLeaves(c *gin.Context) {
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
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You may only view your own leaves", ""))
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

	leaves, err := h.leaveService.GetApprovedLeaves(targetID, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLeaveDate) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "GetApprovedLeaves: failed to fetch approved leaves")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch approved leaves", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": leaves})
}

// GetLeaveByID returns one leave request.
func (h *LeaveHandler) GetLeaveByID(c *gin.Context) {
	leaveID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	leave, err := h.leaveService.GetLeaveByID(leaveID)
	if err != nil {
		if errors.Is(err, services.ErrLeaveNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Leave request not found", ""))
		} else {
			utils.LogError(err, "GetLeaveByID: failed to fetch leave request")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch leave request", ""))
		}
		return
	}
	c.JSON(http.StatusOK, leave)
}

// ReviewLeave approves or rejects a pending leave request.
func (h *LeaveHandler) ReviewLeave(c *gin.Context) {
	leaveID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	leave, err := h.leaveService.ReviewLeave(leaveID, reviewerID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Leave request not found", ""))
		case errors.Is(err, services.ErrLeaveAlreadyReviewed):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Leave request has already been reviewed", ""))
		case errors.Is(err, services.ErrInvalidLeaveStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Status must be approved or rejected", ""))
		default:
			utils.LogError(err, "ReviewLeave: failed to review leave request")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to review leave request", ""))
		}
		return
	}
	c.JSON(http.StatusOK, leave)
}

// DeleteLeave soft-deletes a leave request.
func (h *LeaveHandler) DeleteLeave(c *gin.Context) {
	leaveID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.leaveService.DeleteLeave(leaveID); err != nil {
		if errors.Is(err, services.ErrLeaveNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Leave request not found", ""))
		} else {
			utils.LogError(err, "DeleteLeave: failed to delete leave request")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete leave request", ""))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
