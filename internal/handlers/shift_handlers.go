package handlers

import (
	"errors"
	"net/http"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/services"
	"tripdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

// StartShift clocks the authenticated user in.
func (h *ShiftHandler) StartShift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Body is optional on clock-in.
	var req services.StartShiftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidationError(c, err)
			return
		}
	}

	shift, err := h.shiftService.StartShift(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftAlreadyActive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A shift is already in progress", ""))
		case errors.Is(err, services.ErrDailyShiftLimitReached):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Daily shift limit reached", err.Error()))
		default:
			utils.LogError(err, "StartShift: failed to start shift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to start shift", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// EndShift clocks the authenticated user out.
func (h *ShiftHandler) EndShift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.EndShiftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidationError(c, err)
			return
		}
	}

	shift, err := h.shiftService.EndShift(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveShift):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "No shift is in progress", ""))
		case errors.Is(err, services.ErrShiftAlreadyEnded):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Shift has already ended", ""))
		default:
			utils.LogError(err, "EndShift: failed to end shift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to end shift", ""))
		}
		return
	}
	c.JSON(http.StatusOK, shift)
}

// StartBreak opens a break on the authenticated user's active shift.
func (h *ShiftHandler) StartBreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	brk, err := h.shiftService.StartBreak(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveShift):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "No shift is in progress", ""))
		case errors.Is(err, services.ErrBreakAlreadyActive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A break is already open", ""))
		default:
			utils.LogError(err, "StartBreak: failed to start break")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to start break", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, brk)
}

// EndBreak closes the open break on the authenticated user's active shift.
func (h *ShiftHandler) EndBreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	brk, err := h.shiftService.EndBreak(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveShift):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "No shift is in progress", ""))
		case errors.Is(err, services.ErrNoActiveBreak):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "No break is open", ""))
		default:
			utils.LogError(err, "EndBreak: failed to end break")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to end break", ""))
		}
		return
	}
	c.JSON(http.StatusOK, brk)
}

// EndBreakByID closes a specific break by its ID.
func (h *ShiftHandler) EndBreakByID(c *gin.Context) {
	breakID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	brk, err := h.shiftService.EndBreakByID(breakID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBreakNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Break not found", ""))
		case errors.Is(err, services.ErrBreakAlreadyEnded):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Break has already ended", ""))
		default:
			utils.LogError(err, "EndBreakByID: failed to end break")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to end break", ""))
		}
		return
	}
	c.JSON(http.StatusOK, brk)
}

// CreateShiftRecord records a shift with explicit times. Admin and manager only.
func (h *ShiftHandler) CreateShiftRecord(c *gin.Context) {
	var req services.CreateShiftRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	shift, err := h.shiftService.CreateShiftRecord(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidShiftTimes):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "End time must be after start time", ""))
		case errors.Is(err, services.ErrShiftAlreadyActive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "User already has an in-progress shift", ""))
		default:
			utils.LogError(err, "CreateShiftRecord: failed to create shift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create shift", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// ShiftStatus reports the authenticated user's current work state.
func (h *ShiftHandler) ShiftStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.shiftService.GetCurrentStatus(userID)
	if err != nil {
		utils.LogError(err, "ShiftStatus: failed to fetch status")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch shift status", ""))
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetShifts lists shifts with filters. Admin and manager only.
func (h *ShiftHandler) GetShifts(c *gin.Context) {
	var filters models.ShiftFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	defaultPagination(&filters.Page, &filters.PageSize)

	shifts, totalCount, err := h.shiftService.GetShifts(filters)
	if err != nil {
		utils.LogError(err, "GetShifts: failed to fetch shifts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch shifts", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      shifts,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetShiftByID returns one shift with its breaks.
func (h *ShiftHandler) GetShiftByID(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shift, err := h.shiftService.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found", ""))
		} else {
			utils.LogError(err, "GetShiftByID: failed to fetch shift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch shift", ""))
		}
		return
	}
	c.JSON(http.StatusOK, shift)
}

// UpdateShift applies an admin correction to a shift record.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	shift, err := h.shiftService.UpdateShift(shiftID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found", ""))
		case errors.Is(err, services.ErrInvalidShiftTimes):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "End time must be after start time", ""))
		default:
			utils.LogError(err, "UpdateShift: failed to update shift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update shift", ""))
		}
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift soft-deletes a shift record.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.shiftService.DeleteShift(shiftID); err != nil {
		if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found", ""))
		} else {
			utils.LogError(err, "DeleteShift: failed to delete shift")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete shift", ""))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
