package handlers

import (
	"errors"
	"net/http"

	"tripdesk_backend/internal/services"
	"tripdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler holds the setting service.
type SettingHandler struct {
	settingService services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: ss}
}

// GetSettings lists all settings rows.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingService.GetSettings()
	if err != nil {
		utils.LogError(err, "GetSettings: failed to fetch settings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// GetSettingByKey returns one settings row.
func (h *SettingHandler) GetSettingByKey(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.settingService.GetSettingByKey(key)
	if err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found", ""))
		} else {
			utils.LogError(err, "GetSettingByKey: failed to fetch setting")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch setting", ""))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UpsertSetting creates or overwrites a setting.
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var req services.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	setting, err := h.settingService.UpsertSetting(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSettingValue) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "UpsertSetting: failed to save setting")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save setting", ""))
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSetting removes a settings row, reverting that key to its default.
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	key := c.Param("key")

	if err := h.settingService.DeleteSetting(key); err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found", ""))
		} else {
			utils.LogError(err, "DeleteSetting: failed to delete setting")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete setting", ""))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAttendancePolicy returns the effective typed attendance policy.
func (h *SettingHandler) GetAttendancePolicy(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingService.GetAttendancePolicy())
}
