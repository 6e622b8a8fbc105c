package handlers

import (
	"errors"
	"net/http"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/services"
	"tripdesk_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// CreateReservation creates a customer, a concrete booking, an optional
// supplier, and the reservation wrapper in one transaction.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	reservation, err := h.reservationService.CreateReservation(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBookingType),
			errors.Is(err, services.ErrBookingPayloadMissing),
			errors.Is(err, services.ErrSupplierRequired):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		default:
			utils.LogError(err, "CreateReservation: failed to create reservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create reservation", ""))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created successfully",
		"reservation": reservation,
	})
}

// GetReservations lists reservations with filters.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	var filters models.ReservationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationError(c, err)
		return
	}
	defaultPagination(&filters.Page, &filters.PageSize)

	reservations, totalCount, err := h.reservationService.GetReservations(filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidBookingType) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "GetReservations: failed to fetch reservations")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations", ""))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      reservations,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetReservationByID returns one reservation with its booking, customer, and
// supplier.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found", ""))
		} else {
			utils.LogError(err, "GetReservationByID: failed to fetch reservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservation", ""))
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation applies a partial update to the reservation and its
// booking record.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err)
		return
	}

	reservation, err := h.reservationService.UpdateReservation(reservationID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found", ""))
		case errors.Is(err, services.ErrBookingTypeMismatch):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateReservation: failed to update reservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update reservation", ""))
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation soft-deletes the reservation, its booking record, and its
// customer.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(reservationID); err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found", ""))
		} else {
			utils.LogError(err, "DeleteReservation: failed to delete reservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete reservation", ""))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
