package payments

import (
	"errors"
	"net/http"

	"reserva/internal/shared/apperrors"
	"reserva/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	Settle(c *gin.Context)
	GetSettlement(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Settle(c *gin.Context) {
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	settlement, err := ctrl.service.Settle(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, apperrors.ErrReservationNotFound):
			response.Error(c, http.StatusNotFound, "No settlement found for reservation", nil)
		case errors.Is(err, apperrors.ErrAlreadySettled):
			// 409 carries the final state so the caller can reconcile
			response.RespondJSON(c, "error", http.StatusConflict,
				"Settlement can only be recorded while reservation and settlement are pending", nil, settlement)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to record settlement", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, "Settlement recorded successfully", settlement)
}

func (ctrl *controller) GetSettlement(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid reservation ID", err.Error())
		return
	}

	settlement, err := ctrl.service.GetSettlement(c.Request.Context(), reservationID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.Error(c, http.StatusNotFound, "No settlement found for reservation", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve settlement", nil)
		return
	}

	response.Success(c, http.StatusOK, "Settlement retrieved successfully", settlement)
}
