package reservations

import (
	"errors"
	"net/http"

	"reserva/internal/shared/apperrors"
	"reserva/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateReservation(c *gin.Context)
	GetReservation(c *gin.Context)
	GetRequesterHistory(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	reservation, err := ctrl.service.Reserve(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, apperrors.ErrEventNotFound):
			response.Error(c, http.StatusNotFound, "Event not found", nil)
		case errors.Is(err, apperrors.ErrCapacityExceeded):
			response.Error(c, http.StatusConflict, "Not enough seats available for the requested tiers", nil)
		case errors.Is(err, apperrors.ErrRequesterResolution):
			response.Error(c, http.StatusInternalServerError, "Unable to resolve requester", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create reservation", nil)
		}
		return
	}

	// 201 also on idempotent replay: the echoed state is the
	// reservation's current one, which payment or expiry may already
	// have advanced.
	response.Success(c, http.StatusCreated, "Reservation accepted", reservation)
}

func (ctrl *controller) GetReservation(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid reservation ID", err.Error())
		return
	}

	reservation, err := ctrl.service.GetReservation(c.Request.Context(), reservationID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.Error(c, http.StatusNotFound, "Reservation not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve reservation", nil)
		return
	}

	response.Success(c, http.StatusOK, "Reservation retrieved successfully", reservation)
}

func (ctrl *controller) GetRequesterHistory(c *gin.Context) {
	requesterID, err := uuid.Parse(c.Param("requesterId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid requester ID", err.Error())
		return
	}

	var query HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	history, err := ctrl.service.History(c.Request.Context(), requesterID, query)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "Invalid cursor", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve history", nil)
		return
	}

	response.Success(c, http.StatusOK, "History retrieved successfully", history)
}
