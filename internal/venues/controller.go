package venues

import (
	"errors"
	"net/http"

	"reserva/internal/shared/apperrors"
	"reserva/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateVenue(c *gin.Context)
	GetVenue(c *gin.Context)
	ListVenues(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateVenue(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	venue, err := ctrl.service.CreateVenue(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "At least one tier must have capacity", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create venue", nil)
		return
	}

	response.Success(c, http.StatusCreated, "Venue created successfully", venue)
}

func (ctrl *controller) GetVenue(c *gin.Context) {
	venueID, err := uuid.Parse(c.Param("venueId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid venue ID", err.Error())
		return
	}

	venue, err := ctrl.service.GetVenue(c.Request.Context(), venueID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.Error(c, http.StatusNotFound, "Venue not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve venue", nil)
		return
	}

	response.Success(c, http.StatusOK, "Venue retrieved successfully", venue)
}

func (ctrl *controller) ListVenues(c *gin.Context) {
	venues, err := ctrl.service.ListVenues(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list venues", nil)
		return
	}

	response.Success(c, http.StatusOK, "Venues retrieved successfully", venues)
}
