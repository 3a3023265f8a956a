package identity

import (
	"errors"
	"net/http"
	"strings"

	"reserva/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	IssueGuestToken(c *gin.Context)
	Me(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) IssueGuestToken(c *gin.Context) {
	token, err := ctrl.service.IssueGuestToken(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to issue guest identity", nil)
		return
	}

	response.Success(c, http.StatusCreated, "Guest identity issued", token)
}

func (ctrl *controller) Me(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Error(c, http.StatusUnauthorized, "Missing bearer token", nil)
		return
	}

	resp, err := ctrl.service.Introspect(c.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUnknownRequester) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to resolve identity", nil)
		return
	}

	response.Success(c, http.StatusOK, "Identity retrieved successfully", resp)
}
