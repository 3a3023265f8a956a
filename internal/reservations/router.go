package reservations

import (
	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes configures the reservation write path and the
// requester-facing read paths
func SetupReservationRoutes(rg *gin.RouterGroup, controller Controller) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", controller.CreateReservation)           // POST /api/v1/reservations
		reservations.GET("/:reservationId", controller.GetReservation) // GET  /api/v1/reservations/:reservationId
	}

	requesters := rg.Group("/requesters")
	{
		requesters.GET("/:requesterId/reservations", controller.GetRequesterHistory) // GET /api/v1/requesters/:requesterId/reservations
	}
}
