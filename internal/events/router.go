package events

import (
	"github.com/gin-gonic/gin"
)

// SetupEventRoutes configures all event catalog and availability routes
func SetupEventRoutes(rg *gin.RouterGroup, controller Controller) {
	events := rg.Group("/events")
	{
		events.POST("", controller.CreateEvent)                        // POST /api/v1/events
		events.GET("", controller.ListEvents)                          // GET  /api/v1/events
		events.GET("/:eventId", controller.GetEvent)                   // GET  /api/v1/events/:eventId
		events.GET("/:eventId/availability", controller.GetAvailability) // GET  /api/v1/events/:eventId/availability
	}
}
