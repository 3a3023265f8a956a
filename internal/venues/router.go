package venues

import (
	"github.com/gin-gonic/gin"
)

// SetupVenueRoutes configures all venue catalog routes
func SetupVenueRoutes(rg *gin.RouterGroup, controller Controller) {
	venues := rg.Group("/venues")
	{
		venues.POST("", controller.CreateVenue)       // POST /api/v1/venues
		venues.GET("", controller.ListVenues)         // GET  /api/v1/venues
		venues.GET("/:venueId", controller.GetVenue)  // GET  /api/v1/venues/:venueId
	}
}
