package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures the settlement routes
func SetupPaymentRoutes(rg *gin.RouterGroup, controller Controller) {
	paymentsGroup := rg.Group("/payments")
	{
		paymentsGroup.POST("", controller.Settle)                       // POST /api/v1/payments
		paymentsGroup.GET("/:reservationId", controller.GetSettlement)  // GET  /api/v1/payments/:reservationId
	}
}
