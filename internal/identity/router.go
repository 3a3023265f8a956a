package identity

import "github.com/gin-gonic/gin"

// SetupIdentityRoutes configures the guest identity routes
func SetupIdentityRoutes(rg *gin.RouterGroup, controller Controller) {
	identityGroup := rg.Group("/identity")
	{
		identityGroup.POST("/guest", controller.IssueGuestToken)
		identityGroup.GET("/me", controller.Me)
	}
}
