package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/controllers"
)

func SetupProfileRoutes(protected *gin.RouterGroup, profileController *controllers.ProfileController, validationController *controllers.ValidationController) {
	profiles := protected.Group("/profiles")
	{
		profiles.GET("/:profileId", profileController.GetProfile)
	}

	protected.PUT("/settings", profileController.UpdateSettings)
	protected.DELETE("/account", profileController.DeleteAccount)

	validation := protected.Group("/validation")
	{
		validation.GET("/username/:username", validationController.ValidateUsername)
		validation.GET("/email/:email", validationController.ValidateEmail)
	}
}
