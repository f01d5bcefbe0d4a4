package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/controllers"
)

func SetupPinRoutes(protected *gin.RouterGroup, pinController *controllers.PinController) {
	pins := protected.Group("/pins")
	{
		pins.POST("", pinController.CreatePin)
		pins.GET("", pinController.ListPins)
		pins.GET("/:id", pinController.GetPin)
		pins.PUT("/:id", pinController.UpdatePin)
		pins.DELETE("/:id", pinController.DeletePin)
	}
}
