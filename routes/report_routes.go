package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/controllers"
	"github.com/map-mark/api-go/middleware"
)

// SetupReportRoutes mounts the moderation surface. The whole group
// sits behind the x-api-key gate, checked before any role lookup.
func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController, apiKey string) {
	reports := protected.Group("/reports")
	reports.Use(middleware.APIKeyMiddleware(apiKey))
	{
		reports.GET("/all/:adminId", reportController.ListReports)
		reports.POST("/seen/:profileId", reportController.SeenWarning)
		reports.POST("/:profileId", reportController.SubmitReport)
		reports.POST("/:profileId/:reportId", reportController.ApplyAction)
	}
}
