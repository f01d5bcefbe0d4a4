package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/presigned-url", uploadController.GetPresignedURL)
		uploads.POST("/presigned-urls", uploadController.GetMultiplePresignedURLs)
		// Catch-all so keys with slashes (pins/{profileId}/...) resolve.
		uploads.DELETE("/*key", uploadController.DeleteFile)
	}
}
