package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/config"
	"github.com/map-mark/api-go/controllers"
	"github.com/map-mark/api-go/middleware"
	"github.com/map-mark/api-go/moderation"
	"github.com/map-mark/api-go/storage"
	"github.com/map-mark/api-go/store"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, blobs moderation.BlobStore, storageClient *storage.Client, modCfg *config.ModerationConfig, publicURL string) {
	// The gorm store backs every moderation store contract.
	dataStore := store.New(db)
	gate := moderation.NewGate(dataStore)
	submitter := moderation.NewSubmitter(dataStore, dataStore, dataStore, modCfg.ReportThreshold)
	actions := moderation.NewActions(dataStore, dataStore, dataStore, blobs, publicURL, modCfg.ReportThreshold)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	pinController := controllers.NewPinController(db, blobs, publicURL)
	profileController := controllers.NewProfileController(db, blobs, publicURL)
	reportController := controllers.NewReportController(gate, submitter, actions)
	validationController := controllers.NewValidationController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/refresh-token", authController.RefreshToken)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)

		SetupPinRoutes(protected, pinController)
		SetupProfileRoutes(protected, profileController, validationController)
		SetupReportRoutes(protected, reportController, modCfg.APIKey)
		if storageClient != nil {
			uploadController := controllers.NewUploadController(db, storageClient)
			SetupUploadRoutes(protected, uploadController)
		}
	}
}
