package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/map-mark/api-go/storage"
	"github.com/map-mark/api-go/utils"
	"gorm.io/gorm"
)

type UploadController struct {
	DB      *gorm.DB
	Storage *storage.Client
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type MultipleUploadRequest struct {
	Files []PresignedURLRequest `json:"files" binding:"required,dive"`
}

type MultipleUploadResponse struct {
	Files []PresignedURLResponse `json:"files"`
}

func NewUploadController(db *gorm.DB, storageClient *storage.Client) *UploadController {
	return &UploadController{
		DB:      db,
		Storage: storageClient,
	}
}

// GetPresignedURL returns a direct-upload URL for a single pin photo.
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	var req PresignedURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}

	if !isValidImageSize(req.FileSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := generateFileKey(user.ProfileID, req.FileName)

	presignedURL, err := uc.Storage.PresignPut(c.Request.Context(), key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.Storage.Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		},
		Message: "Presigned URL generated successfully",
	})
}

// GetMultiplePresignedURLs returns upload URLs for a batch of pin
// photos in one call.
func (uc *UploadController) GetMultiplePresignedURLs(c *gin.Context) {
	user := utils.GetUser(c)
	var req MultipleUploadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Files) > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 10 files allowed per upload"})
		return
	}

	var responses []PresignedURLResponse

	for _, fileReq := range req.Files {
		if !isValidImageType(fileReq.ContentType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid image type for %s", fileReq.FileName),
			})
			return
		}

		if !isValidImageSize(fileReq.FileSize) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File size exceeds limit for %s", fileReq.FileName),
			})
			return
		}

		key := generateFileKey(user.ProfileID, fileReq.FileName)

		presignedURL, err := uc.Storage.PresignPut(c.Request.Context(), key, fileReq.ContentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload URL for %s", fileReq.FileName),
			})
			return
		}

		responses = append(responses, PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.Storage.Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		})
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    MultipleUploadResponse{Files: responses},
		Message: "Multiple presigned URLs generated successfully",
	})
}

// DeleteFile removes an uploaded object the caller owns.
func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)
	// Wildcard param carries a leading slash.
	key := strings.TrimPrefix(c.Param("key"), "/")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !verifyFileOwnership(key, user.ProfileID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := uc.Storage.RemoveByKeys(c.Request.Context(), []string{key}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

// Helper functions
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
	}

	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}

func isValidImageSize(fileSize int64) bool {
	return fileSize > 0 && fileSize <= 10*1024*1024 // 10MB
}

func generateFileKey(profileID, fileName string) string {
	ext := filepath.Ext(fileName)
	id := uuid.New().String()
	timestamp := time.Now().Unix()

	return fmt.Sprintf("pins/%s/%d_%s%s", profileID, timestamp, id, ext)
}

func verifyFileOwnership(key, profileID string) bool {
	// Key format: pins/{profileID}/{timestamp}_{uuid}.{ext}
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return false
	}

	return parts[1] == profileID
}
