package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/map-mark/api-go/models"
	"github.com/map-mark/api-go/moderation"
	"github.com/map-mark/api-go/storage"
	"github.com/map-mark/api-go/utils"
	"gorm.io/gorm"
)

type PinController struct {
	DB        *gorm.DB
	Blobs     moderation.BlobStore
	PublicURL string
}

type CreatePinRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude" binding:"required"`
	Longitude   float64  `json:"longitude" binding:"required"`
	Location    string   `json:"location"`
	ImgURLs     []string `json:"imgurls" binding:"required,min=1"`
	IsPrivate   bool     `json:"isPrivate"`
}

type UpdatePinRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	ImgURLs     []string `json:"imgurls"`
	IsPrivate   *bool    `json:"isPrivate"`
}

func NewPinController(db *gorm.DB, blobs moderation.BlobStore, publicURL string) *PinController {
	return &PinController{DB: db, Blobs: blobs, PublicURL: publicURL}
}

func (pc *PinController) CreatePin(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.PinStatusPublic
	if req.IsPrivate {
		status = models.PinStatusPrivate
	}

	pin := models.Pin{
		ID:          uuid.New().String(),
		ProfileID:   user.ProfileID,
		Status:      status,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Location:    req.Location,
		ImgURLs:     req.ImgURLs,
	}

	if err := pc.DB.Create(&pin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pin"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    pin,
		Message: "Pin created successfully",
	})
}

func (pc *PinController) GetPin(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var pin models.Pin
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&pin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
		return
	}

	// Private pins are visible to their owner and admins only.
	if pin.Status == models.PinStatusPrivate && pin.ProfileID != user.ProfileID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Pin is private"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: pin})
}

// ListPins returns public pins inside a bounding box, paginated, for
// the shared map view.
func (pc *PinController) ListPins(c *gin.Context) {
	minLat, _ := strconv.ParseFloat(c.DefaultQuery("minLat", "-90"), 64)
	maxLat, _ := strconv.ParseFloat(c.DefaultQuery("maxLat", "90"), 64)
	minLng, _ := strconv.ParseFloat(c.DefaultQuery("minLng", "-180"), 64)
	maxLng, _ := strconv.ParseFloat(c.DefaultQuery("maxLng", "180"), 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	query := pc.DB.Model(&models.Pin{}).
		Where("status = ?", models.PinStatusPublic).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pins"})
		return
	}

	var pins []models.Pin
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&pins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pins"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    pins,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(pageSize))),
		},
	})
}

func (pc *PinController) UpdatePin(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req UpdatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pin models.Pin
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&pin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
		return
	}

	if pin.ProfileID != user.ProfileID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own pins"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.IsPrivate != nil && pin.Status != models.PinStatusReported {
		if *req.IsPrivate {
			updates["status"] = models.PinStatusPrivate
		} else {
			updates["status"] = models.PinStatusPublic
		}
	}

	// Replaced images are removed from the blob store.
	var removedKeys []string
	if len(req.ImgURLs) > 0 {
		updates["img_urls"] = pq.StringArray(req.ImgURLs)
		kept := make(map[string]bool, len(req.ImgURLs))
		for _, u := range req.ImgURLs {
			kept[u] = true
		}
		var dropped []string
		for _, u := range pin.ImgURLs {
			if !kept[u] {
				dropped = append(dropped, u)
			}
		}
		removedKeys = storage.KeysFromURLs(pc.PublicURL, dropped)
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(&pin).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pin"})
			return
		}
	}

	if len(removedKeys) > 0 {
		if err := pc.Blobs.RemoveByKeys(c.Request.Context(), removedKeys); err != nil {
			log.Printf("remove replaced images for pin %s: %v", pin.ID, err)
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: pin, Message: "Pin updated successfully"})
}

// DeletePin removes a pin together with its stored images and every
// report referencing it.
func (pc *PinController) DeletePin(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var pin models.Pin
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&pin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin not found"})
		return
	}

	if pin.ProfileID != user.ProfileID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own pins"})
		return
	}

	if err := pc.DB.Where("reported_pin_id = ?", pin.ID).Delete(&models.Report{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pin reports"})
		return
	}

	if err := pc.Blobs.RemoveByKeys(c.Request.Context(), storage.KeysFromURLs(pc.PublicURL, pin.ImgURLs)); err != nil {
		log.Printf("remove images for pin %s: %v", pin.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pin images"})
		return
	}

	if err := pc.DB.Delete(&pin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pin deleted successfully"})
}
