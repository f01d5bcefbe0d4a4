package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/models"
	"github.com/map-mark/api-go/moderation"
	"github.com/map-mark/api-go/storage"
	"github.com/map-mark/api-go/utils"
	"gorm.io/gorm"
)

type ProfileController struct {
	DB        *gorm.DB
	Blobs     moderation.BlobStore
	PublicURL string
}

type UpdateSettingsRequest struct {
	Language          string `json:"language"`
	MapRadiusKm       *int   `json:"map_radius_km"`
	NotificationsOn   *bool  `json:"notifications_on"`
	ShowPinsOnProfile *bool  `json:"show_pins_on_profile"`
}

func NewProfileController(db *gorm.DB, blobs moderation.BlobStore, publicURL string) *ProfileController {
	return &ProfileController{DB: db, Blobs: blobs, PublicURL: publicURL}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	profileID := c.Param("profileId")

	var profile models.Profile
	if err := pc.DB.Preload("Settings").Where("id = ?", profileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	isOwnProfile := user.ProfileID == profile.ID

	if profile.Status == models.StatusBanned && !isOwnProfile && user.Role != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var pinsCount int64
	pc.DB.Model(&models.Pin{}).Where("profile_id = ?", profileID).Count(&pinsCount)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": gin.H{
			"id":       profile.ID,
			"username": profile.Username,
			"avatar":   profile.Avatar,
			"status":   profile.Status,
		},
		"stats":        gin.H{"pinsCount": pinsCount},
		"isOwnProfile": isOwnProfile,
	})
}

func (pc *ProfileController) UpdateSettings(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Language != "" {
		updates["language"] = req.Language
	}
	if req.MapRadiusKm != nil {
		updates["map_radius_km"] = *req.MapRadiusKm
	}
	if req.NotificationsOn != nil {
		updates["notifications_on"] = *req.NotificationsOn
	}
	if req.ShowPinsOnProfile != nil {
		updates["show_pins_on_profile"] = *req.ShowPinsOnProfile
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings to update"})
		return
	}

	if err := pc.DB.Model(&models.Settings{}).
		Where("profile_id = ?", user.ProfileID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated"})
}

// DeleteAccount removes the caller's profile and everything hanging
// off it: settings, refresh tokens, pins with their stored images,
// and every report the profile filed or is targeted by.
func (pc *ProfileController) DeleteAccount(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var profile models.Profile
	if err := pc.DB.Where("id = ?", user.ProfileID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var pins []models.Pin
	if err := pc.DB.Where("profile_id = ?", profile.ID).Find(&pins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pins"})
		return
	}

	pinIDs := make([]string, 0, len(pins))
	var urls []string
	for i := range pins {
		pinIDs = append(pinIDs, pins[i].ID)
		urls = append(urls, pins[i].ImgURLs...)
	}

	if len(pinIDs) > 0 {
		if err := pc.DB.Where("reported_pin_id IN ?", pinIDs).Delete(&models.Report{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
	}
	if err := pc.DB.Where("profile_id = ? OR reported_user_id = ?", profile.ID, profile.ID).
		Delete(&models.Report{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	if err := pc.Blobs.RemoveByKeys(c.Request.Context(), storage.KeysFromURLs(pc.PublicURL, urls)); err != nil {
		log.Printf("remove images for profile %s: %v", profile.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	if err := pc.DB.Where("profile_id = ?", profile.ID).Delete(&models.Pin{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	pc.DB.Where("profile_id = ?", profile.ID).Delete(&models.RefreshToken{})
	pc.DB.Where("profile_id = ?", profile.ID).Delete(&models.Settings{})

	if err := pc.DB.Delete(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}
