package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/models"
	"gorm.io/gorm"
)

type ValidationController struct {
	DB *gorm.DB
}

func NewValidationController(db *gorm.DB) *ValidationController {
	return &ValidationController{DB: db}
}

func (vc *ValidationController) ValidateUsername(c *gin.Context) {
	username := c.Param("username")

	var profile models.Profile
	result := vc.DB.Where("username = ?", username).First(&profile)

	if result.Error == nil {
		c.JSON(http.StatusOK, gin.H{"exists": true})
	} else if result.Error == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"exists": false})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
	}
}

func (vc *ValidationController) ValidateEmail(c *gin.Context) {
	email := c.Param("email")

	var profile models.Profile
	result := vc.DB.Where("email = ?", email).First(&profile)

	if result.Error == nil {
		c.JSON(http.StatusOK, gin.H{"exists": true})
	} else if result.Error == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"exists": false})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
	}
}
