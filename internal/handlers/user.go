package handlers

import (
	"net/http"

	"github.com/delirium95/meduzzen/internal/database"
	"github.com/delirium95/meduzzen/internal/models"
	"github.com/gin-gonic/gin"
)

// GetUsers returns every user except the caller, for picking a chat partner
func GetUsers(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var users []models.User
	if err := database.DB.Where("id != ?", userId).Order("username ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetMe returns the current user's profile
func GetMe(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
