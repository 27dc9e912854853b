package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// EditMessage updates the content of the caller's own message
func EditMessage(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	messageId := c.Param("messageId")

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message, err := Messages.Edit(c.Request.Context(), messageId, userId, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// DeleteMessage soft-deletes the caller's own message
func DeleteMessage(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	messageId := c.Param("messageId")

	if err := Messages.SoftDelete(c.Request.Context(), messageId, userId); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
