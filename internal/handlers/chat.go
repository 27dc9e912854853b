package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/delirium95/meduzzen/internal/database"
	"github.com/delirium95/meduzzen/internal/models"
	"github.com/delirium95/meduzzen/pkg/logger"
	"github.com/gin-gonic/gin"
)

// CreateChat resolves or creates the private chat between the current user
// and the recipient
func CreateChat(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var req struct {
		RecipientID string `json:"recipientId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	chat, err := Chats.GetOrCreatePrivateChat(c.Request.Context(), userId, req.RecipientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// GetChats lists the current user's private chats
func GetChats(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	chats, err := Chats.ListUserChats(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetParticipants lists the members of a chat the current user belongs to
func GetParticipants(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	chatId := c.Param("chatId")

	member, err := Members.IsMember(c.Request.Context(), chatId, userId)
	if err != nil {
		respondError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this chat"})
		return
	}

	participants, err := Chats.ListParticipants(c.Request.Context(), chatId)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

// SendMessage posts a message to a chat
func SendMessage(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	chatId := c.Param("chatId")

	// Per-user send limit on top of the per-IP middleware limiter
	allowed, err := database.CheckRateLimit("send:"+userId, 30, time.Minute)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userId).Msg("Rate limit check failed")
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "You're sending messages too fast. Please slow down."})
		return
	}

	var req struct {
		Content     string             `json:"content" binding:"required"`
		MessageType models.MessageType `json:"messageType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message, err := Messages.Send(c.Request.Context(), chatId, userId, req.Content, req.MessageType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// GetMessages returns a page of a chat's messages, newest first
func GetMessages(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	chatId := c.Param("chatId")

	member, err := Members.IsMember(c.Request.Context(), chatId, userId)
	if err != nil {
		respondError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this chat"})
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := Messages.ListMessages(c.Request.Context(), chatId, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
