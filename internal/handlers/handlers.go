package handlers

import (
	"net/http"

	apperrors "github.com/delirium95/meduzzen/pkg/errors"

	"github.com/delirium95/meduzzen/internal/services"
	"github.com/delirium95/meduzzen/internal/storage"
	"github.com/delirium95/meduzzen/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Service instances wired by main (and by tests via Init)
var (
	Members     *services.MembershipService
	Chats       *services.ChatService
	Messages    *services.MessageService
	Attachments *services.AttachmentService
)

// Init constructs the core services against the given database and blob
// store. Must be called before any handler runs.
func Init(db *gorm.DB, store storage.BlobStore, maxFileSize int64, uploadFolder string) {
	Members = services.NewMembershipService(db, logger.Log)
	Chats = services.NewChatService(db, logger.Log, Members)
	Messages = services.NewMessageService(db, logger.Log, Members)
	Attachments = services.NewAttachmentService(db, logger.Log, Members, store, maxFileSize, uploadFolder)
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
