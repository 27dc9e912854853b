package routes

import (
	"github.com/delirium95/meduzzen/internal/handlers"
	"github.com/delirium95/meduzzen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.PUT("/:messageId", handlers.EditMessage)
		messages.DELETE("/:messageId", handlers.DeleteMessage)
		messages.POST("/:messageId/files", handlers.UploadAttachment)
	}
}
