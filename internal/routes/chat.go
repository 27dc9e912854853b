package routes

import (
	"github.com/delirium95/meduzzen/internal/handlers"
	"github.com/delirium95/meduzzen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterChatRoutes(r gin.IRouter) {
	chats := r.Group("/chats")
	chats.Use(middleware.AuthMiddleware())
	{
		chats.POST("", handlers.CreateChat)
		chats.GET("", handlers.GetChats)
		chats.GET("/:chatId/participants", handlers.GetParticipants)
		chats.POST("/:chatId/messages", middleware.MessageRateLimit(), handlers.SendMessage)
		chats.GET("/:chatId/messages", handlers.GetMessages)
	}
}
