package routes

import (
	"github.com/delirium95/meduzzen/internal/handlers"
	"github.com/delirium95/meduzzen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
}
