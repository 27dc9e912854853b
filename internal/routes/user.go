package routes

import (
	"github.com/delirium95/meduzzen/internal/handlers"
	"github.com/delirium95/meduzzen/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/users", handlers.GetUsers)
		users.GET("/me", handlers.GetMe)
	}
}
