package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterAuthRoutes sets up registration and login
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client) {
	authController := controllers.NewAuthController(db)

	auth := e.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)

	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/profile", authController.GetProfile)
}
