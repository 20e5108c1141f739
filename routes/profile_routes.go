package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterProfileRoutes sets up self-service profile routes
func RegisterProfileRoutes(e *echo.Echo, db *mongo.Client) {
	profileController := controllers.NewProfileController(db)

	profile := e.Group("/api/profile")
	profile.Use(middleware.JWTMiddleware())
	profile.GET("", profileController.GetProfile)
	profile.POST("/update", profileController.UpdateProfile)
	profile.POST("/change-password", profileController.ChangePassword)
}
