package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterAdminRoutes sets up admin user management
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client) {
	adminController := controllers.NewAdminController(db)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.GET("/users", adminController.GetUsers)
	admin.POST("/users", adminController.AddUser)
	admin.PUT("/users/:id", adminController.UpdateUser)
	admin.DELETE("/users/:id", adminController.DeleteUser)
}
