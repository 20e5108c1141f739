package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterContactRoutes sets up the contact form and admin inbox
func RegisterContactRoutes(e *echo.Echo, db *mongo.Client) {
	contactController := controllers.NewContactController(db)

	contact := e.Group("/api/contact")
	contact.POST("/submit", contactController.Submit)

	admin := contact.Group("/queries")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())
	admin.GET("", contactController.Queries)
	admin.PATCH("/:id", contactController.Update)
	admin.DELETE("/:id", contactController.Delete)
}
