package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterApplicationRoutes sets up the application lifecycle routes
func RegisterApplicationRoutes(e *echo.Echo, db *mongo.Client) {
	applicationController := controllers.NewApplicationController(db)

	application := e.Group("/api/application")
	application.Use(middleware.JWTMiddleware())

	// Citizen side
	application.POST("/submit", applicationController.Submit)
	application.GET("/my-applications", applicationController.MyApplications)
	application.GET("/my-documents", applicationController.MyDocuments)
	application.GET("/details/:id", applicationController.GetDetails)

	// Admin side
	admin := application.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/all", applicationController.GetAll)
	admin.PATCH("/update-status/:id", applicationController.UpdateStatus)
	admin.GET("/approved", applicationController.GetApproved)
	admin.POST("/send-document", applicationController.SendDocument)
	admin.DELETE("/:id", applicationController.Delete)
}
