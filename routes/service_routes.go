package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/cache"
	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterServiceRoutes sets up the public catalog and its admin side
func RegisterServiceRoutes(e *echo.Echo, db *mongo.Client, svcCache *cache.ServiceCache) {
	serviceController := controllers.NewServiceController(db, svcCache)

	service := e.Group("/api/service")

	// Public catalog
	service.GET("/active", serviceController.GetActiveServices)
	service.GET("/:id", serviceController.GetService)

	// Catalog management
	admin := service.Group("/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())
	admin.GET("/all", serviceController.GetAllServices)
	admin.POST("/create", serviceController.CreateService)
	admin.PUT("/:id", serviceController.UpdateService)
	admin.PATCH("/:id/toggle", serviceController.ToggleService)
	admin.DELETE("/:id", serviceController.DeleteService)
	admin.PATCH("/:id/pricing", serviceController.UpdatePricing)
}
