package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/controllers"
	"github.com/bhavesh4825f/project/middleware"
)

// RegisterPaymentRoutes sets up the payment ledger routes
func RegisterPaymentRoutes(e *echo.Echo, db *mongo.Client) {
	paymentController := controllers.NewPaymentController(db)

	payment := e.Group("/api/payment")

	// Public fee quote for the legacy service types
	payment.GET("/fees/:serviceType", paymentController.GetFees)

	protected := payment.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/process", paymentController.ProcessPayment)
	protected.GET("/history", paymentController.History)
	protected.GET("/transaction/:transactionId", paymentController.GetByTransactionID)

	admin := payment.Group("/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())
	admin.GET("/history", paymentController.AdminHistory)
}
