package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/bhavesh4825f/project/cache"
	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/middleware"
	"github.com/bhavesh4825f/project/routes"
	"github.com/bhavesh4825f/project/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (optional, catalog caching only)
	redisClient := config.ConnectRedis()
	defer config.CloseRedis()

	// Connect to database and seed the admin account and default catalog
	client := config.ConnectDB()
	config.InitDatabase(client)

	// Storage directory for uploaded documents
	if err := utils.InitializeStorage(); err != nil {
		log.Fatal("Failed to initialize upload storage:", err)
	}

	svcCache := cache.NewServiceCache(redisClient)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  true,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Government Service Portal API is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Uploaded documents are served statically
	e.Static("/uploads", "uploads")

	// Register routes
	routes.RegisterAuthRoutes(e, client)
	routes.RegisterProfileRoutes(e, client)
	routes.RegisterAdminRoutes(e, client)
	routes.RegisterServiceRoutes(e, client, svcCache)
	routes.RegisterApplicationRoutes(e, client)
	routes.RegisterPaymentRoutes(e, client)
	routes.RegisterContactRoutes(e, client)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
