package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/middleware"
	"github.com/bhavesh4825f/project/models"
	"github.com/bhavesh4825f/project/utils"
)

// AuthController contains registration and login logic
type AuthController struct {
	DB *mongo.Client
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{DB: db}
}

// Register creates a citizen account. Emails are globally unique and
// the password is stored only as a bcrypt hash.
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Username, email, mobile number and password are required",
			Error:   errorDetail(err),
		})
	}

	if req.Password != req.CPassword {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Passwords do not match!",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	users := config.GetCollection(ac.DB, "users")

	count, err := users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email already exists",
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}

	now := time.Now()
	user := models.User{
		Username:  req.Username,
		Email:     email,
		Mno:       req.Mno,
		Password:  hashed,
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		// The unique index races with the duplicate check above
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Email already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Registration successful! Please login.",
	})
}

// Login verifies credentials and issues a signed token. The failure
// message never reveals whether the email or the password was wrong.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var user models.User
	err := config.GetCollection(ac.DB, "users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid Email or Password!",
		})
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid Email or Password!",
		})
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Token:   token,
		User:    user,
	})
}

// GetProfile returns the caller's own record, password stripped
func (ac *AuthController) GetProfile(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := findUser(ctx, ac.DB, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    user,
	})
}
