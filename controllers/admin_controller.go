package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/models"
	"github.com/bhavesh4825f/project/utils"
)

// AdminController handles admin-side user management
type AdminController struct {
	DB *mongo.Client
}

func NewAdminController(db *mongo.Client) *AdminController {
	return &AdminController{DB: db}
}

// GetUsers lists users, optionally filtered by a search term over
// username, email and mobile number.
func (ac *AdminController) GetUsers(c echo.Context) error {
	search := c.QueryParam("search")

	filter := bson.M{}
	if search != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"username": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"mno": bson.M{"$regex": search, "$options": "i"}},
		}}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := config.GetCollection(ac.DB, "users").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    users,
	})
}

// AddUser creates a user with an admin-chosen role
func (ac *AdminController) AddUser(c echo.Context) error {
	var req models.CreateUserRequest
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

	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := req.Role
	if role == "" {
		role = "user"
	}

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
			Message: "User already exists",
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
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "User already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User added successfully",
		Data:    user,
	})
}

// UpdateUser edits a user's identity fields and role
func (ac *AdminController) UpdateUser(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	updateData := bson.M{}
	if req.Username != "" {
		updateData["username"] = req.Username
	}
	if req.Email != "" {
		updateData["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Mno != "" {
		updateData["mno"] = req.Mno
	}
	if req.Role != "" {
		updateData["role"] = req.Role
	}
	if len(updateData) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "No fields to update",
		})
	}
	updateData["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	users := config.GetCollection(ac.DB, "users")
	result, err := users.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": updateData})
	if err != nil {
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
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	user, err := findUser(ctx, ac.DB, objectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "User updated but failed to retrieve updated data",
			Error:   errorDetail(err),
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User updated successfully",
		Data:    user,
	})
}

// DeleteUser removes a user. The delete is refused while applications
// or payments still reference the account, so no references are ever
// orphaned by this path.
func (ac *AdminController) DeleteUser(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	appCount, err := config.GetCollection(ac.DB, "applications").CountDocuments(ctx, bson.M{"userId": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}
	if appCount > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: fmt.Sprintf("Cannot delete user. It has %d applications associated with it.", appCount),
		})
	}

	payCount, err := config.GetCollection(ac.DB, "payments").CountDocuments(ctx, bson.M{"userId": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}
	if payCount > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: fmt.Sprintf("Cannot delete user. It has %d payments associated with it.", payCount),
		})
	}

	result, err := config.GetCollection(ac.DB, "users").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error",
			Error:   errorDetail(err),
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User deleted successfully",
	})
}
