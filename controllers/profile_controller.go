package controllers

import (
	"context"
	"net/http"
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

// ProfileController handles self-service profile operations
type ProfileController struct {
	DB *mongo.Client
}

func NewProfileController(db *mongo.Client) *ProfileController {
	return &ProfileController{DB: db}
}

// GetProfile returns the caller's record
func (pc *ProfileController) GetProfile(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := findUser(ctx, pc.DB, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching profile",
			Error:   errorDetail(err),
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    user,
	})
}

// UpdateProfile applies the multipart profile form: optional name,
// mobile, address, birthdate and a photo upload.
func (pc *ProfileController) UpdateProfile(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	updateData := bson.M{}
	if name := c.FormValue("name"); name != "" {
		updateData["username"] = name
	}
	if mobile := c.FormValue("mobile"); mobile != "" {
		updateData["mno"] = mobile
	}
	if address := c.FormValue("address"); address != "" {
		updateData["address"] = address
	}
	if birthdate := c.FormValue("birthdate"); birthdate != "" {
		updateData["birthdate"] = birthdate
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		if err := utils.ValidateDocumentType(file.Filename, []string{".jpg", ".jpeg", ".png"}); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		filename, err := utils.SaveUploadedFile(file, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Failed to save photo",
				Error:   errorDetail(err),
			})
		}
		updateData["photo"] = filename
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

	users := config.GetCollection(pc.DB, "users")
	result, err := users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": updateData})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while updating profile",
			Error:   errorDetail(err),
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	user, err := findUser(ctx, pc.DB, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Profile updated but failed to retrieve updated data",
			Error:   errorDetail(err),
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully!",
		Data:    user,
	})
}

// ChangePassword verifies the old password before storing a new hash
func (pc *ProfileController) ChangePassword(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Old and new passwords are required",
			Error:   errorDetail(err),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	user, err := findUser(ctx, pc.DB, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while changing password",
			Error:   errorDetail(err),
		})
	}

	if !utils.CheckPassword(user.Password, req.OldPassword) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Old password incorrect",
		})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while changing password",
			Error:   errorDetail(err),
		})
	}

	_, err = config.GetCollection(pc.DB, "users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while changing password",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password changed successfully!",
	})
}
