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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/models"
)

// ContactController handles the public contact form and the admin
// query inbox.
type ContactController struct {
	DB *mongo.Client
}

func NewContactController(db *mongo.Client) *ContactController {
	return &ContactController{DB: db}
}

// Submit records a contact query; no account is required
func (cc *ContactController) Submit(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Name, email and message are required",
			Error:   errorDetail(err),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	query := newContactQuery(req)

	if _, err := config.GetCollection(cc.DB, "contacts").InsertOne(ctx, query); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while submitting query",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Your query has been submitted. We will get back to you soon.",
	})
}

// newContactQuery builds the stored query; an omitted subject defaults
// to "General Inquiry".
func newContactQuery(req models.ContactRequest) models.ContactQuery {
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "General Inquiry"
	}
	return models.ContactQuery{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Subject:     subject,
		Message:     strings.TrimSpace(req.Message),
		Status:      "pending",
		SubmittedAt: time.Now(),
	}
}

// Queries lists the most recent contact queries for the admin, capped
// at 100 rows.
func (cc *ContactController) Queries(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(100)
	cursor, err := config.GetCollection(cc.DB, "contacts").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching queries",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var queries []models.ContactQuery
	if err := cursor.All(ctx, &queries); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching queries",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    queries,
	})
}

// Update marks a query resolved or records the admin's response
func (cc *ContactController) Update(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid query ID",
		})
	}

	var req models.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	updateData := bson.M{}
	if req.Status != "" {
		if req.Status != "pending" && req.Status != "resolved" {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Status must be pending or resolved",
			})
		}
		updateData["status"] = req.Status
	}
	if req.AdminResponse != "" {
		updateData["adminResponse"] = req.AdminResponse
		updateData["respondedAt"] = time.Now()
	}
	if len(updateData) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "No fields to update",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := config.GetCollection(cc.DB, "contacts").UpdateOne(ctx,
		bson.M{"_id": objectID}, bson.M{"$set": updateData})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while updating query",
			Error:   errorDetail(err),
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Query not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Query updated successfully",
	})
}

// Delete removes a contact query
func (cc *ContactController) Delete(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid query ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := config.GetCollection(cc.DB, "contacts").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while deleting query",
			Error:   errorDetail(err),
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Query not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Query deleted successfully",
	})
}
