package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhavesh4825f/project/cache"
	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/models"
)

// ServiceController manages the service catalog
type ServiceController struct {
	DB    *mongo.Client
	Cache *cache.ServiceCache
}

func NewServiceController(db *mongo.Client, svcCache *cache.ServiceCache) *ServiceController {
	return &ServiceController{DB: db, Cache: svcCache}
}

// GetActiveServices lists active services for citizens, ordered by
// displayOrder then creation time. An empty catalog returns a fixed
// demo list so the portal always shows something to apply for; the
// response says so explicitly.
func (sc *ServiceController) GetActiveServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if services := sc.Cache.GetActive(ctx); services != nil {
		return c.JSON(http.StatusOK, models.Response{
			Success: true,
			Data:    services,
		})
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "createdAt", Value: 1},
	})
	cursor, err := config.GetCollection(sc.DB, "services").Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching services",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching services",
			Error:   errorDetail(err),
		})
	}

	if len(services) == 0 {
		return c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "Demo services - database not yet initialized",
			Data:    config.DefaultServices(),
		})
	}

	sc.Cache.SetActive(ctx, services)

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    services,
	})
}

// GetService fetches one catalog entry
func (sc *ServiceController) GetService(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var service models.Service
	err = config.GetCollection(sc.DB, "services").FindOne(ctx, bson.M{"_id": objectID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Service not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching service",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    service,
	})
}

// GetAllServices lists every service for the admin with a live
// application count per entry. The count is computed at read time and
// never stored.
func (sc *ServiceController) GetAllServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "createdAt", Value: 1},
	})
	cursor, err := config.GetCollection(sc.DB, "services").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching services",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching services",
			Error:   errorDetail(err),
		})
	}

	applications := config.GetCollection(sc.DB, "applications")
	withStats := make([]models.ServiceWithStats, 0, len(services))
	for _, service := range services {
		count, err := applications.CountDocuments(ctx, bson.M{"serviceId": service.ID})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Server error while fetching services",
				Error:   errorDetail(err),
			})
		}
		withStats = append(withStats, models.ServiceWithStats{
			Service:          service,
			ApplicationCount: count,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    withStats,
	})
}

// CreateService adds a catalog entry; internal names are unique
func (sc *ServiceController) CreateService(c echo.Context) error {
	var req models.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Missing required fields",
			Error:   errorDetail(err),
		})
	}
	if !models.ServiceCategories[req.Category] {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service category",
		})
	}
	if req.Pricing.ServiceFee < 0 || req.Pricing.ConsultancyCharge < 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Fees cannot be negative",
		})
	}
	if err := validateSchemas(req.FormFields, req.RequiredDocuments); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	services := config.GetCollection(sc.DB, "services")

	count, err := services.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while creating service",
			Error:   errorDetail(err),
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Service with this name already exists",
		})
	}

	processingTime := req.ProcessingTime
	if processingTime == "" {
		processingTime = "5-7 working days"
	}
	icon := req.Icon
	if icon == "" {
		icon = "bi-file-earmark"
	}

	now := time.Now()
	service := models.Service{
		Name:              req.Name,
		DisplayName:       req.DisplayName,
		Description:       req.Description,
		Category:          req.Category,
		Pricing:           *req.Pricing,
		RequiredDocuments: req.RequiredDocuments,
		FormFields:        req.FormFields,
		ProcessingTime:    processingTime,
		IsActive:          true,
		Icon:              icon,
		DisplayOrder:      req.DisplayOrder,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	result, err := services.InsertOne(ctx, service)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Service with this name already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while creating service",
			Error:   errorDetail(err),
		})
	}
	service.ID = result.InsertedID.(primitive.ObjectID)

	sc.Cache.Invalidate(ctx)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Service created successfully",
		Data:    service,
	})
}

// UpdateService applies a partial or full edit, re-validated
func (sc *ServiceController) UpdateService(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	var req models.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	updateData := bson.M{}
	if req.Name != "" {
		updateData["name"] = req.Name
	}
	if req.DisplayName != "" {
		updateData["displayName"] = req.DisplayName
	}
	if req.Description != "" {
		updateData["description"] = req.Description
	}
	if req.Category != "" {
		if !models.ServiceCategories[req.Category] {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid service category",
			})
		}
		updateData["category"] = req.Category
	}
	if req.Pricing != nil {
		if req.Pricing.ServiceFee < 0 || req.Pricing.ConsultancyCharge < 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Fees cannot be negative",
			})
		}
		updateData["pricing"] = *req.Pricing
	}
	if req.FormFields != nil || req.RequiredDocuments != nil {
		if err := validateSchemas(req.FormFields, req.RequiredDocuments); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		if req.FormFields != nil {
			updateData["formFields"] = req.FormFields
		}
		if req.RequiredDocuments != nil {
			updateData["requiredDocuments"] = req.RequiredDocuments
		}
	}
	if req.ProcessingTime != "" {
		updateData["processingTime"] = req.ProcessingTime
	}
	if req.Icon != "" {
		updateData["icon"] = req.Icon
	}
	if req.DisplayOrder != 0 {
		updateData["displayOrder"] = req.DisplayOrder
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

	services := config.GetCollection(sc.DB, "services")

	if req.Name != "" {
		count, err := services.CountDocuments(ctx, bson.M{"name": req.Name, "_id": bson.M{"$ne": objectID}})
		if err == nil && count > 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Service with this name already exists",
			})
		}
	}

	result, err := services.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": updateData})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while updating service",
			Error:   errorDetail(err),
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}

	sc.Cache.Invalidate(ctx)

	var service models.Service
	if err := services.FindOne(ctx, bson.M{"_id": objectID}).Decode(&service); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Service updated but failed to retrieve updated data",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service updated successfully",
		Data:    service,
	})
}

// ToggleService flips the active flag; existing applications keep
// referencing the service either way.
func (sc *ServiceController) ToggleService(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	services := config.GetCollection(sc.DB, "services")

	var service models.Service
	err = services.FindOne(ctx, bson.M{"_id": objectID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Service not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while toggling service status",
			Error:   errorDetail(err),
		})
	}

	service.IsActive = !service.IsActive
	service.UpdatedAt = time.Now()

	_, err = services.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"isActive":  service.IsActive,
		"updatedAt": service.UpdatedAt,
	}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while toggling service status",
			Error:   errorDetail(err),
		})
	}

	sc.Cache.Invalidate(ctx)

	message := "Service deactivated successfully"
	if service.IsActive {
		message = "Service activated successfully"
	}
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    service,
	})
}

// DeleteService removes a catalog entry, refused while any
// application still references it.
func (sc *ServiceController) DeleteService(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	applicationCount, err := config.GetCollection(sc.DB, "applications").CountDocuments(ctx, bson.M{"serviceId": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while deleting service",
			Error:   errorDetail(err),
		})
	}
	if applicationCount > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: fmt.Sprintf("Cannot delete service. It has %d applications associated with it.", applicationCount),
		})
	}

	result, err := config.GetCollection(sc.DB, "services").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while deleting service",
			Error:   errorDetail(err),
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}

	sc.Cache.Invalidate(ctx)

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service deleted successfully",
	})
}

// UpdatePricing edits just the two fee fields
func (sc *ServiceController) UpdatePricing(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	var req models.UpdatePricingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if req.ServiceFee == nil || req.ConsultancyCharge == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Both serviceFee and consultancyCharge are required",
		})
	}
	if *req.ServiceFee < 0 || *req.ConsultancyCharge < 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Fees cannot be negative",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	services := config.GetCollection(sc.DB, "services")
	result, err := services.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"pricing.serviceFee":        *req.ServiceFee,
		"pricing.consultancyCharge": *req.ConsultancyCharge,
		"updatedAt":                 time.Now(),
	}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while updating service pricing",
			Error:   errorDetail(err),
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}

	sc.Cache.Invalidate(ctx)

	var service models.Service
	if err := services.FindOne(ctx, bson.M{"_id": objectID}).Decode(&service); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Pricing updated but failed to retrieve updated data",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service pricing updated successfully",
		Data:    service,
	})
}

// validateSchemas sanity-checks the declared form and document schemas
func validateSchemas(fields []models.FormField, docs []models.RequiredDocument) error {
	seen := make(map[string]bool)
	for _, field := range fields {
		if field.FieldName == "" || field.DisplayName == "" {
			return fmt.Errorf("form fields need both fieldName and displayName")
		}
		if !models.FormFieldTypes[field.FieldType] {
			return fmt.Errorf("unknown field type %q for %s", field.FieldType, field.FieldName)
		}
		if field.FieldType == "select" && len(field.Options) == 0 {
			return fmt.Errorf("select field %s needs options", field.FieldName)
		}
		if seen[field.FieldName] {
			return fmt.Errorf("duplicate form field %s", field.FieldName)
		}
		seen[field.FieldName] = true
	}

	seenDocs := make(map[string]bool)
	for _, doc := range docs {
		if doc.FieldName == "" || doc.DisplayName == "" {
			return fmt.Errorf("document descriptors need both fieldName and displayName")
		}
		if seenDocs[doc.FieldName] {
			return fmt.Errorf("duplicate document field %s", doc.FieldName)
		}
		seenDocs[doc.FieldName] = true
	}

	return nil
}
