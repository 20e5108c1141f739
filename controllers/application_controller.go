package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/middleware"
	"github.com/bhavesh4825f/project/models"
	"github.com/bhavesh4825f/project/utils"
)

// ApplicationController handles the application lifecycle from
// submission to document delivery.
type ApplicationController struct {
	DB *mongo.Client
}

func NewApplicationController(db *mongo.Client) *ApplicationController {
	return &ApplicationController{DB: db}
}

// Submit creates an application from the multipart form. When a
// serviceId is posted, form values and uploads are validated against
// that service's declared schema; without one the legacy path accepts
// any fields under a free-form type name.
func (ac *ApplicationController) Submit(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid form data",
		})
	}

	serviceIDHex, applicationType, formValues := parseSubmissionForm(form)
	if serviceIDHex == "" && applicationType == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Application type or service ID is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	application := models.Application{
		UserID:        userID,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		SubmittedAt:   time.Now(),
		Version:       0,
	}

	var service *models.Service
	if serviceIDHex != "" {
		serviceID, err := primitive.ObjectIDFromHex(serviceIDHex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid service ID",
			})
		}

		var svc models.Service
		err = config.GetCollection(ac.DB, "services").FindOne(ctx, bson.M{"_id": serviceID}).Decode(&svc)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, models.Response{
					Success: false,
					Message: "Service not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Message: "Server error while submitting application",
				Error:   errorDetail(err),
			})
		}
		if status, message := submissionServiceGuard(&svc); status != 0 {
			return c.JSON(status, models.Response{
				Success: false,
				Message: message,
			})
		}
		service = &svc
		application.ServiceID = &svc.ID
		application.ApplicationType = svc.Name

		validated, err := utils.ValidateFormData(svc.FormFields, formValues)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		application.ApplicationData = validated

		uploaded := make(map[string]*utils.UploadedDocument)
		for field, files := range form.File {
			if len(files) > 0 {
				uploaded[field] = &utils.UploadedDocument{
					OriginalName: files[0].Filename,
					SizeBytes:    files[0].Size,
				}
			}
		}
		if err := utils.ValidateDocuments(svc.RequiredDocuments, uploaded); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
	} else {
		application.ApplicationType = applicationType
		application.ApplicationData = formValues
	}

	// Validation passed for every slot, store the files
	documents := make(map[string]string)
	for field, files := range form.File {
		if len(files) == 0 {
			continue
		}
		maxSize := 0
		if service != nil {
			for _, doc := range service.RequiredDocuments {
				if doc.FieldName == field {
					maxSize = doc.MaxSize
				}
			}
		}
		filename, err := utils.SaveUploadedFile(files[0], maxSize)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		documents[field] = filename
	}
	application.Documents = documents

	result, err := config.GetCollection(ac.DB, "applications").InsertOne(ctx, application)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while submitting application",
			Error:   errorDetail(err),
		})
	}
	application.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Application submitted successfully",
		Data:    application,
	})
}

// MyApplications lists the caller's own applications, newest first
func (ac *ApplicationController) MyApplications(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := config.GetCollection(ac.DB, "applications").Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching applications",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var applications []models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching applications",
			Error:   errorDetail(err),
		})
	}

	views := make([]models.ApplicationView, 0, len(applications))
	for _, app := range applications {
		views = append(views, ac.buildView(ctx, app))
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    views,
	})
}

// GetAll lists every application for the admin with applicant names
// resolved, optionally filtered by status.
func (ac *ApplicationController) GetAll(c echo.Context) error {
	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		if !models.ApplicationStatuses[status] {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid application status",
			})
		}
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := config.GetCollection(ac.DB, "applications").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching applications",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var applications []models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching applications",
			Error:   errorDetail(err),
		})
	}

	views := make([]models.ApplicationView, 0, len(applications))
	for _, app := range applications {
		views = append(views, ac.buildView(ctx, app))
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    views,
	})
}

// GetDetails returns one application. Citizens may only read their
// own; admins may read any.
func (ac *ApplicationController) GetDetails(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid application ID",
		})
	}

	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var application models.Application
	err = config.GetCollection(ac.DB, "applications").FindOne(ctx, bson.M{"_id": objectID}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Application not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching application",
			Error:   errorDetail(err),
		})
	}

	if middleware.ExtractUserRole(c) != "admin" && application.UserID != userID {
		return c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Access denied",
		})
	}

	view := ac.buildView(ctx, application)
	if application.ServiceID != nil {
		var service models.Service
		err := config.GetCollection(ac.DB, "services").
			FindOne(ctx, bson.M{"_id": *application.ServiceID}).Decode(&service)
		if err == nil {
			view.ServiceDisplayName = service.DisplayName
			view.ServicePricing = &service.Pricing
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    view,
	})
}

// UpdateStatus applies an admin status transition. The request carries
// the version the admin read; a mismatched version means someone else
// already changed the application and the write is rejected.
func (ac *ApplicationController) UpdateStatus(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid application ID",
		})
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if !models.ApplicationStatuses[req.Status] {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid application status",
		})
	}

	adminID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	applications := config.GetCollection(ac.DB, "applications")

	filter := bson.M{"_id": objectID}
	if req.Version != nil {
		filter["version"] = *req.Version
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":      req.Status,
			"remarks":     req.Remarks,
			"processedAt": now,
			"processedBy": adminID,
		},
		"$inc": bson.M{"version": 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var application models.Application
	err = applications.FindOneAndUpdate(ctx, filter, update, opts).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish a missing application from a stale version
			count, countErr := applications.CountDocuments(ctx, bson.M{"_id": objectID})
			if countErr == nil && count > 0 {
				return c.JSON(http.StatusConflict, models.Response{
					Success: false,
					Message: "Application was modified by someone else. Please refresh and try again.",
				})
			}
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Application not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while updating application status",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Application status updated successfully",
		Data:    ac.buildView(ctx, application),
	})
}

// GetApproved lists the delivery queue: approved applications whose
// document has not been sent yet.
func (ac *ApplicationController) GetApproved(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	filter := bson.M{
		"status":       models.StatusApproved,
		"documentSent": bson.M{"$ne": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "processedAt", Value: 1}})
	cursor, err := config.GetCollection(ac.DB, "applications").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching approved applications",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var applications []models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching approved applications",
			Error:   errorDetail(err),
		})
	}

	views := make([]models.ApplicationView, 0, len(applications))
	for _, app := range applications {
		views = append(views, ac.buildView(ctx, app))
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    views,
	})
}

// SendDocument attaches the final document to an approved application
// and marks it delivered. The guard lives here, not in the client: the
// application must be approved and not yet delivered.
func (ac *ApplicationController) SendDocument(c echo.Context) error {
	adminID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	delivery := parseDeliveryForm(c)
	applicationID, err := primitive.ObjectIDFromHex(delivery.applicationID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid application ID",
		})
	}
	if !models.DeliveryMethods[delivery.method] {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid delivery method",
		})
	}

	file, err := c.FormFile("document")
	if err != nil || file == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Document file is required",
		})
	}
	if err := utils.ValidateDocumentType(file.Filename, nil); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	applications := config.GetCollection(ac.DB, "applications")

	var application models.Application
	err = applications.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&application)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Application not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while sending document",
			Error:   errorDetail(err),
		})
	}

	if message := deliveryGuard(&application); message != "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: message,
		})
	}

	filename, err := utils.SaveUploadedFile(file, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to save document",
			Error:   errorDetail(err),
		})
	}

	now := time.Now()
	adminName := findUsername(ctx, ac.DB, adminID)

	// Guard repeated in the filter so two admins cannot both deliver
	result, err := applications.UpdateOne(ctx,
		bson.M{
			"_id":          applicationID,
			"status":       models.StatusApproved,
			"documentSent": bson.M{"$ne": true},
		},
		bson.M{
			"$set": bson.M{
				"documentSent":         true,
				"documentPath":         filename,
				"documentSentAt":       now,
				"documentSentBy":       adminName,
				"documentSendingNotes": delivery.notes,
				"deliveryMethod":       delivery.method,
				"sentBy":               adminID,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while sending document",
			Error:   errorDetail(err),
		})
	}
	if result.ModifiedCount == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Document has already been sent for this application",
		})
	}

	// Notification is best-effort; a mail failure never undoes delivery
	message := "Document sent successfully"
	if delivery.method == "email" {
		if owner, err := findUser(ctx, ac.DB, application.UserID); err == nil {
			if err := utils.SendDocumentDeliveryEmail(owner.Email, owner.Username, application.ApplicationType, delivery.notes); err != nil {
				c.Logger().Errorf("delivery email to %s failed: %v", owner.Email, err)
				message = "Document sent successfully, but the notification email could not be delivered"
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
	})
}

// MyDocuments lists the documents delivered to the caller
func (ac *ApplicationController) MyDocuments(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	filter := bson.M{"userId": userID, "documentSent": true}
	opts := options.Find().SetSort(bson.D{{Key: "documentSentAt", Value: -1}})
	cursor, err := config.GetCollection(ac.DB, "applications").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching documents",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var applications []models.Application
	if err := cursor.All(ctx, &applications); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching documents",
			Error:   errorDetail(err),
		})
	}

	documents := make([]models.DeliveredDocument, 0, len(applications))
	for _, app := range applications {
		documents = append(documents, models.DeliveredDocument{
			ID:           app.ID,
			ServiceType:  app.ApplicationType,
			DocumentPath: app.DocumentPath,
			SentAt:       app.DocumentSentAt,
			FileName:     originalFilename(app.DocumentPath),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    documents,
	})
}

// Delete removes an application. The payment ledger keeps its rows;
// only the application record goes away.
func (ac *ApplicationController) Delete(c echo.Context) error {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid application ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := config.GetCollection(ac.DB, "applications").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while deleting application",
			Error:   errorDetail(err),
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Application not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Application deleted successfully",
	})
}

func (ac *ApplicationController) buildView(ctx context.Context, app models.Application) models.ApplicationView {
	view := models.ApplicationView{Application: app}
	if owner, err := findUser(ctx, ac.DB, app.UserID); err == nil {
		view.Username = owner.Username
		view.UserEmail = owner.Email
	}
	if app.ProcessedBy != nil {
		view.ProcessedByName = findUsername(ctx, ac.DB, *app.ProcessedBy)
	}
	return view
}

// originalFilename strips the timestamp prefix added at storage time
func originalFilename(stored string) string {
	if idx := strings.Index(stored, "_"); idx >= 0 {
		return stored[idx+1:]
	}
	return stored
}

// parseSubmissionForm splits the multipart submission into its routing
// fields and the citizen's answers. Legacy clients post applicationType;
// schema-backed clients post serviceId. Neither key belongs in the
// stored application data.
func parseSubmissionForm(form *multipart.Form) (serviceIDHex, applicationType string, values map[string]string) {
	values = make(map[string]string)
	for key, fieldValues := range form.Value {
		if len(fieldValues) == 0 {
			continue
		}
		switch key {
		case "serviceId":
			serviceIDHex = fieldValues[0]
		case "applicationType":
			applicationType = fieldValues[0]
		default:
			values[key] = fieldValues[0]
		}
	}
	return serviceIDHex, applicationType, values
}

// submissionServiceGuard reports why a resolved service cannot accept
// a new application, or zero when it can.
func submissionServiceGuard(svc *models.Service) (int, string) {
	if !svc.IsActive {
		return http.StatusBadRequest, "Service is not active"
	}
	return 0, ""
}

type deliveryForm struct {
	applicationID string
	method        string
	notes         string
}

func parseDeliveryForm(c echo.Context) deliveryForm {
	method := c.FormValue("deliveryMethod")
	if method == "" {
		method = "email"
	}
	return deliveryForm{
		applicationID: c.FormValue("applicationId"),
		method:        method,
		notes:         c.FormValue("sendingNotes"),
	}
}

// deliveryGuard reports why a document cannot be sent for the
// application, or empty when delivery is allowed. Only approved,
// not-yet-delivered applications pass.
func deliveryGuard(app *models.Application) string {
	if app.Status != models.StatusApproved {
		return "Documents can only be sent for approved applications"
	}
	if app.DocumentSent {
		return "Document has already been sent for this application"
	}
	return ""
}
