package controllers

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/middleware"
	"github.com/bhavesh4825f/project/models"
)

// fallbackFees covers payments for applications whose service entry no
// longer resolves, keyed by application type.
var fallbackFees = map[string]models.Pricing{
	"PAN Card":           {ServiceFee: 100, ConsultancyCharge: 20},
	"Income Certificate": {ServiceFee: 50, ConsultancyCharge: 20},
	"Caste Certificate":  {ServiceFee: 30, ConsultancyCharge: 20},
	"Birth Certificate":  {ServiceFee: 25, ConsultancyCharge: 20},
}

// PaymentController owns the payment ledger
type PaymentController struct {
	DB *mongo.Client
}

func NewPaymentController(db *mongo.Client) *PaymentController {
	return &PaymentController{DB: db}
}

// ProcessPayment runs the stub gateway flow for one application: the
// fee is derived server-side, the ledger row is written and the
// application is stamped paid in a single transaction.
func (pc *PaymentController) ProcessPayment(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	var req models.ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Application ID is required",
			Error:   errorDetail(err),
		})
	}

	applicationID, err := primitive.ObjectIDFromHex(req.ApplicationID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid application ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	applications := config.GetCollection(pc.DB, "applications")

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
			Message: "Server error while processing payment",
			Error:   errorDetail(err),
		})
	}

	if application.UserID != userID {
		return c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Access denied",
		})
	}
	if application.PaymentStatus == models.PaymentCompleted {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Payment has already been completed for this application",
		})
	}

	fees, ok := pc.resolveFees(ctx, &application)
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Unable to determine the fee for this application type",
		})
	}
	transactionID := newTransactionID()

	payment := models.NewPayment(userID, applicationID, application.ApplicationType, fees, transactionID)
	payment.GatewayResponse = map[string]string{
		"gatewayRef": uuid.NewString(),
		"status":     "success",
		"mode":       "simulated",
	}

	payments := config.GetCollection(pc.DB, "payments")

	// Ledger insert and application update stand or fall together
	session, err := pc.DB.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while processing payment",
			Error:   errorDetail(err),
		})
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		result, err := payments.InsertOne(sessCtx, payment)
		if err != nil {
			return nil, err
		}
		paymentID := result.InsertedID.(primitive.ObjectID)
		payment.ID = paymentID

		_, err = applications.UpdateOne(sessCtx,
			bson.M{"_id": applicationID},
			bson.M{"$set": bson.M{
				"paymentStatus": models.PaymentCompleted,
				"paymentId":     paymentID,
				"transactionId": transactionID,
			}},
		)
		return nil, err
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Payment could not be processed. Please try again.",
			Error:   errorDetail(err),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment processed successfully",
		Data: models.PaymentReceipt{
			TransactionID:     payment.TransactionID,
			TotalAmount:       payment.TotalAmount,
			ServiceFee:        payment.ServiceFee,
			ConsultancyCharge: payment.ConsultancyCharge,
			PaymentDate:       payment.PaymentDate,
			PaymentStatus:     payment.PaymentStatus,
		},
	})
}

// History lists the caller's own ledger rows, newest first
func (pc *PaymentController) History(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Not authorized, no token",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "paymentDate", Value: -1}})
	cursor, err := config.GetCollection(pc.DB, "payments").Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching payment history",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching payment history",
			Error:   errorDetail(err),
		})
	}

	views := make([]models.PaymentView, 0, len(payments))
	for _, payment := range payments {
		view := models.PaymentView{Payment: payment}
		var application models.Application
		err := config.GetCollection(pc.DB, "applications").
			FindOne(ctx, bson.M{"_id": payment.ApplicationID}).Decode(&application)
		if err == nil {
			view.ApplicationType = application.ApplicationType
			view.SubmittedAt = &application.SubmittedAt
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    views,
	})
}

// AdminHistory lists every ledger row with owner and application
// context resolved.
func (pc *PaymentController) AdminHistory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "paymentDate", Value: -1}})
	cursor, err := config.GetCollection(pc.DB, "payments").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching payment history",
			Error:   errorDetail(err),
		})
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching payment history",
			Error:   errorDetail(err),
		})
	}

	views := make([]models.PaymentView, 0, len(payments))
	for _, payment := range payments {
		view := models.PaymentView{Payment: payment}
		if owner, err := findUser(ctx, pc.DB, payment.UserID); err == nil {
			view.Username = owner.Username
			view.UserEmail = owner.Email
		}
		var application models.Application
		err := config.GetCollection(pc.DB, "applications").
			FindOne(ctx, bson.M{"_id": payment.ApplicationID}).Decode(&application)
		if err == nil {
			view.ApplicationType = application.ApplicationType
			view.SubmittedAt = &application.SubmittedAt
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    views,
	})
}

// GetByTransactionID fetches one receipt. Citizens may only read their
// own rows.
func (pc *PaymentController) GetByTransactionID(c echo.Context) error {
	transactionID := c.Param("transactionId")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Transaction ID is required",
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

	var payment models.Payment
	err = config.GetCollection(pc.DB, "payments").FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Success: false,
				Message: "Payment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Server error while fetching payment",
			Error:   errorDetail(err),
		})
	}

	if middleware.ExtractUserRole(c) != "admin" && payment.UserID != userID {
		return c.JSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: "Access denied",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    payment,
	})
}

// GetFees quotes the legacy fee table for one service type so the
// client can show the amount before submission. Schema-backed services
// carry their pricing on the catalog entry instead.
func (pc *PaymentController) GetFees(c echo.Context) error {
	serviceType := c.Param("serviceType")
	fees, ok := fallbackFees[serviceType]
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service type",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data: models.FeeStructure{
			ServiceType:       serviceType,
			ServiceFee:        fees.ServiceFee,
			ConsultancyCharge: fees.ConsultancyCharge,
			TotalAmount:       fees.ServiceFee + fees.ConsultancyCharge,
		},
	})
}

// resolveFees reads the fee from the service entry when the
// application still points at one, falling back to the fixed table
// keyed by application type.
func (pc *PaymentController) resolveFees(ctx context.Context, application *models.Application) (models.Pricing, bool) {
	if application.ServiceID != nil {
		var service models.Service
		err := config.GetCollection(pc.DB, "services").
			FindOne(ctx, bson.M{"_id": *application.ServiceID}).Decode(&service)
		if err == nil {
			return service.Pricing, true
		}
	}
	fees, ok := fallbackFees[application.ApplicationType]
	return fees, ok
}

func newTransactionID() string {
	return fmt.Sprintf("TXN%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
