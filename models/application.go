// models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. Every transition is an explicit admin action;
// delivery is an orthogonal flag that only flips false -> true while
// the status is approved.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

var ApplicationStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusApproved:   true,
	StatusRejected:   true,
}

// Payment statuses carried on the application
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

var DeliveryMethods = map[string]bool{
	"email":   true,
	"portal":  true,
	"pickup":  true,
	"courier": true,
}

// Application is a citizen's request for one government service
type Application struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID  `json:"userId" bson:"userId"`
	ApplicationType string              `json:"applicationType" bson:"applicationType"`
	ServiceID       *primitive.ObjectID `json:"serviceId,omitempty" bson:"serviceId,omitempty"`
	Status          string              `json:"status" bson:"status"`
	Documents       map[string]string   `json:"documents" bson:"documents"`
	ApplicationData map[string]string   `json:"applicationData" bson:"applicationData"`
	PaymentStatus   string              `json:"paymentStatus" bson:"paymentStatus"`
	PaymentID       *primitive.ObjectID `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	TransactionID   string              `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	SubmittedAt     time.Time           `json:"submittedAt" bson:"submittedAt"`
	ProcessedAt     *time.Time          `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
	ProcessedBy     *primitive.ObjectID `json:"processedBy,omitempty" bson:"processedBy,omitempty"`
	Remarks         string              `json:"remarks,omitempty" bson:"remarks,omitempty"`

	DocumentSent         bool                `json:"documentSent" bson:"documentSent"`
	DocumentPath         string              `json:"documentPath,omitempty" bson:"documentPath,omitempty"`
	DocumentSentAt       *time.Time          `json:"documentSentAt,omitempty" bson:"documentSentAt,omitempty"`
	DocumentSentBy       string              `json:"documentSentBy,omitempty" bson:"documentSentBy,omitempty"`
	DocumentSendingNotes string              `json:"documentSendingNotes,omitempty" bson:"documentSendingNotes,omitempty"`
	DeliveryMethod       string              `json:"deliveryMethod,omitempty" bson:"deliveryMethod,omitempty"`
	SentBy               *primitive.ObjectID `json:"sentBy,omitempty" bson:"sentBy,omitempty"`

	// Optimistic counter. Status transitions must present the version
	// they read; a stale write fails with a conflict.
	Version int `json:"version" bson:"version"`
}

// ApplicationView is an Application with usernames resolved for display.
// The service fields are filled only on the detail read.
type ApplicationView struct {
	Application     `bson:",inline"`
	Username        string `json:"username,omitempty" bson:"-"`
	UserEmail       string `json:"userEmail,omitempty" bson:"-"`
	ProcessedByName string `json:"processedByName,omitempty" bson:"-"`

	ServiceDisplayName string   `json:"serviceDisplayName,omitempty" bson:"-"`
	ServicePricing     *Pricing `json:"servicePricing,omitempty" bson:"-"`
}

// UpdateStatusRequest is the admin payload for a status transition
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Remarks string `json:"remarks"`
	Version *int   `json:"version"`
}

// DeliveredDocument is the projection returned to citizens listing
// documents that have been sent to them.
type DeliveredDocument struct {
	ID           primitive.ObjectID `json:"id"`
	ServiceType  string             `json:"serviceType"`
	DocumentPath string             `json:"documentPath"`
	SentAt       *time.Time         `json:"sentAt,omitempty"`
	FileName     string             `json:"fileName"`
}
