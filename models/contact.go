// models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactQuery is a citizen message submitted through the contact form
type ContactQuery struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject       string             `json:"subject" bson:"subject"`
	Message       string             `json:"message" bson:"message"`
	Status        string             `json:"status" bson:"status"` // "pending" or "resolved"
	SubmittedAt   time.Time          `json:"submittedAt" bson:"submittedAt"`
	RespondedAt   *time.Time         `json:"respondedAt,omitempty" bson:"respondedAt,omitempty"`
	AdminResponse string             `json:"adminResponse,omitempty" bson:"adminResponse,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

type UpdateContactRequest struct {
	Status        string `json:"status"`
	AdminResponse string `json:"adminResponse"`
}
