// models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one row of the ledger. Rows are written once on a
// successful attempt and never mutated afterwards.
type Payment struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID            primitive.ObjectID `json:"userId" bson:"userId"`
	ApplicationID     primitive.ObjectID `json:"applicationId" bson:"applicationId"`
	ServiceType       string             `json:"serviceType" bson:"serviceType"`
	ServiceFee        float64            `json:"serviceFee" bson:"serviceFee"`
	ConsultancyCharge float64            `json:"consultancyCharge" bson:"consultancyCharge"`
	TotalAmount       float64            `json:"totalAmount" bson:"totalAmount"`
	TransactionID     string             `json:"transactionId" bson:"transactionId"`
	PaymentStatus     string             `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod     string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentDate       time.Time          `json:"paymentDate" bson:"paymentDate"`
	GatewayResponse   map[string]string  `json:"gatewayResponse,omitempty" bson:"gatewayResponse,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewPayment builds a ledger row from its fee components so the total
// always equals their sum at creation time.
func NewPayment(userID, applicationID primitive.ObjectID, serviceType string, fees Pricing, transactionID string) Payment {
	now := time.Now()
	return Payment{
		UserID:            userID,
		ApplicationID:     applicationID,
		ServiceType:       serviceType,
		ServiceFee:        fees.ServiceFee,
		ConsultancyCharge: fees.ConsultancyCharge,
		TotalAmount:       fees.ServiceFee + fees.ConsultancyCharge,
		TransactionID:     transactionID,
		PaymentStatus:     PaymentCompleted,
		PaymentMethod:     "online",
		PaymentDate:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ProcessPaymentRequest is the citizen payload for the stub payment flow
type ProcessPaymentRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	ServiceType   string `json:"serviceType"`
}

// PaymentView is a ledger row with its application and owner resolved
type PaymentView struct {
	Payment         `bson:",inline"`
	ApplicationType string     `json:"applicationType,omitempty" bson:"-"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty" bson:"-"`
	Username        string     `json:"username,omitempty" bson:"-"`
	UserEmail       string     `json:"userEmail,omitempty" bson:"-"`
}

// FeeStructure is the public fee quote for one service type
type FeeStructure struct {
	ServiceType       string  `json:"serviceType"`
	ServiceFee        float64 `json:"serviceFee"`
	ConsultancyCharge float64 `json:"consultancyCharge"`
	TotalAmount       float64 `json:"totalAmount"`
}

// PaymentReceipt is the summary returned right after processing
type PaymentReceipt struct {
	TransactionID     string    `json:"transactionId"`
	TotalAmount       float64   `json:"totalAmount"`
	ServiceFee        float64   `json:"serviceFee"`
	ConsultancyCharge float64   `json:"consultancyCharge"`
	PaymentDate       time.Time `json:"paymentDate"`
	PaymentStatus     string    `json:"paymentStatus"`
}
