package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewPaymentTotalEqualsComponentSum(t *testing.T) {
	userID := primitive.NewObjectID()
	applicationID := primitive.NewObjectID()
	fees := Pricing{ServiceFee: 100, ConsultancyCharge: 20}

	payment := NewPayment(userID, applicationID, "PAN Card", fees, "TXN1700000000000123")

	require.Equal(t, 120.0, payment.TotalAmount)
	require.Equal(t, 100.0, payment.ServiceFee)
	require.Equal(t, 20.0, payment.ConsultancyCharge)
	require.Equal(t, PaymentCompleted, payment.PaymentStatus)
	require.Equal(t, "online", payment.PaymentMethod)
	require.Equal(t, userID, payment.UserID)
	require.Equal(t, applicationID, payment.ApplicationID)
}

func TestNewPaymentZeroFees(t *testing.T) {
	payment := NewPayment(primitive.NewObjectID(), primitive.NewObjectID(), "Birth Certificate", Pricing{}, "TXN1700000000000456")
	require.Equal(t, 0.0, payment.TotalAmount)
}
