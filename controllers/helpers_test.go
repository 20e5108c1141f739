package controllers

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhavesh4825f/project/models"
)

func TestErrorDetailHiddenOutsideDevelopment(t *testing.T) {
	err := errors.New("connection refused")

	t.Setenv("ENV", "production")
	require.Empty(t, errorDetail(err))

	t.Setenv("ENV", "development")
	require.Equal(t, "connection refused", errorDetail(err))

	require.Empty(t, errorDetail(nil))
}

func TestOriginalFilenameStripsStoragePrefix(t *testing.T) {
	require.Equal(t, "pan_card.pdf", originalFilename("1700000000000_pan_card.pdf"))
	require.Equal(t, "plain.pdf", originalFilename("plain.pdf"))
}

func TestNewTransactionIDFormat(t *testing.T) {
	id := newTransactionID()
	require.Regexp(t, regexp.MustCompile(`^TXN\d{16}$`), id)
}

func TestResolveFeesFallsBackByType(t *testing.T) {
	pc := &PaymentController{}

	fees, ok := pc.resolveFees(nil, &models.Application{ApplicationType: "PAN Card"})
	require.True(t, ok)
	require.Equal(t, 100.0, fees.ServiceFee)
	require.Equal(t, 20.0, fees.ConsultancyCharge)

	_, ok = pc.resolveFees(nil, &models.Application{ApplicationType: "Unheard Of Service"})
	require.False(t, ok)
}

func TestValidateSchemas(t *testing.T) {
	fields := []models.FormField{
		{FieldName: "fullName", DisplayName: "Full Name", FieldType: "text"},
	}
	docs := []models.RequiredDocument{
		{FieldName: "idProof", DisplayName: "ID Proof"},
	}
	require.NoError(t, validateSchemas(fields, docs))

	bad := []models.FormField{
		{FieldName: "gender", DisplayName: "Gender", FieldType: "select"},
	}
	require.Error(t, validateSchemas(bad, nil))

	dup := []models.FormField{
		{FieldName: "fullName", DisplayName: "Full Name", FieldType: "text"},
		{FieldName: "fullName", DisplayName: "Name Again", FieldType: "text"},
	}
	require.Error(t, validateSchemas(dup, nil))

	unknown := []models.FormField{
		{FieldName: "x", DisplayName: "X", FieldType: "checkbox"},
	}
	require.Error(t, validateSchemas(unknown, nil))
}
