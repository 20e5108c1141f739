package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhavesh4825f/project/models"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestValidateFormDataRequiredField(t *testing.T) {
	fields := []models.FormField{
		{FieldName: "fullName", DisplayName: "Full Name", FieldType: "text", Required: true},
	}

	_, err := ValidateFormData(fields, map[string]string{})
	require.EqualError(t, err, "Full Name is required")

	_, err = ValidateFormData(fields, map[string]string{"fullName": "   "})
	require.EqualError(t, err, "Full Name is required")

	validated, err := ValidateFormData(fields, map[string]string{"fullName": "  Asha Patel "})
	require.NoError(t, err)
	require.Equal(t, "Asha Patel", validated["fullName"])
}

func TestValidateFormDataDropsUnknownFields(t *testing.T) {
	fields := []models.FormField{
		{FieldName: "fullName", DisplayName: "Full Name", FieldType: "text"},
	}

	validated, err := ValidateFormData(fields, map[string]string{
		"fullName": "Asha",
		"isAdmin":  "true",
	})
	require.NoError(t, err)
	require.NotContains(t, validated, "isAdmin")
}

func TestValidateFormDataFieldTypes(t *testing.T) {
	fields := []models.FormField{
		{FieldName: "email", DisplayName: "Email", FieldType: "email"},
		{FieldName: "phone", DisplayName: "Phone", FieldType: "tel"},
		{FieldName: "dob", DisplayName: "Date of Birth", FieldType: "date"},
		{FieldName: "income", DisplayName: "Annual Income", FieldType: "number",
			Validation: &models.FieldValidation{Min: floatPtr(0), Max: floatPtr(1000000)}},
		{FieldName: "gender", DisplayName: "Gender", FieldType: "select",
			Options: []string{"male", "female", "other"}},
	}

	_, err := ValidateFormData(fields, map[string]string{"email": "not-an-email"})
	require.EqualError(t, err, "Email must be a valid email address")

	_, err = ValidateFormData(fields, map[string]string{"phone": "abc"})
	require.EqualError(t, err, "Phone must be a valid phone number")

	_, err = ValidateFormData(fields, map[string]string{"dob": "31-01-2000"})
	require.EqualError(t, err, "Date of Birth must be a date in YYYY-MM-DD format")

	_, err = ValidateFormData(fields, map[string]string{"income": "-5"})
	require.EqualError(t, err, "Annual Income must be at least 0")

	_, err = ValidateFormData(fields, map[string]string{"gender": "unknown"})
	require.EqualError(t, err, "Gender must be one of: male, female, other")

	validated, err := ValidateFormData(fields, map[string]string{
		"email":  "asha@example.com",
		"phone":  "+91 98765 43210",
		"dob":    "2000-01-31",
		"income": "450000",
		"gender": "female",
	})
	require.NoError(t, err)
	require.Len(t, validated, 5)
}

func TestValidateFormDataLengthAndPattern(t *testing.T) {
	fields := []models.FormField{
		{FieldName: "aadhaar", DisplayName: "Aadhaar Number", FieldType: "text",
			Validation: &models.FieldValidation{
				MinLength: intPtr(12),
				MaxLength: intPtr(12),
				Pattern:   `^[0-9]{12}$`,
			}},
	}

	_, err := ValidateFormData(fields, map[string]string{"aadhaar": "12345"})
	require.EqualError(t, err, "Aadhaar Number must be at least 12 characters")

	_, err = ValidateFormData(fields, map[string]string{"aadhaar": "12345678901a"})
	require.EqualError(t, err, "Aadhaar Number has an invalid format")

	_, err = ValidateFormData(fields, map[string]string{"aadhaar": "123456789012"})
	require.NoError(t, err)
}

func TestValidateDocuments(t *testing.T) {
	docs := []models.RequiredDocument{
		{FieldName: "idProof", DisplayName: "ID Proof", Required: true,
			AcceptedFormats: []string{".pdf", ".jpg"}},
		{FieldName: "addressProof", DisplayName: "Address Proof", Required: false},
	}

	err := ValidateDocuments(docs, map[string]*UploadedDocument{})
	require.EqualError(t, err, "ID Proof is required")

	err = ValidateDocuments(docs, map[string]*UploadedDocument{
		"idProof": {OriginalName: "scan.exe"},
	})
	require.Error(t, err)

	err = ValidateDocuments(docs, map[string]*UploadedDocument{
		"idProof":  {OriginalName: "scan.pdf"},
		"whatever": {OriginalName: "extra.pdf"},
	})
	require.EqualError(t, err, `unexpected document field "whatever"`)

	err = ValidateDocuments(docs, map[string]*UploadedDocument{
		"idProof": {OriginalName: "scan.pdf"},
	})
	require.NoError(t, err)
}
