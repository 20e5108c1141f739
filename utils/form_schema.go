// utils/form_schema.go
package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bhavesh4825f/project/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telPattern   = regexp.MustCompile(`^[0-9+\-\s()]{6,15}$`)
)

// ValidateFormData checks the submitted field values against the
// owning service's form schema and returns the validated subset.
// Unknown fields are dropped; a violation aborts the submission.
func ValidateFormData(fields []models.FormField, submitted map[string]string) (map[string]string, error) {
	validated := make(map[string]string, len(fields))

	for _, field := range fields {
		raw, present := submitted[field.FieldName]
		value := strings.TrimSpace(raw)

		if value == "" {
			if field.Required {
				return nil, fmt.Errorf("%s is required", field.DisplayName)
			}
			if present {
				validated[field.FieldName] = ""
			}
			continue
		}

		if err := validateFieldValue(field, value); err != nil {
			return nil, err
		}
		validated[field.FieldName] = value
	}

	return validated, nil
}

func validateFieldValue(field models.FormField, value string) error {
	switch field.FieldType {
	case "email":
		if !emailPattern.MatchString(value) {
			return fmt.Errorf("%s must be a valid email address", field.DisplayName)
		}
	case "tel":
		if !telPattern.MatchString(value) {
			return fmt.Errorf("%s must be a valid phone number", field.DisplayName)
		}
	case "date":
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("%s must be a date in YYYY-MM-DD format", field.DisplayName)
		}
	case "number":
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", field.DisplayName)
		}
		if v := field.Validation; v != nil {
			if v.Min != nil && num < *v.Min {
				return fmt.Errorf("%s must be at least %g", field.DisplayName, *v.Min)
			}
			if v.Max != nil && num > *v.Max {
				return fmt.Errorf("%s must be at most %g", field.DisplayName, *v.Max)
			}
		}
	case "select":
		for _, opt := range field.Options {
			if value == opt {
				return nil
			}
		}
		return fmt.Errorf("%s must be one of: %s", field.DisplayName, strings.Join(field.Options, ", "))
	case "text", "textarea", "":
		// length/pattern checks below
	default:
		return fmt.Errorf("%s has an unknown field type %q", field.DisplayName, field.FieldType)
	}

	if v := field.Validation; v != nil {
		if v.MinLength != nil && len(value) < *v.MinLength {
			return fmt.Errorf("%s must be at least %d characters", field.DisplayName, *v.MinLength)
		}
		if v.MaxLength != nil && len(value) > *v.MaxLength {
			return fmt.Errorf("%s must be at most %d characters", field.DisplayName, *v.MaxLength)
		}
		if v.Pattern != "" {
			re, err := regexp.Compile(v.Pattern)
			if err == nil && !re.MatchString(value) {
				return fmt.Errorf("%s has an invalid format", field.DisplayName)
			}
		}
	}

	return nil
}

// ValidateDocuments checks that every required document slot of the
// service has an upload and that every upload matches its descriptor.
// Files for undeclared slots are refused.
func ValidateDocuments(docs []models.RequiredDocument, uploaded map[string]*UploadedDocument) error {
	declared := make(map[string]models.RequiredDocument, len(docs))
	for _, doc := range docs {
		declared[doc.FieldName] = doc
	}

	for fieldName, file := range uploaded {
		doc, ok := declared[fieldName]
		if !ok {
			return fmt.Errorf("unexpected document field %q", fieldName)
		}
		if err := ValidateDocumentType(file.OriginalName, doc.AcceptedFormats); err != nil {
			return err
		}
	}

	for _, doc := range docs {
		if doc.Required {
			if _, ok := uploaded[doc.FieldName]; !ok {
				return fmt.Errorf("%s is required", doc.DisplayName)
			}
		}
	}

	return nil
}

// UploadedDocument pairs an upload slot with the file posted for it
type UploadedDocument struct {
	OriginalName string
	SizeBytes    int64
}
