// models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service categories accepted by the catalog
var ServiceCategories = map[string]bool{
	"certificate":  true,
	"card":         true,
	"document":     true,
	"verification": true,
	"other":        true,
}

// Form field types a service schema may declare
var FormFieldTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"tel":      true,
	"date":     true,
	"select":   true,
	"textarea": true,
	"number":   true,
}

// Pricing holds the two fee components of a service
type Pricing struct {
	ServiceFee        float64 `json:"serviceFee" bson:"serviceFee" validate:"min=0"`
	ConsultancyCharge float64 `json:"consultancyCharge" bson:"consultancyCharge" validate:"min=0"`
}

// FieldValidation carries the optional constraints of a form field
type FieldValidation struct {
	Pattern   string   `json:"pattern,omitempty" bson:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty" bson:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" bson:"max,omitempty"`
}

// FormField describes one input of a service's dynamic application form
type FormField struct {
	FieldName   string           `json:"fieldName" bson:"fieldName"`
	DisplayName string           `json:"displayName" bson:"displayName"`
	FieldType   string           `json:"fieldType" bson:"fieldType"`
	Required    bool             `json:"required" bson:"required"`
	Options     []string         `json:"options,omitempty" bson:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty" bson:"validation,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	HelpText    string           `json:"helpText,omitempty" bson:"helpText,omitempty"`
}

// RequiredDocument describes one upload slot of a service
type RequiredDocument struct {
	FieldName       string   `json:"fieldName" bson:"fieldName"`
	DisplayName     string   `json:"displayName" bson:"displayName"`
	Required        bool     `json:"required" bson:"required"`
	AcceptedFormats []string `json:"acceptedFormats,omitempty" bson:"acceptedFormats,omitempty"`
	MaxSize         int      `json:"maxSize,omitempty" bson:"maxSize,omitempty"` // MB
	Description     string   `json:"description,omitempty" bson:"description,omitempty"`
}

// Service is a catalog entry for one government service
type Service struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	DisplayName       string             `json:"displayName" bson:"displayName"`
	Description       string             `json:"description" bson:"description"`
	Category          string             `json:"category" bson:"category"`
	Pricing           Pricing            `json:"pricing" bson:"pricing"`
	RequiredDocuments []RequiredDocument `json:"requiredDocuments" bson:"requiredDocuments"`
	FormFields        []FormField        `json:"formFields" bson:"formFields"`
	ProcessingTime    string             `json:"processingTime" bson:"processingTime"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	Icon              string             `json:"icon" bson:"icon"`
	DisplayOrder      int                `json:"displayOrder" bson:"displayOrder"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ServiceWithStats is a Service plus its live application count,
// computed at read time for the admin listing.
type ServiceWithStats struct {
	Service          `bson:",inline"`
	ApplicationCount int64 `json:"applicationCount"`
}

// CreateServiceRequest is the admin payload for a new catalog entry
type CreateServiceRequest struct {
	Name              string             `json:"name" validate:"required"`
	DisplayName       string             `json:"displayName" validate:"required"`
	Description       string             `json:"description" validate:"required"`
	Category          string             `json:"category" validate:"required"`
	Pricing           *Pricing           `json:"pricing" validate:"required"`
	RequiredDocuments []RequiredDocument `json:"requiredDocuments"`
	FormFields        []FormField        `json:"formFields"`
	ProcessingTime    string             `json:"processingTime"`
	Icon              string             `json:"icon"`
	DisplayOrder      int                `json:"displayOrder"`
}

// UpdatePricingRequest is the admin payload for the pricing-only update
type UpdatePricingRequest struct {
	ServiceFee        *float64 `json:"serviceFee"`
	ConsultancyCharge *float64 `json:"consultancyCharge"`
}
