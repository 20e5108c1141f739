// config/seed.go
package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/models"
	"github.com/bhavesh4825f/project/utils"
)

// InitDatabase seeds the admin account and the default service catalog
// on first run. Both steps are idempotent.
func InitDatabase(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ensureAdminUser(ctx, client)
	ensureDefaultServices(ctx, client)
}

func ensureAdminUser(ctx context.Context, client *mongo.Client) {
	users := GetCollection(client, "users")

	count, err := users.CountDocuments(ctx, bson.M{"role": "admin"})
	if err != nil {
		log.Printf("Error checking for admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@ogsp.gov.in"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	now := time.Now()
	_, err = users.InsertOne(ctx, models.User{
		Username:  "admin",
		Email:     adminEmail,
		Mno:       "9999999999",
		Password:  hashed,
		Role:      "admin",
		Address:   "Government Office",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", adminEmail)
}

func ensureDefaultServices(ctx context.Context, client *mongo.Client) {
	services := GetCollection(client, "services")

	count, err := services.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Error checking service catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	docs := make([]interface{}, 0, len(DefaultServices()))
	for _, svc := range DefaultServices() {
		docs = append(docs, svc)
	}

	if _, err := services.InsertMany(ctx, docs); err != nil {
		log.Printf("Error seeding default services: %v", err)
		return
	}
	log.Printf("Seeded %d default services", len(docs))
}

// DefaultServices returns the initial catalog created on an empty
// database.
func DefaultServices() []models.Service {
	now := time.Now()
	return []models.Service{
		{
			Name:           "PAN Card Application",
			DisplayName:    "PAN Card Application",
			Description:    "Apply for a new PAN card or correction in existing PAN card details",
			Category:       "card",
			IsActive:       true,
			Icon:           "bi-credit-card",
			DisplayOrder:   1,
			Pricing:        models.Pricing{ServiceFee: 107, ConsultancyCharge: 20},
			ProcessingTime: "5-7 working days",
			FormFields: []models.FormField{
				{FieldName: "fullName", DisplayName: "Full Name", FieldType: "text", Required: true},
				{FieldName: "fatherName", DisplayName: "Father's Name", FieldType: "text", Required: true},
				{FieldName: "motherName", DisplayName: "Mother's Name", FieldType: "text", Required: true},
				{FieldName: "dateOfBirth", DisplayName: "Date of Birth", FieldType: "date", Required: true},
				{FieldName: "placeOfBirth", DisplayName: "Place of Birth", FieldType: "text", Required: true},
				{FieldName: "mobileNumber", DisplayName: "Mobile Number", FieldType: "tel", Required: true},
				{FieldName: "email", DisplayName: "Email Address", FieldType: "email", Required: true},
			},
			RequiredDocuments: []models.RequiredDocument{
				{FieldName: "adharcard", DisplayName: "Aadhar Card", Required: true},
				{FieldName: "passport_photo", DisplayName: "Passport Size Photo", Required: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Name:           "Income Certificate",
			DisplayName:    "Income Certificate",
			Description:    "Apply for income certificate for educational or other purposes",
			Category:       "certificate",
			IsActive:       true,
			Icon:           "bi-file-earmark",
			DisplayOrder:   2,
			Pricing:        models.Pricing{ServiceFee: 30, ConsultancyCharge: 20},
			ProcessingTime: "5-7 working days",
			FormFields: []models.FormField{
				{FieldName: "applicantName", DisplayName: "Applicant Name", FieldType: "text", Required: true},
				{FieldName: "fatherName", DisplayName: "Father's Name", FieldType: "text", Required: true},
				{FieldName: "occupation", DisplayName: "Occupation", FieldType: "text", Required: true},
				{FieldName: "annualIncome", DisplayName: "Annual Income", FieldType: "number", Required: true},
				{FieldName: "address", DisplayName: "Address", FieldType: "textarea", Required: true},
				{FieldName: "mobileNumber", DisplayName: "Mobile Number", FieldType: "tel", Required: true},
				{FieldName: "email", DisplayName: "Email Address", FieldType: "email", Required: true},
			},
			RequiredDocuments: []models.RequiredDocument{
				{FieldName: "adhar_card", DisplayName: "Aadhar Card", Required: true},
				{FieldName: "passport_photo", DisplayName: "Passport Size Photo", Required: true},
				{FieldName: "ration_card", DisplayName: "Ration Card", Required: false},
				{FieldName: "light_bill", DisplayName: "Electricity Bill", Required: false},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Name:           "Birth Certificate",
			DisplayName:    "Birth Certificate",
			Description:    "Apply for birth certificate",
			Category:       "certificate",
			IsActive:       true,
			Icon:           "bi-file-earmark",
			DisplayOrder:   3,
			Pricing:        models.Pricing{ServiceFee: 25, ConsultancyCharge: 20},
			ProcessingTime: "5-7 working days",
			FormFields: []models.FormField{
				{FieldName: "applicantName", DisplayName: "Applicant Name", FieldType: "text", Required: true},
				{FieldName: "dateOfBirth", DisplayName: "Date of Birth", FieldType: "date", Required: true},
				{FieldName: "placeOfBirth", DisplayName: "Place of Birth", FieldType: "text", Required: true},
			},
			RequiredDocuments: []models.RequiredDocument{
				{FieldName: "documents", DisplayName: "Supporting Documents", Required: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
