package controllers

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bhavesh4825f/project/config"
	"github.com/bhavesh4825f/project/models"
)

const dbTimeout = 10 * time.Second

// errorDetail exposes the underlying error only outside production
func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	env := os.Getenv("ENV")
	if env == "development" || env == "dev" {
		return err.Error()
	}
	return ""
}

// findUsername resolves a user id to its username for display; a
// missing user resolves to the empty string rather than an error so
// orphaned references stay readable.
func findUsername(ctx context.Context, db *mongo.Client, id primitive.ObjectID) string {
	var user struct {
		Username string `bson:"username"`
	}
	err := config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return ""
	}
	return user.Username
}

// findUser loads a full user record by id
func findUser(ctx context.Context, db *mongo.Client, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
