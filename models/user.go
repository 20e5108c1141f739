// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	Mno       string             `json:"mno" bson:"mno"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Birthdate string             `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Photo     string             `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RegisterRequest is the payload for user self-registration
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Mno       string `json:"mno" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	CPassword string `json:"cpassword" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token plus the sanitized user
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// CreateUserRequest is the admin payload for adding a user directly
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Mno      string `json:"mno" validate:"required"`
	Role     string `json:"role"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserRequest is the admin payload for editing a user
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Mno      string `json:"mno"`
	Role     string `json:"role"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Response is the common JSON envelope. Error is only populated in
// development mode.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
