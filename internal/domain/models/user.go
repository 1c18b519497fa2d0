// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User is an account holder.
//
// TemplateIDs is the denormalized membership list: the ids of live
// templates this user created. It is kept in lock-step with template
// creation/deletion by the template synchronizer and is mutated only
// with atomic $addToSet/$pull.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Username     string             `bson:"username" json:"username"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"is_active" json:"is_active"`

	// One-time code for email verification. Cleared once verified.
	OTPCode    string    `bson:"otp_code,omitempty" json:"-"`
	OTPExpires time.Time `bson:"otp_expires,omitempty" json:"-"`

	TemplateIDs []primitive.ObjectID `bson:"template_ids" json:"template_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Destroyed bool      `bson:"_destroy" json:"-"`
}
