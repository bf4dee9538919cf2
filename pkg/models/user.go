package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a customer profile keyed by the external auth provider's uid.
// Authentication itself happens outside this service; we only store the
// profile and shipping details.
type User struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UID          string        `json:"uid" bson:"uid"`
	Email        string        `json:"email" bson:"email"`
	FirstName    string        `json:"first_name" bson:"first_name"`
	LastName     string        `json:"last_name" bson:"last_name"`
	PhoneNumber  string        `json:"phone_number" bson:"phone_number"`
	AuthProvider string        `json:"auth_provider" bson:"auth_provider"`
	PhotoURL     string        `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Address      string        `json:"address" bson:"address"`
	City         string        `json:"city" bson:"city"`
	State        string        `json:"state" bson:"state"`
	Pincode      string        `json:"pincode" bson:"pincode"`
	Country      string        `json:"country" bson:"country"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

type UpsertUserRequest struct {
	UID          string `json:"uid" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`
	AuthProvider string `json:"authProvider"`
	PhotoURL     string `json:"photoURL"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}
