package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pashm-co/storefront-api/pkg/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// UpsertUser creates or updates the profile keyed by the external auth uid.
func UpsertUser(ctx context.Context, req *models.UpsertUserRequest) (*models.User, error) {
	now := time.Now()

	authProvider := req.AuthProvider
	if authProvider == "" {
		authProvider = "local"
	}
	country := req.Country
	if country == "" {
		country = "India"
	}

	update := bson.M{
		"$set": bson.M{
			"email":         req.Email,
			"first_name":    req.FirstName,
			"last_name":     req.LastName,
			"phone_number":  req.PhoneNumber,
			"auth_provider": authProvider,
			"photo_url":     req.PhotoURL,
			"address":       req.Address,
			"city":          req.City,
			"state":         req.State,
			"pincode":       req.Pincode,
			"country":       country,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"uid":        req.UID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	err := GetCollection("users").
		FindOneAndUpdate(ctx, bson.M{"uid": req.UID}, update, opts).
		Decode(&user)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := GetCollection("users").FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Users lets the profile lookups satisfy consumer interfaces.
type Users struct{}

func (Users) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	return GetUserByUID(ctx, uid)
}
