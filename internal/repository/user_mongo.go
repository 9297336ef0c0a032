package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"relwatch/internal/models"
)

// UserMongo persists dashboard logins.
type UserMongo struct {
	col *mongo.Collection
}

func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{col: db.Collection("users")}
}

// FindByUsername fetches a user by name.
func (u *UserMongo) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := u.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	return user, err
}

// Create inserts a new user.
func (u *UserMongo) Create(ctx context.Context, user models.User) (models.User, error) {
	user.ID = primitive.NewObjectID().Hex()
	if _, err := u.col.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Count returns the number of registered users.
func (u *UserMongo) Count(ctx context.Context) (int64, error) {
	return u.col.CountDocuments(ctx, bson.M{})
}
