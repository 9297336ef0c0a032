package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"relwatch/internal/models"
)

// NotificationMongo persists the singleton webhook configuration.
type NotificationMongo struct {
	col *mongo.Collection
}

func NewNotificationMongo(db *mongo.Database) *NotificationMongo {
	return &NotificationMongo{col: db.Collection("notification_settings")}
}

// Get returns the notification settings, creating defaults on first run.
func (n *NotificationMongo) Get(ctx context.Context) (models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := n.col.FindOne(ctx, bson.M{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		settings = models.NotificationSettings{
			ID:      primitive.NewObjectID().Hex(),
			BotName: "Relwatch Bot",
			Message: "Relwatch notification: webhook is working!",
		}
		if _, err := n.col.InsertOne(ctx, settings); err != nil {
			return models.NotificationSettings{}, err
		}
		return settings, nil
	}
	return settings, err
}

// Save overwrites the notification settings wholesale.
func (n *NotificationMongo) Save(ctx context.Context, settings models.NotificationSettings) error {
	existing, err := n.Get(ctx)
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	_, err = n.col.ReplaceOne(ctx, bson.M{"_id": existing.ID}, settings)
	return err
}
