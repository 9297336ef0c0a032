package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"relwatch/internal/models"
)

// SettingsMongo persists the singleton settings document.
type SettingsMongo struct {
	col *mongo.Collection
}

func NewSettingsMongo(db *mongo.Database) *SettingsMongo {
	return &SettingsMongo{col: db.Collection("settings")}
}

// Get returns the settings document, creating defaults on first run.
func (s *SettingsMongo) Get(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.col.FindOne(ctx, bson.M{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		settings = models.Settings{
			ID:           primitive.NewObjectID().Hex(),
			Theme:        "tokyoNight",
			CronSchedule: "0 */12 * * *",
			LastScan:     "",
		}
		if _, err := s.col.InsertOne(ctx, settings); err != nil {
			return models.Settings{}, err
		}
		return settings, nil
	}
	return settings, err
}

// Save overwrites the settings document wholesale.
func (s *SettingsMongo) Save(ctx context.Context, settings models.Settings) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": settings.ID}, settings)
	return err
}

// SetLastScan updates only the last-scan timestamp label.
func (s *SettingsMongo) SetLastScan(ctx context.Context, label string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{}, bson.M{"$set": bson.M{"last_scan": label}})
	return err
}
