package repository

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"relwatch/internal/models"
)

// ErrNotFound is returned when a document does not exist. The service layer
// maps it onto the shared taxonomy.
var ErrNotFound = errors.New("repository: not found")

// RepoMongo persists RepositoryRecord documents, one per tracked repository.
type RepoMongo struct {
	col *mongo.Collection
}

// NewRepoMongo wires the "repositories" collection.
func NewRepoMongo(db *mongo.Database) *RepoMongo {
	return &RepoMongo{col: db.Collection("repositories")}
}

// List returns every tracked repository in insertion order.
func (r *RepoMongo) List(ctx context.Context) ([]models.RepositoryRecord, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	recs := []models.RepositoryRecord{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByID fetches one record by its hex id.
func (r *RepoMongo) FindByID(ctx context.Context, id string) (models.RepositoryRecord, error) {
	var rec models.RepositoryRecord
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, ErrNotFound
	}
	return rec, err
}

// ExistsByURL reports whether a record with the given canonical URL exists,
// compared case-insensitively.
func (r *RepoMongo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	filter := bson.M{"url": primitive.Regex{Pattern: "^" + escapeRegex(url) + "$", Options: "i"}}
	count, err := r.col.CountDocuments(ctx, filter)
	return count > 0, err
}

// Create inserts the record and returns it with the assigned id.
func (r *RepoMongo) Create(ctx context.Context, rec models.RepositoryRecord) (models.RepositoryRecord, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return models.RepositoryRecord{}, err
	}
	return rec, nil
}

// Update overwrites the stored document.
func (r *RepoMongo) Update(ctx context.Context, rec models.RepositoryRecord) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record. Deleting an absent id is not an error.
func (r *RepoMongo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// escapeRegex quotes regex metacharacters so a URL can be used in an anchored
// case-insensitive match.
func escapeRegex(s string) string {
	specials := `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, c := range s {
		if strings.ContainsRune(specials, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
