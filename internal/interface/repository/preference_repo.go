package repository

import (
	"context"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPreferenceRepository implements PreferenceRepository
type MongoPreferenceRepository struct {
	collection *mongo.Collection
}

// NewMongoPreferenceRepository creates a new preference repository
func NewMongoPreferenceRepository(db *mongo.Database) repository.PreferenceRepository {
	collection := db.Collection("preferences")

	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"userId": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoPreferenceRepository{
		collection: collection,
	}
}

// GetByUserID returns a user's saved preferences
func (r *MongoPreferenceRepository) GetByUserID(ctx context.Context, userID string) (*entity.Preferences, error) {
	var prefs entity.Preferences
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&prefs)
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert creates or replaces a user's preferences
func (r *MongoPreferenceRepository) Upsert(ctx context.Context, prefs *entity.Preferences) error {
	prefs.UpdatedAt = time.Now()
	if prefs.ID == "" {
		prefs.ID = primitive.NewObjectID().Hex()
		prefs.CreatedAt = prefs.UpdatedAt
	}

	updateDoc := bson.M{
		"userId":         prefs.UserID,
		"maxResults":     prefs.MaxResults,
		"smilesAndMoney": prefs.SmilesAndMoney,
		"brasilNonGol":   prefs.BrasilNonGol,
		"airlines":       prefs.Airlines,
		"maxStops":       prefs.MaxStops,
		"createdAt":      prefs.CreatedAt,
		"updatedAt":      prefs.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"userId": prefs.UserID},
		bson.M{"$set": updateDoc},
		opts,
	)
	return err
}

// Reset removes a user's preferences
func (r *MongoPreferenceRepository) Reset(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
