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

// MongoAlertRepository implements AlertRepository
type MongoAlertRepository struct {
	collection *mongo.Collection
}

// NewMongoAlertRepository creates a new alert repository
func NewMongoAlertRepository(db *mongo.Database) repository.AlertRepository {
	collection := db.Collection("alerts")

	// One alert per user and search text
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "search", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoAlertRepository{
		collection: collection,
	}
}

// Create inserts a new alert
func (r *MongoAlertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	if alert.ID == "" {
		alert.ID = primitive.NewObjectID().Hex()
	}
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt

	_, err := r.collection.InsertOne(ctx, alert)
	return err
}

// FindByUserAndSearch finds one alert by its owner and search text
func (r *MongoAlertRepository) FindByUserAndSearch(ctx context.Context, userID, search string) (*entity.Alert, error) {
	var alert entity.Alert
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "search": search}).Decode(&alert)
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// FindAll returns every stored alert
func (r *MongoAlertRepository) FindAll(ctx context.Context) ([]*entity.Alert, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alerts []*entity.Alert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// UpdateResult stores the latest result text for an alert
func (r *MongoAlertRepository) UpdateResult(ctx context.Context, id string, previousResult string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"previousResult": previousResult,
			"updatedAt":      time.Now(),
		}},
	)
	return err
}

// Delete removes one alert by owner and search text
func (r *MongoAlertRepository) Delete(ctx context.Context, userID, search string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "search": search})
	return err
}

// DeleteAllForUser removes every alert belonging to a user
func (r *MongoAlertRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
