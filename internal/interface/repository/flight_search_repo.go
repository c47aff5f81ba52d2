package repository

import (
	"context"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoFlightSearchRepository implements FlightSearchRepository
type MongoFlightSearchRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightSearchRepository creates a new search-history repository
func NewMongoFlightSearchRepository(db *mongo.Database) repository.FlightSearchRepository {
	return &MongoFlightSearchRepository{
		collection: db.Collection("flight_searches"),
	}
}

// Create inserts one search-history record
func (r *MongoFlightSearchRepository) Create(ctx context.Context, search *entity.FlightSearch) error {
	if search.ID == "" {
		search.ID = primitive.NewObjectID().Hex()
	}
	if search.SearchedAt.IsZero() {
		search.SearchedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, search)
	return err
}
