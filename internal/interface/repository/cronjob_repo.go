package repository

import (
	"context"
	"time"

	"awardsearch-service/internal/domain/entity"
	"awardsearch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCronJobRepository implements CronJobRepository
type MongoCronJobRepository struct {
	collection *mongo.Collection
}

// NewMongoCronJobRepository creates a new cron job repository
func NewMongoCronJobRepository(db *mongo.Database) repository.CronJobRepository {
	return &MongoCronJobRepository{
		collection: db.Collection("cron_jobs"),
	}
}

// Create inserts a new cron job
func (r *MongoCronJobRepository) Create(ctx context.Context, job *entity.CronJob) error {
	if job.ID == "" {
		job.ID = primitive.NewObjectID().Hex()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	_, err := r.collection.InsertOne(ctx, job)
	return err
}

// FindAll returns every stored cron job
func (r *MongoCronJobRepository) FindAll(ctx context.Context) ([]*entity.CronJob, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*entity.CronJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Delete removes one cron job by owner and search text
func (r *MongoCronJobRepository) Delete(ctx context.Context, userID, search string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "search": search})
	return err
}

// DeleteAllForUser removes every cron job belonging to a user
func (r *MongoCronJobRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
