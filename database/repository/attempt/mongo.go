package attemptRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtbook/database"
	"courtbook/models"
	"courtbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAttemptRepo implements AttemptRepository using MongoDB.
type MongoAttemptRepo struct {
	coll *mongo.Collection
}

// NewMongoAttemptRepo uses the booking_attempts collection of the configured database.
func NewMongoAttemptRepo() AttemptRepository {
	repo := &MongoAttemptRepo{coll: database.Database().Collection("booking_attempts")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("Failed to create booking attempt indexes", zap.Error(err))
	}
	return repo
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

func (r *MongoAttemptRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "bookingId", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "expiresAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAttemptRepo) Create(ctx context.Context, attempt *models.BookingAttempt) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, attempt); err != nil {
		return fmt.Errorf("failed to insert booking attempt %s: %w", attempt.ID, err)
	}
	return nil
}

func (r *MongoAttemptRepo) findOne(ctx context.Context, filter bson.M) (*models.BookingAttempt, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var attempt models.BookingAttempt
	if err := r.coll.FindOne(ctx, filter).Decode(&attempt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking attempt: %w", err)
	}
	return &attempt, nil
}

func (r *MongoAttemptRepo) GetByID(ctx context.Context, id string) (*models.BookingAttempt, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoAttemptRepo) GetByBookingID(ctx context.Context, userID, bookingID string) (*models.BookingAttempt, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "bookingId": bookingID})
}

func (r *MongoAttemptRepo) Transition(ctx context.Context, from models.AttemptState, attempt *models.BookingAttempt) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": attempt.ID, "state": from}, attempt)
	if err != nil {
		return fmt.Errorf("failed to update booking attempt %s: %w", attempt.ID, err)
	}
	if res.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": attempt.ID})
		if err != nil {
			return fmt.Errorf("failed to check booking attempt %s: %w", attempt.ID, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrStateConflict
	}
	return nil
}

func (r *MongoAttemptRepo) ListExpired(ctx context.Context, now time.Time) ([]models.BookingAttempt, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"state":     models.AttemptAwaitingPayment,
		"expiresAt": bson.M{"$lte": now},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "expiresAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list expired booking attempts: %w", err)
	}
	defer cursor.Close(ctx)

	var attempts []models.BookingAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, fmt.Errorf("failed to decode booking attempts: %w", err)
	}
	return attempts, nil
}
