package mongo

import (
	"context"
	"errors"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dailyGoalCollectionName = "daily_goals"

// mongoDailyGoalRepository implements repository.DailyGoalRepository
type mongoDailyGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyGoalRepository creates a new dated goal repository backed by MongoDB.
func NewMongoDailyGoalRepository(db *mongo.Database) repository.DailyGoalRepository {
	return &mongoDailyGoalRepository{
		collection: db.Collection(dailyGoalCollectionName),
	}
}

// GetByUserAndDate retrieves the record for the calendar day containing date.
func (r *mongoDailyGoalRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.DailyGoalRecord, error) {
	var record domain.DailyGoalRecord
	filter := bson.M{"userId": userID, "date": domain.TruncateToDay(date)}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Upsert replaces the record for (userId, date), inserting it if missing.
func (r *mongoDailyGoalRepository) Upsert(ctx context.Context, record *domain.DailyGoalRecord) error {
	if record.UserID == primitive.NilObjectID {
		return errors.New("daily goal record requires a user ID")
	}

	record.Date = domain.TruncateToDay(record.Date)
	record.UpdatedAt = time.Now().UTC()

	filter := bson.M{"userId": record.UserID, "date": record.Date}
	// Build the replacement without _id so an existing document keeps its own
	replacement := bson.M{
		"userId":           record.UserID,
		"date":             record.Date,
		"workoutCompleted": record.WorkoutCompleted,
		"stepsGoalMet":     record.StepsGoalMet,
		"waterIntakeMet":   record.WaterIntakeMet,
		"sleepGoalMet":     record.SleepGoalMet,
		"updatedAt":        record.UpdatedAt,
	}

	result, err := r.collection.ReplaceOne(ctx, filter, replacement, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}

// ListByUser returns the user's records between from and to (inclusive days), oldest first.
func (r *mongoDailyGoalRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailyGoalRecord, error) {
	filter := bson.M{
		"userId": userID,
		"date": bson.M{
			"$gte": domain.TruncateToDay(from),
			"$lte": domain.TruncateToDay(to),
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.DailyGoalRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureDailyGoalIndexes creates necessary indexes for the daily_goals collection.
func EnsureDailyGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One record per user per day, also serves date range scans
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
