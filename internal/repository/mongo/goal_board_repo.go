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

const goalBoardCollectionName = "goal_boards"

type mongoGoalBoardRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalBoardRepository creates a new named-goal board repository backed by MongoDB.
func NewMongoGoalBoardRepository(db *mongo.Database) repository.GoalBoardRepository {
	return &mongoGoalBoardRepository{
		collection: db.Collection(goalBoardCollectionName),
	}
}

func (r *mongoGoalBoardRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.GoalBoard, error) {
	var board domain.GoalBoard
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&board)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &board, nil
}

// Save writes the whole board for board.UserID, creating it on first save.
// Lists and the completion map are replaced together in one document write.
func (r *mongoGoalBoardRepository) Save(ctx context.Context, board *domain.GoalBoard) error {
	if board.UserID == primitive.NilObjectID {
		return errors.New("goal board requires a user ID")
	}

	board.UpdatedAt = time.Now().UTC()
	filter := bson.M{"userId": board.UserID}
	update := bson.M{
		"$set": bson.M{
			"activeGoals":      board.ActiveGoals,
			"availableGoals":   board.AvailableGoals,
			"completedGoals":   board.CompletedGoals,
			"workoutCompleted": board.WorkoutCompleted,
			"stepsGoalMet":     board.StepsGoalMet,
			"waterIntakeMet":   board.WaterIntakeMet,
			"sleepGoalMet":     board.SleepGoalMet,
			"updatedAt":        board.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent first save inserted the board; update it in place.
		result, err = r.collection.UpdateOne(ctx, filter, update)
		if err == nil && result.MatchedCount == 0 {
			return repository.ErrUpdateFailed
		}
	}
	if err != nil {
		return err
	}
	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		board.ID = id
	}
	return nil
}

// EnsureGoalBoardIndexes creates necessary indexes for the goal_boards collection.
func EnsureGoalBoardIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
