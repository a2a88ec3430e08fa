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

const savedRoutineCollectionName = "saved_routines"

// mongoSavedRoutineRepository implements repository.SavedRoutineRepository
type mongoSavedRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoSavedRoutineRepository creates a new SavedRoutine repository backed by MongoDB.
func NewMongoSavedRoutineRepository(db *mongo.Database) repository.SavedRoutineRepository {
	return &mongoSavedRoutineRepository{
		collection: db.Collection(savedRoutineCollectionName),
	}
}

// Create inserts a saved routine. All descriptive fields are required.
func (r *mongoSavedRoutineRepository) Create(ctx context.Context, routine *domain.SavedRoutine) (primitive.ObjectID, error) {
	if routine.UserID == primitive.NilObjectID || routine.Name == "" || routine.ImageName == "" ||
		routine.Duration == "" || routine.Description == "" {
		return primitive.NilObjectID, errors.New("saved routine requires userId, name, imageName, duration and description")
	}

	routine.ID = primitive.NewObjectID()
	routine.SavedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserAndName finds a routine the user already saved under name.
func (r *mongoSavedRoutineRepository) GetByUserAndName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.SavedRoutine, error) {
	var routine domain.SavedRoutine
	filter := bson.M{"userId": userID, "name": name}

	err := r.collection.FindOne(ctx, filter).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// ListByUser retrieves all routines saved by a user, sorted by name.
func (r *mongoSavedRoutineRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedRoutine, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	routines := []domain.SavedRoutine{}
	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (r *mongoSavedRoutineRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

// EnsureSavedRoutineIndexes creates necessary indexes for the saved_routines collection.
func EnsureSavedRoutineIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Name is the de-duplication key within a user's saved list
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
