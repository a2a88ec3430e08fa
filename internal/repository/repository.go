package repository

import (
	"context"
	"fitplate/fitness-app/internal/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user credentials.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// UpdateCredentials writes email and password hash in a single update.
	UpdateCredentials(ctx context.Context, user *domain.User) error
}

// ProfileRepository stores one profile per user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// DailyGoalRepository stores one dated goal record per user and day.
type DailyGoalRepository interface {
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.DailyGoalRecord, error)
	// Upsert creates or replaces the record for (record.UserID, record.Date).
	Upsert(ctx context.Context, record *domain.DailyGoalRecord) error
	// ListByUser returns records with from <= date <= to, oldest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailyGoalRecord, error)
}

// GoalBoardRepository stores one named-goal board per user.
type GoalBoardRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.GoalBoard, error)
	Save(ctx context.Context, board *domain.GoalBoard) error
}

// SavedRoutineRepository defines the interface for saved workout routines.
type SavedRoutineRepository interface {
	Create(ctx context.Context, routine *domain.SavedRoutine) (primitive.ObjectID, error)
	GetByUserAndName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.SavedRoutine, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedRoutine, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
