package service

import (
	"context"
	"errors"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/repository"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrGoalAlreadyActive = errors.New("goal is already active")
	ErrGoalNotActive     = errors.New("goal is not active")
	ErrEmptyGoalName     = errors.New("goal name cannot be empty")
	ErrInvalidGoalName   = errors.New("goal name cannot contain '/'")
	ErrInvalidDateRange  = errors.New("invalid date range")
)

// maxListDays bounds a single ListDays query.
const maxListDays = 366

// GoalFlags are the four core daily goals.
type GoalFlags struct {
	WorkoutCompleted bool
	StepsGoalMet     bool
	WaterIntakeMet   bool
	SleepGoalMet     bool
}

type GoalService interface {
	// Dated records, one per user and calendar day.
	GetDay(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.DailyGoalRecord, error)
	UpdateDay(ctx context.Context, userID primitive.ObjectID, date time.Time, flags GoalFlags) (*domain.DailyGoalRecord, error)
	ListDays(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailyGoalRecord, error)

	// Named-goal board, one per user.
	GetBoard(ctx context.Context, userID primitive.ObjectID) (*domain.GoalBoard, error)
	AddActiveGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error)
	RemoveActiveGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error)
	CompleteGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error)
	ToggleGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error)
	UpdateCoreFlags(ctx context.Context, userID primitive.ObjectID, flags GoalFlags) (*domain.GoalBoard, error)
}

type goalService struct {
	dailyGoalRepo repository.DailyGoalRepository
	boardRepo     repository.GoalBoardRepository
}

func NewGoalService(dailyGoalRepo repository.DailyGoalRepository, boardRepo repository.GoalBoardRepository) GoalService {
	return &goalService{
		dailyGoalRepo: dailyGoalRepo,
		boardRepo:     boardRepo,
	}
}

// GetDay returns the stored record, or an unsaved empty one if the day has none.
func (s *goalService) GetDay(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.DailyGoalRecord, error) {
	record, err := s.dailyGoalRepo.GetByUserAndDate(ctx, userID, domain.TruncateToDay(date))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewDailyGoalRecord(userID, date), nil
		}
		return nil, err
	}
	return record, nil
}

func (s *goalService) UpdateDay(ctx context.Context, userID primitive.ObjectID, date time.Time, flags GoalFlags) (*domain.DailyGoalRecord, error) {
	record, err := s.GetDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	record.UpdateGoals(flags.WorkoutCompleted, flags.StepsGoalMet, flags.WaterIntakeMet, flags.SleepGoalMet)
	if err := s.dailyGoalRepo.Upsert(ctx, record); err != nil {
		log.Printf("ERROR: Failed to save goals for user %s on %s: %v", userID.Hex(), record.Date.Format(time.DateOnly), err)
		return nil, err
	}
	return record, nil
}

func (s *goalService) ListDays(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailyGoalRecord, error) {
	from, to = domain.TruncateToDay(from), domain.TruncateToDay(to)
	if to.Before(from) || to.Sub(from) > maxListDays*24*time.Hour {
		return nil, ErrInvalidDateRange
	}
	return s.dailyGoalRepo.ListByUser(ctx, userID, from, to)
}

// GetBoard returns the stored board, or an unsaved default one.
func (s *goalService) GetBoard(ctx context.Context, userID primitive.ObjectID) (*domain.GoalBoard, error) {
	board, err := s.boardRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewGoalBoard(userID), nil
		}
		return nil, err
	}
	return board, nil
}

func (s *goalService) AddActiveGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGoalName
	}
	// Active goals are addressed by a single URL path segment.
	if strings.Contains(name, "/") {
		return nil, ErrInvalidGoalName
	}
	return s.mutateBoard(ctx, userID, func(b *domain.GoalBoard) error {
		if !b.AddActiveGoal(name) {
			return ErrGoalAlreadyActive
		}
		return nil
	})
}

func (s *goalService) RemoveActiveGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error) {
	name = strings.TrimSpace(name)
	return s.mutateBoard(ctx, userID, func(b *domain.GoalBoard) error {
		if !b.HasActiveGoal(name) {
			return ErrGoalNotActive
		}
		b.RemoveActiveGoal(name)
		return nil
	})
}

func (s *goalService) CompleteGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error) {
	name = strings.TrimSpace(name)
	return s.mutateBoard(ctx, userID, func(b *domain.GoalBoard) error {
		if !b.HasActiveGoal(name) {
			return ErrGoalNotActive
		}
		b.CompleteGoal(name)
		return nil
	})
}

func (s *goalService) ToggleGoal(ctx context.Context, userID primitive.ObjectID, name string) (*domain.GoalBoard, error) {
	name = strings.TrimSpace(name)
	return s.mutateBoard(ctx, userID, func(b *domain.GoalBoard) error {
		if !b.ToggleGoalCompletion(name) {
			return ErrGoalNotActive
		}
		return nil
	})
}

func (s *goalService) UpdateCoreFlags(ctx context.Context, userID primitive.ObjectID, flags GoalFlags) (*domain.GoalBoard, error) {
	return s.mutateBoard(ctx, userID, func(b *domain.GoalBoard) error {
		b.UpdateWorkoutCompletion(flags.WorkoutCompleted)
		b.UpdateStepsGoal(flags.StepsGoalMet)
		b.UpdateWaterIntake(flags.WaterIntakeMet)
		b.UpdateSleepGoal(flags.SleepGoalMet)
		return nil
	})
}

// mutateBoard loads (or creates) the board, applies fn, and saves it.
// Nothing is saved when fn returns an error.
func (s *goalService) mutateBoard(ctx context.Context, userID primitive.ObjectID, fn func(*domain.GoalBoard) error) (*domain.GoalBoard, error) {
	board, err := s.GetBoard(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(board); err != nil {
		return nil, err
	}
	if err := s.boardRepo.Save(ctx, board); err != nil {
		log.Printf("ERROR: Failed to save goal board for user %s: %v", userID.Hex(), err)
		return nil, err
	}
	return board, nil
}
