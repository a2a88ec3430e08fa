package service

import (
	"context"
	"errors"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/repository"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRoutineNotInCatalog = errors.New("routine not found in catalog")
	ErrRoutineAlreadySaved = errors.New("routine already saved")
)

type RoutineService interface {
	Catalog() []domain.Routine
	SaveRoutine(ctx context.Context, userID primitive.ObjectID, name string) (*domain.SavedRoutine, error)
	ListSavedRoutines(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedRoutine, error)
}

type routineService struct {
	routineRepo repository.SavedRoutineRepository
}

func NewRoutineService(routineRepo repository.SavedRoutineRepository) RoutineService {
	return &routineService{routineRepo: routineRepo}
}

func (s *routineService) Catalog() []domain.Routine {
	return domain.RoutineCatalog()
}

func (s *routineService) SaveRoutine(ctx context.Context, userID primitive.ObjectID, name string) (*domain.SavedRoutine, error) {
	routine, ok := domain.FindRoutine(name)
	if !ok {
		return nil, ErrRoutineNotInCatalog
	}

	_, err := s.routineRepo.GetByUserAndName(ctx, userID, name)
	if err == nil {
		return nil, ErrRoutineAlreadySaved
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	saved := domain.NewSavedRoutine(userID, routine)
	id, err := s.routineRepo.Create(ctx, saved)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoutineAlreadySaved
		}
		log.Printf("ERROR: Failed to save routine %q for user %s: %v", name, userID.Hex(), err)
		return nil, err
	}
	saved.ID = id
	return saved, nil
}

func (s *routineService) ListSavedRoutines(ctx context.Context, userID primitive.ObjectID) ([]domain.SavedRoutine, error) {
	return s.routineRepo.ListByUser(ctx, userID)
}
