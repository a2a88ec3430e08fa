package service

import (
	"context"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dashboard is the home screen summary for one day.
type Dashboard struct {
	Profile           *domain.Profile
	Day               *domain.DailyGoalRecord
	SavedRoutineCount int64
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID primitive.ObjectID, date time.Time) (*Dashboard, error)
}

type dashboardService struct {
	profileService ProfileService
	goalService    GoalService
	routineRepo    repository.SavedRoutineRepository
}

func NewDashboardService(profileService ProfileService, goalService GoalService, routineRepo repository.SavedRoutineRepository) DashboardService {
	return &dashboardService{
		profileService: profileService,
		goalService:    goalService,
		routineRepo:    routineRepo,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID primitive.ObjectID, date time.Time) (*Dashboard, error) {
	profile, err := s.profileService.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	day, err := s.goalService.GetDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	count, err := s.routineRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Profile:           profile,
		Day:               day,
		SavedRoutineCount: count,
	}, nil
}
