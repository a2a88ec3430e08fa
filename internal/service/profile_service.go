package service

import (
	"context"
	"errors"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/repository"
	"fitplate/fitness-app/internal/storage"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidCalories      = fmt.Errorf("calories must be between %d and %d", domain.MinCalories, domain.MaxCalories)
	ErrInvalidStepGoal      = fmt.Errorf("step goal must be between %d and %d", domain.MinStepGoal, domain.MaxStepGoal)
	ErrInvalidImageType     = errors.New("profile image must have an image/* content type")
	ErrImageKeyMismatch     = errors.New("object key does not belong to this user")
	ErrNoProfileImage       = errors.New("no profile image uploaded")
	ErrImageStorageDisabled = errors.New("profile image storage is not configured")
)

// ProfileUpdate carries the editable profile fields. An empty Username keeps the current one.
type ProfileUpdate struct {
	Username   string
	Goal       string
	GoalWeight int
	Calories   int
	StepGoal   int
}

// ProfileProgress reports progress against the profile targets.
type ProfileProgress struct {
	StepProgress   float64
	WeightProgress float64
	CaloriesValid  bool
	StepGoalValid  bool
}

// ImageUploadURL is handed to the client for a direct PUT to object storage.
type ImageUploadURL struct {
	UploadURL string
	ObjectKey string
}

type ProfileService interface {
	// GetProfile returns the user's profile, creating a default one on first access.
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileUpdate) (*domain.Profile, error)
	GetProgress(ctx context.Context, userID primitive.ObjectID, currentSteps, currentWeight int) (*ProfileProgress, error)

	RequestImageUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*ImageUploadURL, error)
	// ConfirmImageUpload attaches an uploaded object to the profile and deletes the previous one.
	ConfirmImageUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.Profile, error)
	GetImageURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

type profileService struct {
	profileRepo     repository.ProfileRepository
	fileStorage     storage.FileStorage // nil when object storage is not configured
	validateOnWrite bool
}

func NewProfileService(profileRepo repository.ProfileRepository, fileStorage storage.FileStorage, validateOnWrite bool) ProfileService {
	return &profileService{
		profileRepo:     profileRepo,
		fileStorage:     fileStorage,
		validateOnWrite: validateOnWrite,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile = domain.NewProfile()
	profile.UserID = userID
	id, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		// A concurrent request created it first
		if errors.Is(err, repository.ErrDuplicate) {
			return s.profileRepo.GetByUserID(ctx, userID)
		}
		log.Printf("ERROR: Failed to create default profile for user %s: %v", userID.Hex(), err)
		return nil, err
	}
	profile.ID = id
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.UpdateProfile(strings.TrimSpace(input.Goal), input.GoalWeight, input.Calories, input.StepGoal)
	if name := strings.TrimSpace(input.Username); name != "" {
		profile.Username = name
	}

	if s.validateOnWrite {
		if !profile.ValidateCalories() {
			return nil, ErrInvalidCalories
		}
		if !profile.ValidateStepGoal() {
			return nil, ErrInvalidStepGoal
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		log.Printf("ERROR: Failed to save profile for user %s: %v", userID.Hex(), err)
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProgress(ctx context.Context, userID primitive.ObjectID, currentSteps, currentWeight int) (*ProfileProgress, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileProgress{
		StepProgress:   profile.ProgressTowardsStepGoal(currentSteps),
		WeightProgress: profile.ProgressTowardsWeightGoal(currentWeight),
		CaloriesValid:  profile.ValidateCalories(),
		StepGoalValid:  profile.ValidateStepGoal(),
	}, nil
}

func (s *profileService) RequestImageUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*ImageUploadURL, error) {
	if s.fileStorage == nil {
		return nil, ErrImageStorageDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidImageType
	}

	objectKey := fmt.Sprintf("%s%s%s", imageKeyPrefix(userID), uuid.NewString(), imageExtension(contentType))
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &ImageUploadURL{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *profileService) ConfirmImageUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.Profile, error) {
	if s.fileStorage == nil {
		return nil, ErrImageStorageDisabled
	}
	name, ok := strings.CutPrefix(objectKey, imageKeyPrefix(userID))
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil, ErrImageKeyMismatch
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	previousKey := profile.ProfileImageKey
	profile.ProfileImageKey = objectKey
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		log.Printf("ERROR: Failed to attach image %s to profile of user %s: %v", objectKey, userID.Hex(), err)
		return nil, err
	}

	if previousKey != "" && previousKey != objectKey {
		// Best effort, the profile already points at the new object
		if err := s.fileStorage.DeleteObject(ctx, previousKey); err != nil {
			log.Printf("WARN: Failed to delete previous profile image %s: %v", previousKey, err)
		}
	}
	return profile, nil
}

func (s *profileService) GetImageURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrImageStorageDisabled
	}
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if !profile.HasImage() {
		return "", ErrNoProfileImage
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, profile.ProfileImageKey, storage.DefaultPresignedURLExpiry)
}

func imageKeyPrefix(userID primitive.ObjectID) string {
	return "profiles/" + userID.Hex() + "/"
}

// imageExtension maps a content type like "image/png" to ".png".
func imageExtension(contentType string) string {
	subtype := strings.TrimPrefix(contentType, "image/")
	if i := strings.IndexAny(subtype, ";+"); i >= 0 {
		subtype = subtype[:i]
	}
	switch subtype {
	case "jpeg", "pjpeg":
		return ".jpg"
	case "":
		return ""
	}
	return "." + strings.ToLower(strings.TrimSpace(subtype))
}
