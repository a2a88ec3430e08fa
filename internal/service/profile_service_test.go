package service

import (
	"context"
	"fitplate/fitness-app/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetProfileCreatesDefault(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, nil, false)
	userID := primitive.NewObjectID()

	profile, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUsername, profile.Username)
	assert.Equal(t, domain.DefaultCalories, profile.Calories)
	assert.Equal(t, domain.DefaultStepGoal, profile.StepGoal)
	assert.Equal(t, userID, profile.UserID)
	assert.Len(t, repo.profiles, 1)

	again, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, nil, false)
	userID := primitive.NewObjectID()

	profile, err := svc.UpdateProfile(ctx, userID, ProfileUpdate{
		Username:   "  runner ",
		Goal:       "Lose weight",
		GoalWeight: 70,
		Calories:   1800,
		StepGoal:   12000,
	})
	require.NoError(t, err)
	assert.Equal(t, "runner", profile.Username)
	assert.Equal(t, 1800, repo.profiles[userID].Calories)
	assert.Equal(t, 12000, repo.profiles[userID].StepGoal)

	// Empty username keeps the current one
	profile, err = svc.UpdateProfile(ctx, userID, ProfileUpdate{Calories: 2200, StepGoal: 9000})
	require.NoError(t, err)
	assert.Equal(t, "runner", profile.Username)
	assert.Equal(t, "", profile.Goal)
}

func TestUpdateProfileOutOfRangeAllowedByDefault(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), nil, false)

	profile, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), ProfileUpdate{Calories: 1100, StepGoal: 500})
	require.NoError(t, err)
	assert.False(t, profile.ValidateCalories())
	assert.False(t, profile.ValidateStepGoal())
}

func TestUpdateProfileValidateOnWrite(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, nil, true)
	userID := primitive.NewObjectID()

	_, err := svc.UpdateProfile(ctx, userID, ProfileUpdate{Calories: 1100, StepGoal: 10000})
	assert.ErrorIs(t, err, ErrInvalidCalories)
	assert.Zero(t, repo.saveCalls)
	assert.Equal(t, domain.DefaultCalories, repo.profiles[userID].Calories)

	_, err = svc.UpdateProfile(ctx, userID, ProfileUpdate{Calories: 2000, StepGoal: 30001})
	assert.ErrorIs(t, err, ErrInvalidStepGoal)

	_, err = svc.UpdateProfile(ctx, userID, ProfileUpdate{Calories: 1200, StepGoal: 30000})
	assert.NoError(t, err)
}

func TestUpdateProfileSurfacesSaveError(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo, nil, false)
	userID := primitive.NewObjectID()

	_, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)

	repo.saveErr = errStoreDown
	_, err = svc.UpdateProfile(ctx, userID, ProfileUpdate{Calories: 1800, StepGoal: 8000})
	assert.ErrorIs(t, err, errStoreDown)
}

func TestGetProgress(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo(), nil, false)
	userID := primitive.NewObjectID()

	_, err := svc.UpdateProfile(ctx, userID, ProfileUpdate{GoalWeight: 80, Calories: 2000, StepGoal: 10000})
	require.NoError(t, err)

	progress, err := svc.GetProgress(ctx, userID, 5000, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, progress.StepProgress, 1e-9)
	assert.InDelta(t, -0.25, progress.WeightProgress, 1e-9)
	assert.True(t, progress.CaloriesValid)
	assert.True(t, progress.StepGoalValid)
}

func TestImageUploadFlow(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	store := &fakeStorage{}
	svc := NewProfileService(repo, store, false)
	userID := primitive.NewObjectID()

	_, err := svc.GetImageURL(ctx, userID)
	assert.ErrorIs(t, err, ErrNoProfileImage)

	_, err = svc.RequestImageUpload(ctx, userID, "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidImageType)

	first, err := svc.RequestImageUpload(ctx, userID, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ObjectKey, "profiles/"+userID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(first.ObjectKey, ".jpg"))
	assert.Contains(t, first.UploadURL, first.ObjectKey)

	profile, err := svc.ConfirmImageUpload(ctx, userID, first.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, first.ObjectKey, profile.ProfileImageKey)
	assert.Empty(t, store.deleted)

	url, err := svc.GetImageURL(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/download/"+first.ObjectKey, url)

	second, err := svc.RequestImageUpload(ctx, userID, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(second.ObjectKey, ".png"))

	// Confirm still succeeds when deleting the old object fails
	store.deleteErr = errStoreDown
	profile, err = svc.ConfirmImageUpload(ctx, userID, second.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, second.ObjectKey, profile.ProfileImageKey)
	assert.Equal(t, []string{first.ObjectKey}, store.deleted)
}

func TestConfirmImageUploadRejectsForeignKey(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo(), &fakeStorage{}, false)
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	for _, key := range []string{
		"profiles/" + otherID.Hex() + "/a.png",
		"profiles/" + userID.Hex() + "/",
		"profiles/" + userID.Hex() + "/../" + otherID.Hex() + "/a.png",
		"a.png",
	} {
		_, err := svc.ConfirmImageUpload(ctx, userID, key)
		assert.ErrorIs(t, err, ErrImageKeyMismatch, key)
	}
}

func TestImageStorageDisabled(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo(), nil, false)
	userID := primitive.NewObjectID()

	_, err := svc.RequestImageUpload(ctx, userID, "image/png")
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
	_, err = svc.ConfirmImageUpload(ctx, userID, "profiles/"+userID.Hex()+"/a.png")
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
	_, err = svc.GetImageURL(ctx, userID)
	assert.ErrorIs(t, err, ErrImageStorageDisabled)
}

func TestImageExtension(t *testing.T) {
	assert.Equal(t, ".jpg", imageExtension("image/jpeg"))
	assert.Equal(t, ".png", imageExtension("image/png"))
	assert.Equal(t, ".svg", imageExtension("image/svg+xml"))
	assert.Equal(t, ".webp", imageExtension("image/webp; charset=binary"))
	assert.Equal(t, "", imageExtension("image/"))
}
