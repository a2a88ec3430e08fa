package api

import (
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/service"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetProfileHandler(t *testing.T) {
	profile := &domain.Profile{
		ID:              primitive.NewObjectID(),
		UserID:          testUserID,
		Username:        "runner",
		Calories:        1100,
		StepGoal:        10000,
		ProfileImageKey: "profiles/x/y.png",
	}
	profiles := &stubProfileService{
		get: func(userID primitive.ObjectID) (*domain.Profile, error) {
			assert.Equal(t, testUserID, userID)
			return profile, nil
		},
	}
	router := newTestRouter(testServices{profile: profiles})

	w := doRequest(t, router, http.MethodGet, "/api/v1/profile", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "profiles/x/y.png", "object keys are not exposed")

	resp := decodeBody[ProfileResponse](t, w)
	assert.Equal(t, "runner", resp.Username)
	assert.True(t, resp.HasImage)
	assert.False(t, resp.CaloriesValid)
	assert.True(t, resp.StepGoalValid)
}

func TestUpdateProfileHandler(t *testing.T) {
	var got service.ProfileUpdate
	profiles := &stubProfileService{
		update: func(_ primitive.ObjectID, in service.ProfileUpdate) (*domain.Profile, error) {
			got = in
			if in.Calories < domain.MinCalories {
				return nil, service.ErrInvalidCalories
			}
			p := domain.NewProfile()
			p.UpdateProfile(in.Goal, in.GoalWeight, in.Calories, in.StepGoal)
			return p, nil
		},
	}
	router := newTestRouter(testServices{profile: profiles})
	path := "/api/v1/profile"

	req := UpdateProfileRequest{Username: "runner", Goal: "Build muscle", GoalWeight: 75, Calories: 2500, StepGoal: 8000}
	w := doRequest(t, router, http.MethodPut, path, req, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Build muscle", got.Goal)
	assert.Equal(t, 2500, decodeBody[ProfileResponse](t, w).Calories)

	w = doRequest(t, router, http.MethodPut, path, UpdateProfileRequest{Calories: 1100, StepGoal: 8000}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, path, `{"calories": -5}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code, "binding rejects negative values")
}

func TestProfileImageHandlers(t *testing.T) {
	profiles := &stubProfileService{
		upload: func(userID primitive.ObjectID, contentType string) (*service.ImageUploadURL, error) {
			if contentType != "image/png" {
				return nil, service.ErrInvalidImageType
			}
			return &service.ImageUploadURL{UploadURL: "https://s3.test/put", ObjectKey: "profiles/" + userID.Hex() + "/a.png"}, nil
		},
		image: func(primitive.ObjectID) (string, error) {
			return "", service.ErrNoProfileImage
		},
	}
	router := newTestRouter(testServices{profile: profiles})

	w := doRequest(t, router, http.MethodPost, "/api/v1/profile/image/upload-url", ImageUploadRequest{ContentType: "image/png"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[ImageUploadResponse](t, w)
	assert.Equal(t, "https://s3.test/put", resp.UploadURL)
	assert.Equal(t, "profiles/"+testUserID.Hex()+"/a.png", resp.ObjectKey)

	w = doRequest(t, router, http.MethodPost, "/api/v1/profile/image/upload-url", ImageUploadRequest{ContentType: "text/plain"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/profile/image", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileImageStorageDisabled(t *testing.T) {
	profiles := &stubProfileService{
		image: func(primitive.ObjectID) (string, error) {
			return "", service.ErrImageStorageDisabled
		},
	}
	router := newTestRouter(testServices{profile: profiles})

	w := doRequest(t, router, http.MethodGet, "/api/v1/profile/image", nil, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
