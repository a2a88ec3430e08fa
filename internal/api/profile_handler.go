package api

import (
	"errors"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/service"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type ProfileResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Goal          string    `json:"goal"`
	GoalWeight    int       `json:"goalWeight"`
	Calories      int       `json:"calories"`
	StepGoal      int       `json:"stepGoal"`
	HasImage      bool      `json:"hasImage"`
	CaloriesValid bool      `json:"caloriesValid"`
	StepGoalValid bool      `json:"stepGoalValid"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Username   string `json:"username" binding:"max=50"`
	Goal       string `json:"goal" binding:"max=200"`
	GoalWeight int    `json:"goalWeight" binding:"gte=0"`
	Calories   int    `json:"calories" binding:"gte=0"`
	StepGoal   int    `json:"stepGoal" binding:"gte=0"`
}

type ProgressQuery struct {
	Steps  int `form:"steps" binding:"gte=0"`
	Weight int `form:"weight" binding:"gte=0"`
}

type ProgressResponse struct {
	StepProgress   float64 `json:"stepProgress"`
	WeightProgress float64 `json:"weightProgress"`
	CaloriesValid  bool    `json:"caloriesValid"`
	StepGoalValid  bool    `json:"stepGoalValid"`
}

type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type ConfirmImageRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Overwrites goal, goal weight, calories and step goal. An empty username keeps the current one.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "New profile values"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} gin.H "Invalid input or out-of-range target"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Username:   req.Username,
		Goal:       req.Goal,
		GoalWeight: req.GoalWeight,
		Calories:   req.Calories,
		StepGoal:   req.StepGoal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetProgress godoc
// @Summary Progress towards my targets
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param steps query int false "Steps taken today"
// @Param weight query int false "Current weight in kg"
// @Success 200 {object} ProgressResponse
// @Router /profile/progress [get]
func (h *ProfileHandler) GetProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var q ProgressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	progress, err := h.profileService.GetProgress(c.Request.Context(), userID, q.Steps, q.Weight)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProgressResponse{
		StepProgress:   progress.StepProgress,
		WeightProgress: progress.WeightProgress,
		CaloriesValid:  progress.CaloriesValid,
		StepGoalValid:  progress.StepGoalValid,
	})
}

// RequestImageUpload godoc
// @Summary Get a presigned URL to upload a profile image
// @Description The client PUTs the image to uploadUrl with the same Content-Type, then calls /profile/image/confirm.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImageUploadRequest true "Image content type"
// @Success 200 {object} ImageUploadResponse
// @Failure 400 {object} gin.H "Not an image content type"
// @Failure 503 {object} gin.H "Image storage not configured"
// @Router /profile/image/upload-url [post]
func (h *ProfileHandler) RequestImageUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.profileService.RequestImageUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{UploadURL: upload.UploadURL, ObjectKey: upload.ObjectKey})
}

// ConfirmImageUpload godoc
// @Summary Attach an uploaded image to my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmImageRequest true "Object key returned by upload-url"
// @Success 200 {object} ProfileResponse
// @Failure 403 {object} gin.H "Object key belongs to another user"
// @Router /profile/image/confirm [post]
func (h *ProfileHandler) ConfirmImageUpload(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req ConfirmImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.ConfirmImageUpload(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetImageURL godoc
// @Summary Get a presigned download URL for my profile image
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "{\"imageUrl\": \"...\"}"
// @Failure 404 {object} gin.H "No image uploaded"
// @Router /profile/image [get]
func (h *ProfileHandler) GetImageURL(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	url, err := h.profileService.GetImageURL(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

func (h *ProfileHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCalories),
		errors.Is(err, service.ErrInvalidStepGoal),
		errors.Is(err, service.ErrInvalidImageType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrImageKeyMismatch):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNoProfileImage):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrImageStorageDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("ERROR: Profile request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process profile request.")
	}
}

// MapProfileToResponse converts a domain Profile to its DTO.
func MapProfileToResponse(p *domain.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:            p.ID.Hex(),
		Username:      p.Username,
		Goal:          p.Goal,
		GoalWeight:    p.GoalWeight,
		Calories:      p.Calories,
		StepGoal:      p.StepGoal,
		HasImage:      p.HasImage(),
		CaloriesValid: p.ValidateCalories(),
		StepGoalValid: p.ValidateStepGoal(),
		UpdatedAt:     p.UpdatedAt,
	}
}
