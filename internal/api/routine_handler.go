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

type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

type SaveRoutineRequest struct {
	Name string `json:"name" binding:"required"`
}

type SavedRoutineResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImageName   string    `json:"imageName"`
	Duration    string    `json:"duration"`
	Description string    `json:"description"`
	SavedAt     time.Time `json:"savedAt"`
}

// GetCatalog godoc
// @Summary List predefined workout routines
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {array} domain.Routine
// @Router /routines/catalog [get]
func (h *RoutineHandler) GetCatalog(c *gin.Context) {
	catalog := h.routineService.Catalog()
	if category := c.Query("category"); category != "" {
		filtered := make([]domain.Routine, 0, len(catalog))
		for _, r := range catalog {
			if r.Category == category {
				filtered = append(filtered, r)
			}
		}
		catalog = filtered
	}
	c.JSON(http.StatusOK, catalog)
}

// SaveRoutine godoc
// @Summary Save a catalog routine
// @Tags Routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routine body SaveRoutineRequest true "Catalog routine name"
// @Success 201 {object} SavedRoutineResponse
// @Failure 404 {object} gin.H "Not in catalog"
// @Failure 409 {object} gin.H "Already saved"
// @Router /routines/saved [post]
func (h *RoutineHandler) SaveRoutine(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req SaveRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	saved, err := h.routineService.SaveRoutine(c.Request.Context(), userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoutineNotInCatalog):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRoutineAlreadySaved):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR: Saving routine for user %s: %v", userID.Hex(), err)
			abortWithError(c, http.StatusInternalServerError, "Failed to save routine.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapSavedRoutineToResponse(saved))
}

// GetSavedRoutines godoc
// @Summary List my saved routines
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SavedRoutineResponse
// @Router /routines/saved [get]
func (h *RoutineHandler) GetSavedRoutines(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	routines, err := h.routineService.ListSavedRoutines(c.Request.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Listing routines for user %s: %v", userID.Hex(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve saved routines.")
		return
	}

	resp := make([]SavedRoutineResponse, len(routines))
	for i := range routines {
		resp[i] = MapSavedRoutineToResponse(&routines[i])
	}
	c.JSON(http.StatusOK, resp)
}

func MapSavedRoutineToResponse(r *domain.SavedRoutine) SavedRoutineResponse {
	return SavedRoutineResponse{
		ID:          r.ID.Hex(),
		Name:        r.Name,
		ImageName:   r.ImageName,
		Duration:    r.Duration,
		Description: r.Description,
		SavedAt:     r.SavedAt,
	}
}
