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

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- DTOs ---

// GoalFlagsRequest overwrites all four core flags; omitted fields are false.
type GoalFlagsRequest struct {
	WorkoutCompleted bool `json:"workoutCompleted"`
	StepsGoalMet     bool `json:"stepsGoalMet"`
	WaterIntakeMet   bool `json:"waterIntakeMet"`
	SleepGoalMet     bool `json:"sleepGoalMet"`
}

func (r GoalFlagsRequest) toFlags() service.GoalFlags {
	return service.GoalFlags{
		WorkoutCompleted: r.WorkoutCompleted,
		StepsGoalMet:     r.StepsGoalMet,
		WaterIntakeMet:   r.WaterIntakeMet,
		SleepGoalMet:     r.SleepGoalMet,
	}
}

type DailyGoalResponse struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	WorkoutCompleted bool    `json:"workoutCompleted"`
	StepsGoalMet     bool    `json:"stepsGoalMet"`
	WaterIntakeMet   bool    `json:"waterIntakeMet"`
	SleepGoalMet     bool    `json:"sleepGoalMet"`
	PerfectDay       bool    `json:"perfectDay"`
	ProportionMet    float64 `json:"proportionMet"`
}

type DateRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type GoalBoardResponse struct {
	ActiveGoals      []string        `json:"activeGoals"`
	AvailableGoals   []string        `json:"availableGoals"`
	CompletedGoals   map[string]bool `json:"completedGoals"`
	WorkoutCompleted bool            `json:"workoutCompleted"`
	StepsGoalMet     bool            `json:"stepsGoalMet"`
	WaterIntakeMet   bool            `json:"waterIntakeMet"`
	SleepGoalMet     bool            `json:"sleepGoalMet"`
	AllCoreGoalsMet  bool            `json:"allCoreGoalsMet"`
}

type AddGoalRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// --- Dated records ---

// GetDay godoc
// @Summary Get core goals for one day
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} DailyGoalResponse
// @Failure 400 {object} gin.H "Invalid date"
// @Router /goals/days/{date} [get]
func (h *GoalHandler) GetDay(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	date, ok := parseDateParam(c, c.Param("date"))
	if !ok {
		return
	}

	record, err := h.goalService.GetDay(c.Request.Context(), userID, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDailyGoalToResponse(record))
}

// UpdateDay godoc
// @Summary Set core goals for one day
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param flags body GoalFlagsRequest true "All four flags"
// @Success 200 {object} DailyGoalResponse
// @Router /goals/days/{date} [put]
func (h *GoalHandler) UpdateDay(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	date, ok := parseDateParam(c, c.Param("date"))
	if !ok {
		return
	}

	var req GoalFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.goalService.UpdateDay(c.Request.Context(), userID, date, req.toFlags())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapDailyGoalToResponse(record))
}

// ListDays godoc
// @Summary List recorded days in a range
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {array} DailyGoalResponse
// @Router /goals/days [get]
func (h *GoalHandler) ListDays(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	from, ok := parseDateParam(c, q.From)
	if !ok {
		return
	}
	to, ok := parseDateParam(c, q.To)
	if !ok {
		return
	}

	records, err := h.goalService.ListDays(c.Request.Context(), userID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]DailyGoalResponse, len(records))
	for i := range records {
		resp[i] = MapDailyGoalToResponse(&records[i])
	}
	c.JSON(http.StatusOK, resp)
}

// --- Goal board ---

// GetBoard godoc
// @Summary Get my goal board
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GoalBoardResponse
// @Router /goals/board [get]
func (h *GoalHandler) GetBoard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	board, err := h.goalService.GetBoard(c.Request.Context(), userID)
	h.respondBoard(c, board, err)
}

// AddActiveGoal godoc
// @Summary Start tracking a goal
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body AddGoalRequest true "Goal name"
// @Success 200 {object} GoalBoardResponse
// @Failure 400 {object} gin.H "Empty name or name containing '/'"
// @Failure 409 {object} gin.H "Goal already active"
// @Router /goals/board/active [post]
func (h *GoalHandler) AddActiveGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req AddGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	board, err := h.goalService.AddActiveGoal(c.Request.Context(), userID, req.Name)
	h.respondBoard(c, board, err)
}

// RemoveActiveGoal godoc
// @Summary Stop tracking a goal
// @Description The goal returns to the available list and its completion flag is cleared.
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Goal name"
// @Success 200 {object} GoalBoardResponse
// @Failure 404 {object} gin.H "Goal not active"
// @Router /goals/board/active/{name} [delete]
func (h *GoalHandler) RemoveActiveGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	board, err := h.goalService.RemoveActiveGoal(c.Request.Context(), userID, c.Param("name"))
	h.respondBoard(c, board, err)
}

// CompleteGoal godoc
// @Summary Mark a goal completed
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Goal name"
// @Success 200 {object} GoalBoardResponse
// @Failure 404 {object} gin.H "Goal not active"
// @Router /goals/board/active/{name}/complete [post]
func (h *GoalHandler) CompleteGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	board, err := h.goalService.CompleteGoal(c.Request.Context(), userID, c.Param("name"))
	h.respondBoard(c, board, err)
}

// ToggleGoal godoc
// @Summary Flip the completion flag of an active goal
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param name path string true "Goal name"
// @Success 200 {object} GoalBoardResponse
// @Failure 404 {object} gin.H "Goal not active"
// @Router /goals/board/active/{name}/toggle [post]
func (h *GoalHandler) ToggleGoal(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	board, err := h.goalService.ToggleGoal(c.Request.Context(), userID, c.Param("name"))
	h.respondBoard(c, board, err)
}

// UpdateCoreFlags godoc
// @Summary Set the four core flags on the board
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param flags body GoalFlagsRequest true "All four flags"
// @Success 200 {object} GoalBoardResponse
// @Router /goals/board/flags [put]
func (h *GoalHandler) UpdateCoreFlags(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req GoalFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	board, err := h.goalService.UpdateCoreFlags(c.Request.Context(), userID, req.toFlags())
	h.respondBoard(c, board, err)
}

func (h *GoalHandler) respondBoard(c *gin.Context, board *domain.GoalBoard, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalBoardToResponse(board))
}

func (h *GoalHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGoalAlreadyActive):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrGoalNotActive):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyGoalName), errors.Is(err, service.ErrInvalidGoalName),
		errors.Is(err, service.ErrInvalidDateRange):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: Goal request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process goal request.")
	}
}

// parseDateParam parses a YYYY-MM-DD value or aborts with 400.
func parseDateParam(c *gin.Context, value string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", value))
		return time.Time{}, false
	}
	return date, true
}

// MapDailyGoalToResponse converts a DailyGoalRecord to its DTO.
func MapDailyGoalToResponse(r *domain.DailyGoalRecord) DailyGoalResponse {
	return DailyGoalResponse{
		Date:             r.Date.Format(time.DateOnly),
		WorkoutCompleted: r.WorkoutCompleted,
		StepsGoalMet:     r.StepsGoalMet,
		WaterIntakeMet:   r.WaterIntakeMet,
		SleepGoalMet:     r.SleepGoalMet,
		PerfectDay:       r.IsPerfectDay(),
		ProportionMet:    r.ProportionOfGoalsMet(),
	}
}

// MapGoalBoardToResponse converts a GoalBoard to its DTO. Nil collections become empty.
func MapGoalBoardToResponse(b *domain.GoalBoard) GoalBoardResponse {
	resp := GoalBoardResponse{
		ActiveGoals:      b.ActiveGoals,
		AvailableGoals:   b.AvailableGoals,
		CompletedGoals:   b.CompletedGoals,
		WorkoutCompleted: b.WorkoutCompleted,
		StepsGoalMet:     b.StepsGoalMet,
		WaterIntakeMet:   b.WaterIntakeMet,
		SleepGoalMet:     b.SleepGoalMet,
		AllCoreGoalsMet:  b.HasMetAllGoals(),
	}
	if resp.ActiveGoals == nil {
		resp.ActiveGoals = []string{}
	}
	if resp.AvailableGoals == nil {
		resp.AvailableGoals = []string{}
	}
	if resp.CompletedGoals == nil {
		resp.CompletedGoals = map[string]bool{}
	}
	return resp
}
