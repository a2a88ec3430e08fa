package api

import (
	"fitplate/fitness-app/internal/service"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

type DashboardResponse struct {
	Profile           ProfileResponse   `json:"profile"`
	Today             DailyGoalResponse `json:"today"`
	SavedRoutineCount int64             `json:"savedRoutineCount"`
}

// GetDashboard godoc
// @Summary Home dashboard
// @Description Profile targets, the day's core goals and the number of saved routines.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), defaults to today in UTC"
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	date := h.now().UTC()
	if raw := c.Query("date"); raw != "" {
		if date, ok = parseDateParam(c, raw); !ok {
			return
		}
	}

	dash, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, date)
	if err != nil {
		log.Printf("ERROR: Building dashboard for user %s: %v", userID.Hex(), err)
		abortWithError(c, http.StatusInternalServerError, "Failed to load dashboard.")
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Profile:           MapProfileToResponse(dash.Profile),
		Today:             MapDailyGoalToResponse(dash.Day),
		SavedRoutineCount: dash.SavedRoutineCount,
	})
}
