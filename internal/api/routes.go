package api

import (
	"fitplate/fitness-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	profileService service.ProfileService,
	goalService service.GoalService,
	routineService service.RoutineService,
	dashboardService service.DashboardService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	goalHandler := NewGoalHandler(goalService)
	routineHandler := NewRoutineHandler(routineService)
	dashboardHandler := NewDashboardHandler(dashboardService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(authService))
	{
		protected.PUT("/me/credentials", authHandler.UpdateCredentials)

		// --- Profile Routes ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.GET("/progress", profileHandler.GetProgress)

			profileGroup.POST("/image/upload-url", profileHandler.RequestImageUpload)
			profileGroup.POST("/image/confirm", profileHandler.ConfirmImageUpload)
			profileGroup.GET("/image", profileHandler.GetImageURL)
		}

		// --- Goal Routes ---
		goalGroup := protected.Group("/goals")
		{
			// Dated records
			goalGroup.GET("/days", goalHandler.ListDays)
			goalGroup.GET("/days/:date", goalHandler.GetDay)
			goalGroup.PUT("/days/:date", goalHandler.UpdateDay)

			// Named-goal board
			goalGroup.GET("/board", goalHandler.GetBoard)
			goalGroup.PUT("/board/flags", goalHandler.UpdateCoreFlags)
			goalGroup.POST("/board/active", goalHandler.AddActiveGoal)
			goalGroup.DELETE("/board/active/:name", goalHandler.RemoveActiveGoal)
			goalGroup.POST("/board/active/:name/complete", goalHandler.CompleteGoal)
			goalGroup.POST("/board/active/:name/toggle", goalHandler.ToggleGoal)
		}

		// --- Routine Routes ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.GET("/catalog", routineHandler.GetCatalog)
			routineGroup.GET("/saved", routineHandler.GetSavedRoutines)
			routineGroup.POST("/saved", routineHandler.SaveRoutine)
		}

		protected.GET("/dashboard", dashboardHandler.GetDashboard)
	}
}
