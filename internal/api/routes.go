package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workout-log/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	setService service.SetService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	setHandler := NewSetHandler(setService)
	exportHandler := NewExportHandler(exportService)

	authMiddleware := AuthMiddleware(jwtSecret)

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
	protected.Use(authMiddleware)
	{
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:workoutId", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:workoutId", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:workoutId", workoutHandler.DeleteWorkout)

			workoutGroup.GET("/:workoutId/exercises", exerciseHandler.ListExercises)
			workoutGroup.POST("/:workoutId/exercises", exerciseHandler.CreateExercise)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.PUT("/:exerciseId", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:exerciseId/sets", setHandler.CreateSet)
		}

		setGroup := protected.Group("/sets")
		{
			setGroup.PUT("/:setId", setHandler.UpdateSet)
			setGroup.DELETE("/:setId", setHandler.DeleteSet)
		}

		protected.POST("/export", exportHandler.ExportHistory)
		protected.DELETE("/export", exportHandler.DeleteExport)
	}
}
