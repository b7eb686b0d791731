package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workout-log/internal/domain"
	"workout-log/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseRequest is used for both create and update.
type ExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// FlatExerciseResponse is an exercise without its sets, returned by the
// create/update endpoints.
type FlatExerciseResponse struct {
	ID          string `json:"id"`
	WorkoutID   string `json:"workoutId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

func mapExerciseToResponse(ex *domain.Exercise) FlatExerciseResponse {
	return FlatExerciseResponse{
		ID:          ex.ID.String(),
		WorkoutID:   ex.WorkoutID.String(),
		Name:        ex.Name,
		Description: ex.Description,
		Order:       ex.Position,
	}
}

// CreateExercise adds an exercise to one of the caller's workouts.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	workoutID, err := uuid.Parse(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout id.")
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), identity, workoutID, service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Order,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapExerciseToResponse(exercise))
}

// ListExercises returns a workout's exercises in position order.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	workoutID, err := uuid.Parse(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout id.")
		return
	}

	exercises, err := h.exerciseService.ListByWorkout(c.Request.Context(), identity, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]FlatExerciseResponse, 0, len(exercises))
	for i := range exercises {
		responses = append(responses, mapExerciseToResponse(&exercises[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateExercise replaces an exercise's fields.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	exerciseID, err := uuid.Parse(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise id.")
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), identity, exerciseID, service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Order,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapExerciseToResponse(exercise))
}

// DeleteExercise removes an exercise and its sets.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	exerciseID, err := uuid.Parse(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise id.")
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), identity, exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
