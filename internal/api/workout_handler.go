package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workout-log/internal/domain"
	"workout-log/internal/service"
)

// Wire format for workout dates; they are calendar dates, not instants.
const dateLayout = "2006-01-02"

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type CreateWorkoutRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	DurationMinutes *int   `json:"durationMinutes"`
}

// UpdateWorkoutRequest is a partial update; omitted fields stay unchanged.
type UpdateWorkoutRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	DurationMinutes *int    `json:"durationMinutes"`
}

type WorkoutResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Date            string    `json:"date"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type SetResponse struct {
	ID              string  `json:"id"`
	Order           int     `json:"order"`
	Reps            int     `json:"reps"`
	WeightKg        float64 `json:"weightKg"`
	RestTimeSeconds int     `json:"restTimeSeconds"`
}

type ExerciseResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Order       int           `json:"order"`
	Sets        []SetResponse `json:"sets"`
}

type WorkoutDetailResponse struct {
	WorkoutResponse
	Exercises []ExerciseResponse `json:"exercises"`
}

func mapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:              w.ID.String(),
		Name:            w.Name,
		Description:     w.Description,
		Date:            w.Date.Format(dateLayout),
		DurationMinutes: w.DurationMinutes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func mapSetToResponse(s *domain.Set) SetResponse {
	return SetResponse{
		ID:              s.ID.String(),
		Order:           s.Position,
		Reps:            s.Reps,
		WeightKg:        s.WeightKg,
		RestTimeSeconds: s.RestSeconds,
	}
}

func mapDetailToResponse(d *domain.WorkoutDetail) WorkoutDetailResponse {
	resp := WorkoutDetailResponse{
		WorkoutResponse: mapWorkoutToResponse(&d.Workout),
		Exercises:       make([]ExerciseResponse, 0, len(d.Exercises)),
	}
	for _, ex := range d.Exercises {
		exResp := ExerciseResponse{
			ID:          ex.ID.String(),
			Name:        ex.Name,
			Description: ex.Description,
			Order:       ex.Position,
			Sets:        make([]SetResponse, 0, len(ex.Sets)),
		}
		for i := range ex.Sets {
			exResp.Sets = append(exResp.Sets, mapSetToResponse(&ex.Sets[i]))
		}
		resp.Exercises = append(resp.Exercises, exResp)
	}
	return resp
}

// --- Handler Methods ---

// ListWorkouts returns the caller's workouts, newest first. Optional `from`
// and `to` query params restrict to the half-open range [from, to).
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}

	var dates *domain.DateRange
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			abortWithError(c, http.StatusBadRequest, "Both 'from' and 'to' are required for a date range.")
			return
		}
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD.")
			return
		}
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD.")
			return
		}
		dates = &domain.DateRange{Start: from, End: to}
	}

	workouts, err := h.workoutService.List(c.Request.Context(), identity, dates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		responses = append(responses, mapWorkoutToResponse(&workouts[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetWorkout returns a workout with its exercises and sets.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
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

	detail, err := h.workoutService.GetDetail(c.Request.Context(), identity, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapDetailToResponse(detail))
}

// CreateWorkout records a new workout owned by the caller.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), identity, service.CreateWorkoutInput{
		Name:            req.Name,
		Description:     req.Description,
		Date:            date,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapWorkoutToResponse(workout))
}

// UpdateWorkout applies a partial update to one of the caller's workouts.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
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
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	in := service.UpdateWorkoutInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
			return
		}
		in.Date = &date
	}

	workout, err := h.workoutService.Update(c.Request.Context(), identity, workoutID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutToResponse(workout))
}

// DeleteWorkout removes a workout and everything under it.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
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

	if err := h.workoutService.Delete(c.Request.Context(), identity, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
