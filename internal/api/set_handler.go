package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workout-log/internal/service"
)

// SetHandler holds the set service dependency.
type SetHandler struct {
	setService service.SetService
}

// NewSetHandler creates a new SetHandler.
func NewSetHandler(setService service.SetService) *SetHandler {
	return &SetHandler{setService: setService}
}

// SetRequest is used for both create and update.
type SetRequest struct {
	Order           int     `json:"order"`
	Reps            int     `json:"reps" binding:"required"`
	WeightKg        float64 `json:"weightKg"`
	RestTimeSeconds int     `json:"restTimeSeconds"`
}

// CreateSet adds a set to an exercise in one of the caller's workouts.
func (h *SetHandler) CreateSet(c *gin.Context) {
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
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	set, err := h.setService.Create(c.Request.Context(), identity, exerciseID, service.SetInput{
		Position:    req.Order,
		Reps:        req.Reps,
		WeightKg:    req.WeightKg,
		RestSeconds: req.RestTimeSeconds,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapSetToResponse(set))
}

// UpdateSet replaces a set's fields.
func (h *SetHandler) UpdateSet(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	setID, err := uuid.Parse(c.Param("setId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid set id.")
		return
	}
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	set, err := h.setService.Update(c.Request.Context(), identity, setID, service.SetInput{
		Position:    req.Order,
		Reps:        req.Reps,
		WeightKg:    req.WeightKg,
		RestSeconds: req.RestTimeSeconds,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSetToResponse(set))
}

// DeleteSet removes a single set.
func (h *SetHandler) DeleteSet(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}
	setID, err := uuid.Parse(c.Param("setId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid set id.")
		return
	}

	if err := h.setService.Delete(c.Request.Context(), identity, setID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
