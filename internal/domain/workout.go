package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workout is a single logged training session. OwnerID is the identity of the
// user who created it; Exercises and Sets inherit that ownership transitively,
// so access control is always evaluated against the workout row.
type Workout struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         string    `gorm:"index;not null" json:"ownerId"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description,omitempty"`
	Date            time.Time `gorm:"index;not null" json:"date"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Declared so AutoMigrate creates the FK with cascade delete.
	// Detail reads assemble WorkoutDetail explicitly instead of loading this.
	Exercises []Exercise `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Exercise belongs to exactly one workout. Position is application-assigned
// and unique within the parent; gaps are allowed and never renumbered.
type Exercise struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkoutID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_exercises_workout_position" json:"workoutId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Position    int       `gorm:"not null;uniqueIndex:ux_exercises_workout_position" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Sets []Set `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Set is a leaf record: reps at a weight, followed by a rest.
type Set struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExerciseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_sets_exercise_position" json:"exerciseId"`
	Position    int       `gorm:"not null;uniqueIndex:ux_sets_exercise_position" json:"order"`
	Reps        int       `gorm:"not null" json:"reps"`
	WeightKg    float64   `gorm:"not null" json:"weightKg"`
	RestSeconds int       `gorm:"not null" json:"restTimeSeconds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WorkoutDetail is a workout with its children fully loaded, exercises and
// sets each ordered ascending by position. It is a distinct type from Workout
// so a flat record can never be mistaken for a loaded one.
type WorkoutDetail struct {
	Workout
	Exercises []ExerciseDetail `json:"exercises"`
}

// ExerciseDetail is an exercise with its sets loaded in position order.
type ExerciseDetail struct {
	Exercise
	Sets []Set `json:"sets"`
}

// DateRange is a half-open interval [Start, End): a workout dated exactly
// Start is included, one dated exactly End is not.
type DateRange struct {
	Start time.Time
	End   time.Time
}
