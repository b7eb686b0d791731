package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workout-log/internal/domain"
	"workout-log/internal/repository"
)

// gormWorkoutRepository implements repository.WorkoutRepository.
type gormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a workout repository backed by the SQL database.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// GetByID fetches by primary key alone, with no owner filter. It exists so
// the service layer can distinguish a missing row from a foreign one.
func (r *gormWorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return &workout, nil
}

// GetDetail loads the workout with its exercises and sets, each ordered
// ascending by position. Assembled from explicit queries so the result is the
// dedicated detail type rather than a half-populated Workout.
func (r *gormWorkoutRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.WorkoutDetail, error) {
	workout, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var exercises []domain.Exercise
	err = r.db.WithContext(ctx).
		Where("workout_id = ?", id).
		Order("position ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("list exercises for workout: %w", err)
	}

	detail := &domain.WorkoutDetail{
		Workout:   *workout,
		Exercises: make([]domain.ExerciseDetail, 0, len(exercises)),
	}
	if len(exercises) == 0 {
		return detail, nil
	}

	exerciseIDs := make([]uuid.UUID, len(exercises))
	for i, ex := range exercises {
		exerciseIDs[i] = ex.ID
	}

	var sets []domain.Set
	err = r.db.WithContext(ctx).
		Where("exercise_id IN ?", exerciseIDs).
		Order("position ASC").
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("list sets for workout: %w", err)
	}

	setsByExercise := make(map[uuid.UUID][]domain.Set, len(exercises))
	for _, s := range sets {
		setsByExercise[s.ExerciseID] = append(setsByExercise[s.ExerciseID], s)
	}
	for _, ex := range exercises {
		detail.Exercises = append(detail.Exercises, domain.ExerciseDetail{
			Exercise: ex,
			Sets:     append([]domain.Set{}, setsByExercise[ex.ID]...),
		})
	}

	return detail, nil
}

// ListByOwner returns the identity's workouts newest-date-first, optionally
// restricted to the half-open interval [dates.Start, dates.End).
func (r *gormWorkoutRepository) ListByOwner(ctx context.Context, ownerID string, dates *domain.DateRange) ([]domain.Workout, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if dates != nil {
		query = query.Where("date >= ? AND date < ?", dates.Start, dates.End)
	}

	var workouts []domain.Workout
	if err := query.Order("date DESC").Find(&workouts).Error; err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// Update applies the mutable fields. The WHERE clause carries the ownership
// predicate, so under a race the statement matches zero rows instead of
// touching another identity's workout; zero rows maps to ErrNotFound.
func (r *gormWorkoutRepository) Update(ctx context.Context, ownerID string, workout *domain.Workout) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Workout{}).
		Where("id = ? AND owner_id = ?", workout.ID, ownerID).
		Updates(map[string]interface{}{
			"name":             workout.Name,
			"description":      workout.Description,
			"date":             workout.Date,
			"duration_minutes": workout.DurationMinutes,
		})
	if result.Error != nil {
		return fmt.Errorf("update workout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout; exercises and sets go with it via the cascade
// constraints. Same ownership discipline as Update.
func (r *gormWorkoutRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Workout{})
	if result.Error != nil {
		return fmt.Errorf("delete workout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
