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

// gormExerciseRepository implements repository.ExerciseRepository.
type gormExerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates an exercise repository backed by the SQL database.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{db: db}
}

// ownedWorkoutIDs is the subquery that scopes exercise mutations to workouts
// belonging to the given identity.
func (r *gormExerciseRepository) ownedWorkoutIDs(ownerID string) *gorm.DB {
	return r.db.Model(&domain.Workout{}).Select("id").Where("owner_id = ?", ownerID)
}

func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

func (r *gormExerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) ListByWorkout(ctx context.Context, workoutID uuid.UUID) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("position ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// Update scopes the mutation to the owner through the parent workout: if the
// exercise's workout is not owned by ownerID the statement matches zero rows.
func (r *gormExerciseRepository) Update(ctx context.Context, ownerID string, exercise *domain.Exercise) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Exercise{}).
		Where("id = ? AND workout_id IN (?)", exercise.ID, r.ownedWorkoutIDs(ownerID)).
		Updates(map[string]interface{}{
			"name":        exercise.Name,
			"description": exercise.Description,
			"position":    exercise.Position,
		})
	if result.Error != nil {
		return fmt.Errorf("update exercise: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormExerciseRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND workout_id IN (?)", id, r.ownedWorkoutIDs(ownerID)).
		Delete(&domain.Exercise{})
	if result.Error != nil {
		return fmt.Errorf("delete exercise: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
