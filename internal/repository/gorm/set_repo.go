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

// gormSetRepository implements repository.SetRepository.
type gormSetRepository struct {
	db *gorm.DB
}

// NewSetRepository creates a set repository backed by the SQL database.
func NewSetRepository(db *gorm.DB) repository.SetRepository {
	return &gormSetRepository{db: db}
}

// ownedExerciseIDs scopes set mutations to exercises whose ancestor workout
// belongs to the given identity.
func (r *gormSetRepository) ownedExerciseIDs(ownerID string) *gorm.DB {
	ownedWorkouts := r.db.Model(&domain.Workout{}).Select("id").Where("owner_id = ?", ownerID)
	return r.db.Model(&domain.Exercise{}).Select("id").Where("workout_id IN (?)", ownedWorkouts)
}

func (r *gormSetRepository) Create(ctx context.Context, set *domain.Set) error {
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(set).Error; err != nil {
		return fmt.Errorf("create set: %w", err)
	}
	return nil
}

func (r *gormSetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Set, error) {
	var set domain.Set
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get set: %w", err)
	}
	return &set, nil
}

func (r *gormSetRepository) ListByExercise(ctx context.Context, exerciseID uuid.UUID) ([]domain.Set, error) {
	var sets []domain.Set
	err := r.db.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		Order("position ASC").
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}

func (r *gormSetRepository) Update(ctx context.Context, ownerID string, set *domain.Set) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Set{}).
		Where("id = ? AND exercise_id IN (?)", set.ID, r.ownedExerciseIDs(ownerID)).
		Updates(map[string]interface{}{
			"position":     set.Position,
			"reps":         set.Reps,
			"weight_kg":    set.WeightKg,
			"rest_seconds": set.RestSeconds,
		})
	if result.Error != nil {
		return fmt.Errorf("update set: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormSetRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND exercise_id IN (?)", id, r.ownedExerciseIDs(ownerID)).
		Delete(&domain.Set{})
	if result.Error != nil {
		return fmt.Errorf("delete set: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
