package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"workout-log/internal/domain"
	"workout-log/internal/repository"
)

// ExerciseService manages exercises as children of a workout. Every mutation
// first gates on the ancestor workout's ownership; exercises have no owner of
// their own.
type ExerciseService interface {
	Create(ctx context.Context, ownerID string, workoutID uuid.UUID, in ExerciseInput) (*domain.Exercise, error)
	ListByWorkout(ctx context.Context, ownerID string, workoutID uuid.UUID) ([]domain.Exercise, error)
	Update(ctx context.Context, ownerID string, exerciseID uuid.UUID, in ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, ownerID string, exerciseID uuid.UUID) error
}

// ExerciseInput carries the caller-settable exercise fields.
type ExerciseInput struct {
	Name        string
	Description string
	Position    int
}

type exerciseService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// requireOwnedWorkout resolves the parent workout and checks ownership,
// mapping a missing row to ErrNotFound and a foreign one to ErrForbidden.
func (s *exerciseService) requireOwnedWorkout(ctx context.Context, ownerID string, workoutID uuid.UUID) error {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("resolve workout", workoutID, ownerID, err)
	}
	if workout.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

func validateExerciseInput(in ExerciseInput) error {
	if in.Name == "" {
		return &domain.ValidationError{Field: "name", Rule: "required"}
	}
	if in.Position < 0 {
		return &domain.ValidationError{Field: "order", Rule: "must not be negative"}
	}
	return nil
}

func (s *exerciseService) Create(ctx context.Context, ownerID string, workoutID uuid.UUID, in ExerciseInput) (*domain.Exercise, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateExerciseInput(in); err != nil {
		return nil, err
	}
	if err := s.requireOwnedWorkout(ctx, ownerID, workoutID); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		WorkoutID:   workoutID,
		Name:        in.Name,
		Description: in.Description,
		Position:    in.Position,
	}
	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, storageFailure("create exercise", workoutID, ownerID, err)
	}
	return exercise, nil
}

func (s *exerciseService) ListByWorkout(ctx context.Context, ownerID string, workoutID uuid.UUID) ([]domain.Exercise, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := s.requireOwnedWorkout(ctx, ownerID, workoutID); err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.ListByWorkout(ctx, workoutID)
	if err != nil {
		return nil, storageFailure("list exercises", workoutID, ownerID, err)
	}
	return exercises, nil
}

func (s *exerciseService) Update(ctx context.Context, ownerID string, exerciseID uuid.UUID, in ExerciseInput) (*domain.Exercise, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateExerciseInput(in); err != nil {
		return nil, err
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("update exercise", exerciseID, ownerID, err)
	}
	if err := s.requireOwnedWorkout(ctx, ownerID, existing.WorkoutID); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Position = in.Position

	if err := s.exerciseRepo.Update(ctx, ownerID, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("update exercise", exerciseID, ownerID, err)
	}
	return existing, nil
}

func (s *exerciseService) Delete(ctx context.Context, ownerID string, exerciseID uuid.UUID) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("delete exercise", exerciseID, ownerID, err)
	}
	if err := s.requireOwnedWorkout(ctx, ownerID, existing.WorkoutID); err != nil {
		return err
	}

	// Leaf cascade from here is the store's job (sets go with the exercise).
	if err := s.exerciseRepo.Delete(ctx, ownerID, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("delete exercise", exerciseID, ownerID, err)
	}
	return nil
}
