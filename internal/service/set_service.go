package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"workout-log/internal/domain"
	"workout-log/internal/repository"
)

// SetService manages sets as children of an exercise; ownership is resolved
// transitively through the exercise's workout.
type SetService interface {
	Create(ctx context.Context, ownerID string, exerciseID uuid.UUID, in SetInput) (*domain.Set, error)
	Update(ctx context.Context, ownerID string, setID uuid.UUID, in SetInput) (*domain.Set, error)
	Delete(ctx context.Context, ownerID string, setID uuid.UUID) error
}

// SetInput carries the caller-settable set fields.
type SetInput struct {
	Position    int
	Reps        int
	WeightKg    float64
	RestSeconds int
}

type setService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	setRepo      repository.SetRepository
}

// NewSetService creates a new instance of setService.
func NewSetService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, setRepo repository.SetRepository) SetService {
	return &setService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		setRepo:      setRepo,
	}
}

func validateSetInput(in SetInput) error {
	if in.Position < 0 {
		return &domain.ValidationError{Field: "order", Rule: "must not be negative"}
	}
	if in.Reps <= 0 {
		return &domain.ValidationError{Field: "reps", Rule: "must be positive"}
	}
	if in.WeightKg < 0 {
		return &domain.ValidationError{Field: "weightKg", Rule: "must not be negative"}
	}
	if in.RestSeconds < 0 {
		return &domain.ValidationError{Field: "restTimeSeconds", Rule: "must not be negative"}
	}
	return nil
}

// requireOwnedExercise walks exercise -> workout and checks the workout's
// owner; access control is always evaluated at the workout root.
func (s *setService) requireOwnedExercise(ctx context.Context, ownerID string, exerciseID uuid.UUID) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("resolve exercise", exerciseID, ownerID, err)
	}
	workout, err := s.workoutRepo.GetByID(ctx, exercise.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("resolve workout", exercise.WorkoutID, ownerID, err)
	}
	if workout.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *setService) Create(ctx context.Context, ownerID string, exerciseID uuid.UUID, in SetInput) (*domain.Set, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateSetInput(in); err != nil {
		return nil, err
	}
	if err := s.requireOwnedExercise(ctx, ownerID, exerciseID); err != nil {
		return nil, err
	}

	set := &domain.Set{
		ExerciseID:  exerciseID,
		Position:    in.Position,
		Reps:        in.Reps,
		WeightKg:    in.WeightKg,
		RestSeconds: in.RestSeconds,
	}
	if err := s.setRepo.Create(ctx, set); err != nil {
		return nil, storageFailure("create set", exerciseID, ownerID, err)
	}
	return set, nil
}

func (s *setService) Update(ctx context.Context, ownerID string, setID uuid.UUID, in SetInput) (*domain.Set, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateSetInput(in); err != nil {
		return nil, err
	}

	existing, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("update set", setID, ownerID, err)
	}
	if err := s.requireOwnedExercise(ctx, ownerID, existing.ExerciseID); err != nil {
		return nil, err
	}

	existing.Position = in.Position
	existing.Reps = in.Reps
	existing.WeightKg = in.WeightKg
	existing.RestSeconds = in.RestSeconds

	if err := s.setRepo.Update(ctx, ownerID, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("update set", setID, ownerID, err)
	}
	return existing, nil
}

// Delete removes a single set. Sets are leaves; nothing cascades further.
func (s *setService) Delete(ctx context.Context, ownerID string, setID uuid.UUID) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	existing, err := s.setRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("delete set", setID, ownerID, err)
	}
	if err := s.requireOwnedExercise(ctx, ownerID, existing.ExerciseID); err != nil {
		return err
	}

	if err := s.setRepo.Delete(ctx, ownerID, setID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("delete set", setID, ownerID, err)
	}
	return nil
}
