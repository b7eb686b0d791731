package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"workout-log/internal/domain"
	"workout-log/internal/repository"
)

// WorkoutService is the ownership-scoped CRUD surface for workouts. Every
// method takes the caller's identity and can only observe or touch that
// identity's rows.
type WorkoutService interface {
	List(ctx context.Context, ownerID string, dates *domain.DateRange) ([]domain.Workout, error)
	GetDetail(ctx context.Context, ownerID string, workoutID uuid.UUID) (*domain.WorkoutDetail, error)
	Create(ctx context.Context, ownerID string, in CreateWorkoutInput) (*domain.Workout, error)
	Update(ctx context.Context, ownerID string, workoutID uuid.UUID, in UpdateWorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, ownerID string, workoutID uuid.UUID) error
}

// CreateWorkoutInput carries the fields for a new workout.
type CreateWorkoutInput struct {
	Name            string
	Description     string
	Date            time.Time
	DurationMinutes *int
}

// UpdateWorkoutInput is a partial update; nil fields are left unchanged.
type UpdateWorkoutInput struct {
	Name            *string
	Description     *string
	Date            *time.Time
	DurationMinutes *int
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) List(ctx context.Context, ownerID string, dates *domain.DateRange) ([]domain.Workout, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	workouts, err := s.workoutRepo.ListByOwner(ctx, ownerID, dates)
	if err != nil {
		return nil, storageFailure("list workouts", "", ownerID, err)
	}
	return workouts, nil
}

// GetDetail returns the workout with ordered exercises and sets. A missing id
// is ErrNotFound; an existing workout owned by someone else is ErrForbidden,
// so callers can decide whether to present the two identically.
func (s *workoutService) GetDetail(ctx context.Context, ownerID string, workoutID uuid.UUID) (*domain.WorkoutDetail, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	detail, err := s.workoutRepo.GetDetail(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("get workout detail", workoutID, ownerID, err)
	}
	if detail.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return detail, nil
}

func (s *workoutService) Create(ctx context.Context, ownerID string, in CreateWorkoutInput) (*domain.Workout, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Rule: "required"}
	}
	if in.Date.IsZero() {
		return nil, &domain.ValidationError{Field: "date", Rule: "required"}
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return nil, &domain.ValidationError{Field: "durationMinutes", Rule: "must be positive"}
	}

	workout := &domain.Workout{
		OwnerID:         ownerID,
		Name:            in.Name,
		Description:     in.Description,
		Date:            dateOnly(in.Date),
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, storageFailure("create workout", workout.ID, ownerID, err)
	}
	return workout, nil
}

// Update applies a partial update. The existence probe distinguishes NotFound
// from Forbidden; authorization does not rely on it — the repository's UPDATE
// itself is owner-scoped, so a concurrent ownership change only yields zero
// rows affected.
func (s *workoutService) Update(ctx context.Context, ownerID string, workoutID uuid.UUID, in UpdateWorkoutInput) (*domain.Workout, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name != nil && *in.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Rule: "required"}
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return nil, &domain.ValidationError{Field: "durationMinutes", Rule: "must be positive"}
	}

	existing, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("update workout", workoutID, ownerID, err)
	}
	if existing.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.Date != nil {
		existing.Date = dateOnly(*in.Date)
	}
	if in.DurationMinutes != nil {
		existing.DurationMinutes = in.DurationMinutes
	}

	if err := s.workoutRepo.Update(ctx, ownerID, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Row vanished or changed hands between probe and update.
			return nil, domain.ErrNotFound
		}
		return nil, storageFailure("update workout", workoutID, ownerID, err)
	}

	updated, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, storageFailure("update workout", workoutID, ownerID, err)
	}
	return updated, nil
}

// Delete removes the workout and, through the storage-level cascade, all of
// its exercises and sets.
func (s *workoutService) Delete(ctx context.Context, ownerID string, workoutID uuid.UUID) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	existing, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("delete workout", workoutID, ownerID, err)
	}
	if existing.OwnerID != ownerID {
		return domain.ErrForbidden
	}

	if err := s.workoutRepo.Delete(ctx, ownerID, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return storageFailure("delete workout", workoutID, ownerID, err)
	}
	return nil
}

// dateOnly normalizes a workout date to midnight UTC; the date is a calendar
// value, not an instant.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// storageFailure logs an unexpected store error with enough context to
// diagnose and returns it wrapped as an opaque StorageError. Credentials are
// never part of the log line.
func storageFailure(op string, entityID interface{}, ownerID string, err error) error {
	log.Printf("ERROR: %s failed (entity=%v, identity=%s): %v", op, entityID, ownerID, err)
	return &domain.StorageError{Op: op, Err: err}
}
