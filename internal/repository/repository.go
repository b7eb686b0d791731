package repository

import (
	"context"

	"github.com/google/uuid"

	"workout-log/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
//
// GetByID and GetDetail fetch by primary key alone; they exist so the service
// layer can tell "does not exist" apart from "exists but foreign". Update and
// Delete take the owner identity and include it in the mutating statement's
// WHERE clause, so a mutation can never touch another identity's row even if
// ownership changed after an earlier existence probe.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.WorkoutDetail, error)
	ListByOwner(ctx context.Context, ownerID string, dates *domain.DateRange) ([]domain.Workout, error)
	Update(ctx context.Context, ownerID string, workout *domain.Workout) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
// Exercises carry no owner column; the owner-scoped mutations reach the
// ancestor workout through a subquery.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	ListByWorkout(ctx context.Context, workoutID uuid.UUID) ([]domain.Exercise, error)
	Update(ctx context.Context, ownerID string, exercise *domain.Exercise) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// SetRepository defines the interface for interacting with set data.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Set, error)
	ListByExercise(ctx context.Context, exerciseID uuid.UUID) ([]domain.Set, error)
	Update(ctx context.Context, ownerID string, set *domain.Set) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}
