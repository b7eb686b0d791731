package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workout-log/internal/config"
	"workout-log/internal/domain"
	"workout-log/internal/repository"
	gormrepo "workout-log/internal/repository/gorm"
)

type testEnv struct {
	db           *gorm.DB
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	setRepo      repository.SetRepository
	workouts     WorkoutService
	exercises    ExerciseService
	sets         SetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gormrepo.NewDB(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)

	workoutRepo := gormrepo.NewWorkoutRepository(db)
	exerciseRepo := gormrepo.NewExerciseRepository(db)
	setRepo := gormrepo.NewSetRepository(db)

	return &testEnv{
		db:           db,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		setRepo:      setRepo,
		workouts:     NewWorkoutService(workoutRepo),
		exercises:    NewExerciseService(workoutRepo, exerciseRepo),
		sets:         NewSetService(workoutRepo, exerciseRepo, setRepo),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (env *testEnv) mustCreateWorkout(t *testing.T, owner, name string, on time.Time) *domain.Workout {
	t.Helper()
	w, err := env.workouts.Create(context.Background(), owner, CreateWorkoutInput{
		Name: name,
		Date: on,
	})
	require.NoError(t, err)
	return w
}

func TestListWorkoutsOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	wA := env.mustCreateWorkout(t, "user_a", "Push Day", date(2025, 6, 1))
	env.mustCreateWorkout(t, "user_a", "Pull Day", date(2025, 6, 2))
	env.mustCreateWorkout(t, "user_b", "Leg Day", date(2025, 6, 3))

	listB, err := env.workouts.List(ctx, "user_b", nil)
	require.NoError(t, err)
	assert.Len(t, listB, 1)
	for _, w := range listB {
		assert.Equal(t, "user_b", w.OwnerID)
	}

	// The other identity's workout exists but is invisible to user_b.
	_, err = env.workouts.GetDetail(ctx, "user_b", wA.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetWorkoutDetailNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workouts.GetDetail(context.Background(), "user_a", uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListWorkoutsDateRangeHalfOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateWorkout(t, "user_a", "On Start", date(2025, 6, 1))
	env.mustCreateWorkout(t, "user_a", "Middle", date(2025, 6, 5))
	env.mustCreateWorkout(t, "user_a", "On End", date(2025, 6, 10))

	list, err := env.workouts.List(ctx, "user_a", &domain.DateRange{
		Start: date(2025, 6, 1),
		End:   date(2025, 6, 10),
	})
	require.NoError(t, err)

	names := make([]string, len(list))
	for i, w := range list {
		names[i] = w.Name
	}
	// Start boundary is included, end boundary is not; newest date first.
	assert.Equal(t, []string{"Middle", "On Start"}, names)
}

func TestListWorkoutsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	env.mustCreateWorkout(t, "user_a", "Oldest", date(2025, 5, 1))
	env.mustCreateWorkout(t, "user_a", "Newest", date(2025, 7, 1))
	env.mustCreateWorkout(t, "user_a", "Middle", date(2025, 6, 1))

	list, err := env.workouts.List(context.Background(), "user_a", nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Newest", list[0].Name)
	assert.Equal(t, "Middle", list[1].Name)
	assert.Equal(t, "Oldest", list[2].Name)
}

func TestGetWorkoutDetailOrderingAndRereads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	w := env.mustCreateWorkout(t, "user_a", "Full Body", date(2025, 6, 1))

	// Insert children out of position order; reads must still sort ascending.
	for _, pos := range []int{2, 0, 1} {
		_, err := env.exercises.Create(ctx, "user_a", w.ID, ExerciseInput{
			Name:     "Exercise",
			Position: pos,
		})
		require.NoError(t, err)
	}

	detail, err := env.workouts.GetDetail(ctx, "user_a", w.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 3)

	for _, pos := range []int{1, 0} {
		_, err := env.sets.Create(ctx, "user_a", detail.Exercises[0].ID, SetInput{
			Position: pos,
			Reps:     8,
			WeightKg: 60,
		})
		require.NoError(t, err)
	}

	first, err := env.workouts.GetDetail(ctx, "user_a", w.ID)
	require.NoError(t, err)
	for i, ex := range first.Exercises {
		assert.Equal(t, i, ex.Position)
	}
	require.Len(t, first.Exercises[0].Sets, 2)
	assert.Equal(t, 0, first.Exercises[0].Sets[0].Position)
	assert.Equal(t, 1, first.Exercises[0].Sets[1].Position)

	// Re-read without intervening mutation is field-for-field identical.
	second, err := env.workouts.GetDetail(ctx, "user_a", w.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCreateWorkoutValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.workouts.Create(ctx, "user_a", CreateWorkoutInput{
		Name: "",
		Date: date(2025, 6, 1),
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	_, err = env.workouts.Create(ctx, "user_a", CreateWorkoutInput{Name: "No Date"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date", vErr.Field)

	zero := 0
	_, err = env.workouts.Create(ctx, "user_a", CreateWorkoutInput{
		Name:            "Bad Duration",
		Date:            date(2025, 6, 1),
		DurationMinutes: &zero,
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "durationMinutes", vErr.Field)

	// A rejected create leaves no row behind.
	list, err := env.workouts.List(ctx, "user_a", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateWorkoutPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	w, err := env.workouts.Create(ctx, "user_a", CreateWorkoutInput{
		Name:        "Before",
		Description: "keep me",
		Date:        date(2025, 6, 1),
	})
	require.NoError(t, err)

	newName := "After"
	updated, err := env.workouts.Update(ctx, "user_a", w.ID, UpdateWorkoutInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "keep me", updated.Description)
	assert.True(t, updated.Date.Equal(date(2025, 6, 1)))

	empty := ""
	_, err = env.workouts.Update(ctx, "user_a", w.ID, UpdateWorkoutInput{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.workouts.Update(ctx, "user_b", w.ID, UpdateWorkoutInput{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.workouts.Update(ctx, "user_a", uuid.New(), UpdateWorkoutInput{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteWorkoutCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	w := env.mustCreateWorkout(t, "user_a", "Doomed", date(2025, 6, 1))
	ex, err := env.exercises.Create(ctx, "user_a", w.ID, ExerciseInput{Name: "Squat", Position: 0})
	require.NoError(t, err)
	_, err = env.sets.Create(ctx, "user_a", ex.ID, SetInput{Position: 0, Reps: 5, WeightKg: 100})
	require.NoError(t, err)

	// A foreign identity cannot delete it.
	err = env.workouts.Delete(ctx, "user_b", w.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.workouts.Delete(ctx, "user_a", w.ID))

	_, err = env.workouts.GetDetail(ctx, "user_a", w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The storage-level cascade took the children with it.
	var exerciseCount, setCount int64
	require.NoError(t, env.db.Model(&domain.Exercise{}).Where("workout_id = ?", w.ID).Count(&exerciseCount).Error)
	require.NoError(t, env.db.Model(&domain.Set{}).Where("exercise_id = ?", ex.ID).Count(&setCount).Error)
	assert.Zero(t, exerciseCount)
	assert.Zero(t, setCount)

	err = env.workouts.Delete(ctx, "user_a", w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLegDayScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	w, err := env.workouts.Create(ctx, "user_1", CreateWorkoutInput{
		Name: "Leg Day",
		Date: date(2025, 6, 1),
	})
	require.NoError(t, err)
	assert.Nil(t, w.DurationMinutes)

	squat, err := env.exercises.Create(ctx, "user_1", w.ID, ExerciseInput{Name: "Squat", Position: 0})
	require.NoError(t, err)

	_, err = env.sets.Create(ctx, "user_1", squat.ID, SetInput{Position: 0, Reps: 5, WeightKg: 100, RestSeconds: 120})
	require.NoError(t, err)
	_, err = env.sets.Create(ctx, "user_1", squat.ID, SetInput{Position: 1, Reps: 5, WeightKg: 105, RestSeconds: 150})
	require.NoError(t, err)

	detail, err := env.workouts.GetDetail(ctx, "user_1", w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", detail.Name)
	assert.True(t, detail.Date.Equal(date(2025, 6, 1)))
	require.Len(t, detail.Exercises, 1)

	ex := detail.Exercises[0]
	assert.Equal(t, "Squat", ex.Name)
	assert.Equal(t, 0, ex.Position)
	require.Len(t, ex.Sets, 2)

	assert.Equal(t, 5, ex.Sets[0].Reps)
	assert.Equal(t, 100.0, ex.Sets[0].WeightKg)
	assert.Equal(t, 120, ex.Sets[0].RestSeconds)
	assert.Equal(t, 5, ex.Sets[1].Reps)
	assert.Equal(t, 105.0, ex.Sets[1].WeightKg)
	assert.Equal(t, 150, ex.Sets[1].RestSeconds)

	_, err = env.workouts.GetDetail(ctx, "user_2", w.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConcurrentUpdatesLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	w := env.mustCreateWorkout(t, "user_a", "Original", date(2025, 6, 1))

	nameA, nameB := "Variant A", "Variant B"
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := env.workouts.Update(ctx, "user_a", w.ID, UpdateWorkoutInput{Name: &nameA})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := env.workouts.Update(ctx, "user_a", w.ID, UpdateWorkoutInput{Name: &nameB})
		assert.NoError(t, err)
	}()
	wg.Wait()

	// Either write may win; the result is never a hybrid.
	final, err := env.workouts.GetDetail(ctx, "user_a", w.ID)
	require.NoError(t, err)
	assert.Contains(t, []string{nameA, nameB}, final.Name)
}

func TestEmptyIdentityIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.workouts.List(ctx, "", nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.workouts.GetDetail(ctx, "", uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.workouts.Create(ctx, "", CreateWorkoutInput{Name: "x", Date: date(2025, 6, 1)})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = env.workouts.Delete(ctx, "", uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.exercises.Create(ctx, "", uuid.New(), ExerciseInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.sets.Create(ctx, "", uuid.New(), SetInput{Reps: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
