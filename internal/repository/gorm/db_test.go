package gorm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workout-log/internal/config"
	"workout-log/internal/domain"
	"workout-log/internal/repository"
)

func TestSQLiteDSNCarriesForeignKeyFlag(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_foreign_keys=on", sqliteDSN("file:app.db?cache=shared"))
	assert.Equal(t, "app.db?_fk=1", sqliteDSN("app.db?_fk=1"))
	assert.Equal(t, "app.db?_foreign_keys=off", sqliteDSN("app.db?_foreign_keys=off"))
}

// Pragmas are per-connection in SQLite, so enforcement must come from the DSN:
// a replacement connection dialed by the pool has to come up with foreign keys
// already on, or cascade deletes silently stop firing.
func TestForeignKeysSurviveConnectionRecycling(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "recycle.db")
	db, err := NewDB(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	workouts := NewWorkoutRepository(db)
	exercises := NewExerciseRepository(db)
	ctx := context.Background()

	w := &domain.Workout{
		OwnerID: "owner_a",
		Name:    "Recycled",
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, workouts.Create(ctx, w))
	ex := &domain.Exercise{WorkoutID: w.ID, Name: "Squat", Position: 0}
	require.NoError(t, exercises.Create(ctx, ex))

	// Expire the pooled connection so the next statement runs on a fresh one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetConnMaxLifetime(time.Nanosecond)
	time.Sleep(10 * time.Millisecond)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk, "replacement connection must enforce foreign keys")

	require.NoError(t, workouts.Delete(ctx, "owner_a", w.ID))
	_, err = exercises.GetByID(ctx, ex.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "cascade must still remove children")
}
