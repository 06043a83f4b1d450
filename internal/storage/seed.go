package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

// defaultExercises is the bundled catalog inserted on first launch.
var defaultExercises = []struct {
	name        string
	muscleGroup models.MuscleGroup
	category    models.WorkoutType
}{
	// Push
	{"Barbell Bench Press", models.MuscleChest, models.WorkoutPush},
	{"Incline Barbell Bench Press", models.MuscleChest, models.WorkoutPush},
	{"Dumbbell Bench Press", models.MuscleChest, models.WorkoutPush},
	{"Overhead Press", models.MuscleShoulders, models.WorkoutPush},
	{"Dumbbell Shoulder Press", models.MuscleShoulders, models.WorkoutPush},
	{"Dips", models.MuscleChest, models.WorkoutPush},
	{"Tricep Pushdown", models.MuscleTriceps, models.WorkoutPush},
	{"Overhead Tricep Extension", models.MuscleTriceps, models.WorkoutPush},

	// Pull
	{"Barbell Row", models.MuscleBack, models.WorkoutPull},
	{"Dumbbell Row", models.MuscleBack, models.WorkoutPull},
	{"Pull-ups", models.MuscleBack, models.WorkoutPull},
	{"Lat Pulldown", models.MuscleBack, models.WorkoutPull},
	{"Deadlift", models.MuscleBack, models.WorkoutPull},
	{"Romanian Deadlift", models.MuscleHamstrings, models.WorkoutPull},
	{"Face Pulls", models.MuscleRearDelts, models.WorkoutPull},
	{"Barbell Curl", models.MuscleBiceps, models.WorkoutPull},
	{"Hammer Curl", models.MuscleBiceps, models.WorkoutPull},

	// Legs
	{"Barbell Squat", models.MuscleQuads, models.WorkoutLegs},
	{"Front Squat", models.MuscleQuads, models.WorkoutLegs},
	{"Leg Press", models.MuscleQuads, models.WorkoutLegs},
	{"Bulgarian Split Squat", models.MuscleQuads, models.WorkoutLegs},
	{"Leg Extension", models.MuscleQuads, models.WorkoutLegs},
	{"Leg Curl", models.MuscleHamstrings, models.WorkoutLegs},
	{"Calf Raise", models.MuscleCalves, models.WorkoutLegs},
}

// SeedDefaultExercises inserts the bundled exercise catalog on first launch.
// Idempotent: once any seeded (non-custom) exercise exists, it does nothing,
// so re-running after the user deletes individual catalog entries does not
// resurrect them.
func (db *DB) SeedDefaultExercises(ctx context.Context) (int, error) {
	var count int
	err := db.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercises WHERE is_custom = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("checking seed state: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	err = db.WithTx(ctx, func(tx *Tx) error {
		now := time.Now().UTC()
		for _, e := range defaultExercises {
			_, err := tx.q.ExecContext(ctx,
				`INSERT INTO exercises (id, name, muscle_group, category, is_favorite, is_custom, created_at, notes)
				 VALUES (?, ?, ?, ?, 0, 0, ?, NULL)`,
				uuid.New(), e.name, string(e.muscleGroup), string(e.category), now)
			if err != nil {
				return fmt.Errorf("seeding %q: %w", e.name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
