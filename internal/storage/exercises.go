package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

// ExerciseFilter narrows ListExercises. Zero value matches everything.
type ExerciseFilter struct {
	NameContains  string
	Category      *models.WorkoutType
	FavoritesOnly bool
}

// ExerciseUpdate carries partial field updates; nil fields are left as-is.
type ExerciseUpdate struct {
	Name        *string
	MuscleGroup *models.MuscleGroup
	Category    *models.WorkoutType
	IsFavorite  *bool
	Notes       *string
}

const exerciseColumns = `id, name, muscle_group, category, is_favorite, is_custom, created_at, notes`

// ListExercises returns exercises matching the filter, ordered by name.
func (s queries) ListExercises(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	var conds []string
	var args []any

	if filter.NameContains != "" {
		conds = append(conds, `name LIKE ? COLLATE NOCASE`)
		args = append(args, "%"+filter.NameContains+"%")
	}
	if filter.Category != nil {
		conds = append(conds, `category = ?`)
		args = append(args, string(*filter.Category))
	}
	if filter.FavoritesOnly {
		conds = append(conds, `is_favorite = 1`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY name ASC`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// GetExercise retrieves a single exercise by ID.
func (s queries) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)

	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return e, nil
}

// CreateExercise inserts a user-created exercise (is_custom=1, not favorite).
func (s queries) CreateExercise(ctx context.Context, name string, muscleGroup models.MuscleGroup, category models.WorkoutType) (*models.Exercise, error) {
	if err := models.ValidateExerciseInput(name, muscleGroup, category); err != nil {
		return nil, err
	}

	e := &models.Exercise{
		ID:          uuid.New(),
		Name:        name,
		MuscleGroup: muscleGroup,
		Category:    category,
		IsCustom:    true,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO exercises (id, name, muscle_group, category, is_favorite, is_custom, created_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, string(e.MuscleGroup), string(e.Category), e.IsFavorite, e.IsCustom, e.CreatedAt, e.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return e, nil
}

// UpdateExercise applies the non-nil fields of upd to an existing exercise.
func (s queries) UpdateExercise(ctx context.Context, id uuid.UUID, upd ExerciseUpdate) error {
	var sets []string
	var args []any

	if upd.Name != nil {
		if *upd.Name == "" {
			return &models.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		sets = append(sets, `name = ?`)
		args = append(args, *upd.Name)
	}
	if upd.MuscleGroup != nil {
		if !upd.MuscleGroup.Valid() {
			return &models.ValidationError{Field: "muscle_group", Reason: fmt.Sprintf("unknown value %q", *upd.MuscleGroup)}
		}
		sets = append(sets, `muscle_group = ?`)
		args = append(args, string(*upd.MuscleGroup))
	}
	if upd.Category != nil {
		if !upd.Category.Valid() {
			return &models.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown value %q", *upd.Category)}
		}
		sets = append(sets, `category = ?`)
		args = append(args, string(*upd.Category))
	}
	if upd.IsFavorite != nil {
		sets = append(sets, `is_favorite = ?`)
		args = append(args, *upd.IsFavorite)
	}
	if upd.Notes != nil {
		sets = append(sets, `notes = ?`)
		args = append(args, *upd.Notes)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.q.ExecContext(ctx,
		`UPDATE exercises SET `+strings.Join(sets, `, `)+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating exercise: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteExercise removes an exercise. Historical sets are detached
// (exercise reference nulled) and its PR rows are deleted, per the schema's
// foreign key actions.
func (s queries) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListExercisesWithPRs returns exercises that have at least one PR row,
// ordered by name.
func (s queries) ListExercisesWithPRs(ctx context.Context) ([]models.Exercise, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE id IN (SELECT DISTINCT exercise_id FROM personal_records)
		 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises with PRs: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var muscleGroup, category string
	if err := row.Scan(&e.ID, &e.Name, &muscleGroup, &category,
		&e.IsFavorite, &e.IsCustom, &e.CreatedAt, &e.Notes); err != nil {
		return nil, err
	}
	e.MuscleGroup = models.MuscleGroup(muscleGroup)
	e.Category = models.WorkoutType(category)
	return &e, nil
}

func scanExercises(rows *sql.Rows) ([]models.Exercise, error) {
	var result []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}
