package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

const sessionColumns = `id, date, workout_type, start_time, end_time, notes`

// ListSessions returns workout sessions ordered by date descending.
// A limit of 0 means no limit; workoutType nil means all types.
func (s queries) ListSessions(ctx context.Context, limit int, workoutType *models.WorkoutType) ([]models.WorkoutSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM workout_sessions`
	var args []any

	if workoutType != nil {
		query += ` WHERE workout_type = ?`
		args = append(args, string(*workoutType))
	}
	query += ` ORDER BY date DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, *sess)
	}
	return result, rows.Err()
}

// GetSession retrieves a single workout session by ID.
func (s queries) GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return sess, nil
}

// MostRecentSession returns the latest session by date, or ErrNotFound when
// no workouts have ever been logged.
func (s queries) MostRecentSession(ctx context.Context) (*models.WorkoutSession, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions ORDER BY date DESC LIMIT 1`)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying most recent session: %w", err)
	}
	return sess, nil
}

// CreateSession starts a new workout session with date and start time now.
func (s queries) CreateSession(ctx context.Context, workoutType models.WorkoutType, notes *string) (*models.WorkoutSession, error) {
	if !workoutType.Valid() {
		return nil, &models.ValidationError{Field: "workout_type", Reason: fmt.Sprintf("unknown value %q", workoutType)}
	}

	now := time.Now().UTC()
	sess := &models.WorkoutSession{
		ID:          uuid.New(),
		Date:        now,
		WorkoutType: workoutType,
		StartTime:   now,
		Notes:       notes,
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO workout_sessions (id, date, workout_type, start_time, end_time, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Date, string(sess.WorkoutType), sess.StartTime, sess.EndTime, sess.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// FinishSession stamps the session's end time. Finishing an already-finished
// session is rejected so the end time cannot silently move.
func (s queries) FinishSession(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE workout_sessions SET end_time = ? WHERE id = ? AND end_time IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not in progress: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateSessionNotes replaces the session's free-text notes.
func (s queries) UpdateSessionNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE workout_sessions SET notes = ? WHERE id = ?`, notes, id)
	if err != nil {
		return fmt.Errorf("updating session notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating session notes: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSession removes a session and, via cascade, all of its sets.
func (s queries) DeleteSession(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM workout_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSession(row rowScanner) (*models.WorkoutSession, error) {
	var sess models.WorkoutSession
	var workoutType string
	if err := row.Scan(&sess.ID, &sess.Date, &workoutType,
		&sess.StartTime, &sess.EndTime, &sess.Notes); err != nil {
		return nil, err
	}
	sess.WorkoutType = models.WorkoutType(workoutType)
	return &sess, nil
}
