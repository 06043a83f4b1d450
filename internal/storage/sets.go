package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

const setColumns = `id, session_id, exercise_id, set_number, weight, reps, rpe, timestamp, is_pr`

// InsertSet persists a fully-populated set row. Set numbering and PR
// detection happen in the workout service; this is the raw write.
func (s queries) InsertSet(ctx context.Context, set models.Set) error {
	var exerciseID uuid.NullUUID
	if set.ExerciseID != nil {
		exerciseID = uuid.NullUUID{UUID: *set.ExerciseID, Valid: true}
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO sets (id, session_id, exercise_id, set_number, weight, reps, rpe, timestamp, is_pr)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		set.ID, set.SessionID, exerciseID, set.SetNumber,
		set.Weight, set.Reps, set.RPE, set.Timestamp, set.IsPR)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// CountSets returns how many sets exist for the {session, exercise} pair.
// The next set number is this count plus one.
func (s queries) CountSets(ctx context.Context, sessionID, exerciseID uuid.UUID) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sets WHERE session_id = ? AND exercise_id = ?`,
		sessionID, exerciseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sets: %w", err)
	}
	return count, nil
}

// ListSessionSets returns all sets in a session in logged order.
func (s queries) ListSessionSets(ctx context.Context, sessionID uuid.UUID) ([]models.Set, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+setColumns+` FROM sets WHERE session_id = ? ORDER BY timestamp ASC, set_number ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	return scanSets(rows)
}

// ListRecentSets returns the most recent sets for an exercise, newest first.
func (s queries) ListRecentSets(ctx context.Context, exerciseID uuid.UUID, limit int) ([]models.Set, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+setColumns+` FROM sets WHERE exercise_id = ? ORDER BY timestamp DESC LIMIT ?`,
		exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sets: %w", err)
	}
	defer rows.Close()

	return scanSets(rows)
}

// DeleteSet removes a single set. PersonalRecord rows are never touched:
// records are append-only history even when their source set goes away.
func (s queries) DeleteSet(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSets(rows *sql.Rows) ([]models.Set, error) {
	var result []models.Set
	for rows.Next() {
		var set models.Set
		var exerciseID uuid.NullUUID
		if err := rows.Scan(&set.ID, &set.SessionID, &exerciseID, &set.SetNumber,
			&set.Weight, &set.Reps, &set.RPE, &set.Timestamp, &set.IsPR); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if exerciseID.Valid {
			id := exerciseID.UUID
			set.ExerciseID = &id
		}
		result = append(result, set)
	}
	return result, rows.Err()
}
