package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

const prColumns = `id, exercise_id, record_type, value, reps, achieved_at, set_id`

// ListPRs returns all PR rows for an exercise, most recent first.
func (s queries) ListPRs(ctx context.Context, exerciseID uuid.UUID) ([]models.PersonalRecord, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+prColumns+` FROM personal_records WHERE exercise_id = ? ORDER BY achieved_at DESC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying PRs: %w", err)
	}
	defer rows.Close()

	var result []models.PersonalRecord
	for rows.Next() {
		pr, err := scanPR(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning PR: %w", err)
		}
		result = append(result, *pr)
	}
	return result, rows.Err()
}

// CurrentPR returns the standing record for one {exercise, category}: the
// row with the highest value, ties broken by most recent achievement. Under
// the strict-increase invariant the two definitions coincide; ordering by
// value first keeps the answer right even if out-of-order rows ever appear.
// Returns (nil, nil) when the category has never been achieved.
func (s queries) CurrentPR(ctx context.Context, exerciseID uuid.UUID, category models.PRCategory) (*models.PersonalRecord, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+prColumns+` FROM personal_records
		 WHERE exercise_id = ? AND record_type = ?
		 ORDER BY value DESC, achieved_at DESC LIMIT 1`,
		exerciseID, string(category))

	pr, err := scanPR(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying current PR: %w", err)
	}
	return pr, nil
}

// InsertPR appends a new personal record row. Existing rows are never
// updated or deleted.
func (s queries) InsertPR(ctx context.Context, pr models.PersonalRecord) error {
	var setID uuid.NullUUID
	if pr.SetID != nil {
		setID = uuid.NullUUID{UUID: *pr.SetID, Valid: true}
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO personal_records (id, exercise_id, record_type, value, reps, achieved_at, set_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pr.ID, pr.ExerciseID, string(pr.Category), pr.Value, pr.Reps, pr.AchievedAt, setID)
	if err != nil {
		return fmt.Errorf("inserting PR: %w", err)
	}
	return nil
}

func scanPR(row rowScanner) (*models.PersonalRecord, error) {
	var pr models.PersonalRecord
	var category string
	var setID uuid.NullUUID
	if err := row.Scan(&pr.ID, &pr.ExerciseID, &category,
		&pr.Value, &pr.Reps, &pr.AchievedAt, &setID); err != nil {
		return nil, err
	}
	pr.Category = models.PRCategory(category)
	if setID.Valid {
		id := setID.UUID
		pr.SetID = &id
	}
	return &pr, nil
}
