// Package workout orchestrates the write flows: starting and finishing
// sessions, and the composite "log a set and react to PRs" transaction.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/pr"
	"github.com/liftlog/liftlog/internal/storage"
)

// Service coordinates the repository and the PR engine. The weight unit is
// only used for user-facing PR messages.
type Service struct {
	db   *storage.DB
	log  *slog.Logger
	unit string
}

// New creates a workout service over an opened store.
func New(db *storage.DB, unit string, log *slog.Logger) *Service {
	return &Service{db: db, log: log, unit: unit}
}

// LogResult is what the UI needs after a set is logged: the persisted set,
// whether it broke any record, and the celebration text when it did.
type LogResult struct {
	Set     models.Set
	IsNewPR bool
	Broken  []models.PRCategory
	Message string
}

// StartWorkout creates a new in-progress session.
func (s *Service) StartWorkout(ctx context.Context, workoutType models.WorkoutType, notes *string) (*models.WorkoutSession, error) {
	sess, err := s.db.CreateSession(ctx, workoutType, notes)
	if err != nil {
		return nil, err
	}
	s.log.Info("workout started", "session", sess.ID, "type", sess.WorkoutType)
	return sess, nil
}

// Finish stamps the session's end time.
func (s *Service) Finish(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.db.FinishSession(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info("workout finished", "session", sessionID)
	return nil
}

// ActiveSession returns the most recent session if it is still in progress,
// or nil when the last workout was finished (or none exists).
func (s *Service) ActiveSession(ctx context.Context) (*models.WorkoutSession, error) {
	sess, err := s.db.MostRecentSession(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sess.InProgress() {
		return nil, nil
	}
	return sess, nil
}

// LogSet validates and persists one set, detecting and recording any
// personal records in the same transaction:
//
//  1. validate weight/reps (and RPE when given) — no partial write on
//     rejection
//  2. set number = count of prior sets for this {session, exercise} + 1
//  3. PR check against the bests as they stand before this set
//  4. insert the set with its PR flag
//  5. append a PersonalRecord row per broken category
//
// The set and its records commit together, so a failure after the set write
// rolls the whole pair back rather than leaving a flagged set without a
// matching record.
func (s *Service) LogSet(ctx context.Context, sessionID, exerciseID uuid.UUID, weight float64, reps int, rpe *float64) (*LogResult, error) {
	if err := models.ValidateSetInput(weight, reps); err != nil {
		return nil, err
	}
	if err := models.ValidateRPE(rpe); err != nil {
		return nil, err
	}

	var result *LogResult
	err := s.db.WithTx(ctx, func(tx *storage.Tx) error {
		sess, err := tx.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if _, err := tx.GetExercise(ctx, exerciseID); err != nil {
			return err
		}

		count, err := tx.CountSets(ctx, sess.ID, exerciseID)
		if err != nil {
			return err
		}

		prevMax, err := tx.CurrentPR(ctx, exerciseID, models.PRMaxWeight)
		if err != nil {
			return err
		}
		prev1RM, err := tx.CurrentPR(ctx, exerciseID, models.PREstimated1RM)
		if err != nil {
			return err
		}

		check := pr.Check(prValue(prevMax), prValue(prev1RM), weight, reps)

		now := time.Now().UTC()
		set := models.Set{
			ID:         uuid.New(),
			SessionID:  sess.ID,
			ExerciseID: &exerciseID,
			SetNumber:  count + 1,
			Weight:     weight,
			Reps:       reps,
			RPE:        rpe,
			Timestamp:  now,
			IsPR:       check.IsNewPR,
		}
		if err := tx.InsertSet(ctx, set); err != nil {
			return err
		}

		for _, record := range pr.Records(set, check, now) {
			if err := tx.InsertPR(ctx, record); err != nil {
				return fmt.Errorf("recording PR after set write: %w", err)
			}
		}

		result = &LogResult{
			Set:     set,
			IsNewPR: check.IsNewPR,
			Broken:  check.Broken,
			Message: pr.Describe(check, weight, reps, s.unit),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("set logged",
		"session", sessionID,
		"exercise", exerciseID,
		"set_number", result.Set.SetNumber,
		"weight", weight,
		"reps", reps,
		"is_pr", result.IsNewPR,
	)
	return result, nil
}

// DeleteSet removes a logged set. PR rows stay untouched: records are
// history, not a running aggregate.
func (s *Service) DeleteSet(ctx context.Context, id uuid.UUID) error {
	return s.db.DeleteSet(ctx, id)
}

// DeleteWorkout removes a session and its sets.
func (s *Service) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	return s.db.DeleteSession(ctx, id)
}

// Summary describes a session for display: distinct exercises, total sets,
// and how many of them were PRs.
type Summary struct {
	Exercises int
	Sets      int
	PRs       int
}

func (sm Summary) String() string {
	out := fmt.Sprintf("%d exercises, %d sets", sm.Exercises, sm.Sets)
	if sm.PRs == 1 {
		out += ", 1 PR"
	} else if sm.PRs > 1 {
		out += fmt.Sprintf(", %d PRs", sm.PRs)
	}
	return out
}

// SessionSummary computes the display summary for one session.
func (s *Service) SessionSummary(ctx context.Context, sessionID uuid.UUID) (*Summary, error) {
	sets, err := s.db.ListSessionSets(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	exercises := make(map[uuid.UUID]struct{})
	sm := &Summary{Sets: len(sets)}
	for _, set := range sets {
		if set.ExerciseID != nil {
			exercises[*set.ExerciseID] = struct{}{}
		}
		if set.IsPR {
			sm.PRs++
		}
	}
	sm.Exercises = len(exercises)
	return sm, nil
}

func prValue(record *models.PersonalRecord) *float64 {
	if record == nil {
		return nil
	}
	return &record.Value
}
