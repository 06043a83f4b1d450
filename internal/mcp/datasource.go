package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools, so handlers can be
// tested against a fake store.
type DataSource interface {
	ListExercises(ctx context.Context, filter storage.ExerciseFilter) ([]models.Exercise, error)
	ListExercisesWithPRs(ctx context.Context) ([]models.Exercise, error)
	ListSessions(ctx context.Context, limit int, workoutType *models.WorkoutType) ([]models.WorkoutSession, error)
	MostRecentSession(ctx context.Context) (*models.WorkoutSession, error)
	ListSessionSets(ctx context.Context, sessionID uuid.UUID) ([]models.Set, error)
	ListRecentSets(ctx context.Context, exerciseID uuid.UUID, limit int) ([]models.Set, error)
	ListPRs(ctx context.Context, exerciseID uuid.UUID) ([]models.PersonalRecord, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
