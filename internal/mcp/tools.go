package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/liftlog/liftlog/internal/analytics"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/pr"
	"github.com/liftlog/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List exercises in the catalog, optionally filtered by name substring, category, or favorites."),
	mcp.WithString("name", mcp.Description("Filter by name substring (case-insensitive, e.g. 'bench')")),
	mcp.WithString("category", mcp.Description("Filter by workout category"), mcp.Enum("Push", "Pull", "Legs", "Upper", "Lower", "Full Body", "Custom")),
	mcp.WithBoolean("favorites_only", mcp.Description("Only return favorite exercises")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List workout sessions, most recent first. Includes date, type, start/end time, and notes."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 20.")),
	mcp.WithString("type", mcp.Description("Filter by workout type"), mcp.Enum("Push", "Pull", "Legs", "Upper", "Lower", "Full Body", "Custom")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("List logged sets for an exercise, newest first. Each set has weight, reps, set number, optional RPE, and a PR flag."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match, e.g. 'bench press')")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sets to return. Defaults to 20.")),
)

var toolGetPRs = mcp.NewTool("get_prs",
	mcp.WithDescription("List personal records for an exercise, most recent first. Categories: max_weight and estimated_1rm (Epley formula)."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match)")),
)

var toolGetPRProgress = mcp.NewTool("get_pr_progress",
	mcp.WithDescription("Estimated-1RM progression for an exercise: chronological (date, value) series plus the average weekly improvement."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match)")),
)

var toolGetVolumeSummary = mcp.NewTool("get_volume_summary",
	mcp.WithDescription("Per-session training volume (sum of weight × reps) over recent workouts, plus workout frequency per week."),
	mcp.WithNumber("limit", mcp.Description("Number of recent sessions to include. Defaults to 10.")),
)

var toolSuggestNextWorkout = mcp.NewTool("suggest_next_workout",
	mcp.WithDescription("Suggest the next workout type based on the most recent session (Push→Pull→Legs rotation, Upper↔Lower)."),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := storage.ExerciseFilter{
		NameContains:  req.GetString("name", ""),
		FavoritesOnly: req.GetBool("favorites_only", false),
	}
	if cat := req.GetString("category", ""); cat != "" {
		wt, err := models.ParseWorkoutType(cat)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter.Category = &wt
	}

	exercises, err := h.ds.ListExercises(ctx, filter)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 20)

	var workoutType *models.WorkoutType
	if t := req.GetString("type", ""); t != "" {
		wt, err := models.ParseWorkoutType(t)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		workoutType = &wt
	}

	sessions, err := h.ds.ListSessions(ctx, limit, workoutType)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	limit := req.GetInt("limit", 20)

	exercise, err := h.resolveExercise(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sets, err := h.ds.ListRecentSets(ctx, exercise.ID, limit)
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"sets":     sets,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPRs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	exercise, err := h.resolveExercise(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prs, err := h.ds.ListPRs(ctx, exercise.ID)
	if err != nil {
		h.log.Error("mcp get_prs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"records":  prs,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPRProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	exercise, err := h.resolveExercise(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	prs, err := h.ds.ListPRs(ctx, exercise.ID)
	if err != nil {
		h.log.Error("mcp get_pr_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise":                exercise,
		"series":                  pr.History(prs, models.PREstimated1RM),
		"weekly_improvement_rate": pr.ImprovementRate(prs),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// sessionVolume is one row of the volume summary.
type sessionVolume struct {
	SessionID   string    `json:"session_id"`
	Date        time.Time `json:"date"`
	WorkoutType string    `json:"workout_type"`
	Sets        int       `json:"sets"`
	Volume      float64   `json:"volume"`
}

func (h *handlers) getVolumeSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)

	sessions, err := h.ds.ListSessions(ctx, limit, nil)
	if err != nil {
		h.log.Error("mcp get_volume_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	summary := make([]sessionVolume, 0, len(sessions))
	for _, sess := range sessions {
		sets, err := h.ds.ListSessionSets(ctx, sess.ID)
		if err != nil {
			h.log.Error("mcp get_volume_summary", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		summary = append(summary, sessionVolume{
			SessionID:   sess.ID.String(),
			Date:        sess.Date,
			WorkoutType: string(sess.WorkoutType),
			Sets:        len(sets),
			Volume:      analytics.TotalVolume(sets),
		})
	}

	// Frequency covers a fixed 4-week window, so it must see every session
	// in that window, not just the limit-truncated page above.
	allSessions, err := h.ds.ListSessions(ctx, 0, nil)
	if err != nil {
		h.log.Error("mcp get_volume_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"sessions":          summary,
		"workouts_per_week": analytics.Frequency(allSessions, 4, time.Now()),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestNextWorkout(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var last *models.WorkoutType
	sess, err := h.ds.MostRecentSession(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// No history: the default suggestion applies.
	case err != nil:
		h.log.Error("mcp suggest_next_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	default:
		last = &sess.WorkoutType
	}

	suggestion := analytics.SuggestNext(last)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"suggestion":   suggestion,
		"last_workout": last,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// resolveExercise finds the exercise whose name matches the query. An exact
// (case-insensitive) match wins; otherwise a unique substring match is
// accepted, and anything ambiguous is reported with the candidates.
func (h *handlers) resolveExercise(ctx context.Context, name string) (*models.Exercise, error) {
	matches, err := h.ds.ListExercises(ctx, storage.ExerciseFilter{NameContains: name})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no exercise matches %q", name)
	}

	for i := range matches {
		if strings.EqualFold(matches[i].Name, name) {
			return &matches[i], nil
		}
	}
	if len(matches) == 1 {
		return &matches[0], nil
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return nil, fmt.Errorf("%q is ambiguous, matches: %s", name, strings.Join(names, ", "))
}
