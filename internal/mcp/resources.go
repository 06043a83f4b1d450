package mcp

import (
	"context"
	"encoding/json"

	"github.com/liftlog/liftlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The 14 most recent workout sessions"),
	mcp.WithMIMEType("application/json"),
)

var resCurrentPRs = mcp.NewResource(
	"liftlog://current_prs",
	"Current Personal Records",
	mcp.WithResourceDescription("The standing PR in each category for every exercise that has records"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.ListSessions(ctx, 14, nil)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, sessions)
}

// exercisePRs pairs an exercise with its standing record per category.
type exercisePRs struct {
	Exercise models.Exercise                              `json:"exercise"`
	Current  map[models.PRCategory]models.PersonalRecord `json:"current"`
}

func (h *handlers) currentPRs(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercisesWithPRs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]exercisePRs, 0, len(exercises))
	for _, e := range exercises {
		prs, err := h.ds.ListPRs(ctx, e.ID)
		if err != nil {
			return nil, err
		}

		current := make(map[models.PRCategory]models.PersonalRecord)
		for _, record := range prs {
			best, ok := current[record.Category]
			if !ok || record.Value > best.Value {
				current[record.Category] = record
			}
		}
		out = append(out, exercisePRs{Exercise: e, Current: current})
	}

	return jsonContents(req.Params.URI, out)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
