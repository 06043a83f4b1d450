package pr

import (
	"sort"
	"time"

	"github.com/liftlog/liftlog/internal/models"
)

// Point is one entry in a PR progression series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// History returns the chronological (date, value) series for one category,
// suitable for charting. Input order does not matter.
func History(prs []models.PersonalRecord, category models.PRCategory) []Point {
	var points []Point
	for _, p := range prs {
		if p.Category == category {
			points = append(points, Point{Date: p.AchievedAt, Value: p.Value})
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// ImprovementRate returns the average weekly gain in estimated 1RM between
// the earliest and latest best-1RM records, or nil when fewer than two rows
// exist or no time elapsed between them.
func ImprovementRate(prs []models.PersonalRecord) *float64 {
	points := History(prs, models.PREstimated1RM)
	if len(points) < 2 {
		return nil
	}

	first, last := points[0], points[len(points)-1]
	weeks := last.Date.Sub(first.Date).Hours() / (7 * 24)
	if weeks <= 0 {
		return nil
	}

	rate := (last.Value - first.Value) / weeks
	return &rate
}
