// Package analytics computes derived read-only views over repository data:
// volume totals, training frequency, the workout rotation suggestion, and
// the grouping helpers the list screens need. Nothing here persists state.
package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

// TotalVolume sums weight × reps over the given sets.
func TotalVolume(sets []models.Set) float64 {
	var total float64
	for _, s := range sets {
		total += s.Volume()
	}
	return total
}

// Frequency returns workouts per week over the trailing window: the count
// of sessions dated within the last `weeks` weeks, divided by `weeks`.
func Frequency(sessions []models.WorkoutSession, weeks int, now time.Time) float64 {
	if weeks <= 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -7*weeks)
	count := 0
	for _, s := range sessions {
		if !s.Date.Before(cutoff) {
			count++
		}
	}
	return float64(count) / float64(weeks)
}

// WorkoutsThisWeek counts sessions dated in the current week (Monday-based).
func WorkoutsThisWeek(sessions []models.WorkoutSession, now time.Time) int {
	start := models.StartOfWeek(now)
	count := 0
	for _, s := range sessions {
		if !s.Date.Before(start) && !s.Date.After(now) {
			count++
		}
	}
	return count
}

// AveragePerWeek returns sessions per week since the earliest session, or 0
// when there is no history or no elapsed time.
func AveragePerWeek(sessions []models.WorkoutSession, now time.Time) float64 {
	if len(sessions) == 0 {
		return 0
	}
	earliest := sessions[0].Date
	for _, s := range sessions[1:] {
		if s.Date.Before(earliest) {
			earliest = s.Date
		}
	}
	weeks := now.Sub(earliest).Hours() / (7 * 24)
	if weeks <= 0 {
		return 0
	}
	return float64(len(sessions)) / weeks
}

// rotation maps each workout type to the suggested follow-up.
var rotation = map[models.WorkoutType]models.WorkoutType{
	models.WorkoutPush:     models.WorkoutPull,
	models.WorkoutPull:     models.WorkoutLegs,
	models.WorkoutLegs:     models.WorkoutPush,
	models.WorkoutUpper:    models.WorkoutLower,
	models.WorkoutLower:    models.WorkoutUpper,
	models.WorkoutFullBody: models.WorkoutFullBody,
}

// SuggestNext returns the workout type to suggest after the last session's
// type. With no history, or a type outside the rotation (Custom), the
// suggestion defaults to Push.
func SuggestNext(last *models.WorkoutType) models.WorkoutType {
	if last == nil {
		return models.WorkoutPush
	}
	if next, ok := rotation[*last]; ok {
		return next
	}
	return models.WorkoutPush
}

// ExerciseSets is one exercise's sets within a session, in set-number order.
type ExerciseSets struct {
	ExerciseID uuid.UUID
	Sets       []models.Set
}

// Volume returns the exercise's total volume within the session.
func (g ExerciseSets) Volume() float64 {
	return TotalVolume(g.Sets)
}

// GroupSetsByExercise splits a session's sets per exercise. Groups are
// ordered by first appearance in the session; sets within a group by set
// number. Sets whose exercise was deleted are skipped (nothing to group
// them under).
func GroupSetsByExercise(sets []models.Set) []ExerciseSets {
	index := make(map[uuid.UUID]int)
	var groups []ExerciseSets

	for _, s := range sets {
		if s.ExerciseID == nil {
			continue
		}
		id := *s.ExerciseID
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, ExerciseSets{ExerciseID: id})
		}
		groups[i].Sets = append(groups[i].Sets, s)
	}

	for i := range groups {
		sort.Slice(groups[i].Sets, func(a, b int) bool {
			return groups[i].Sets[a].SetNumber < groups[i].Sets[b].SetNumber
		})
	}
	return groups
}
