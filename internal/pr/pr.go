// Package pr holds the personal-record engine: the Epley one-rep-max
// estimate, pure PR detection over the previous bests, and construction of
// the append-only record rows a broken category produces.
package pr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

// Estimated1RM estimates the one-rep max for a set using the Epley formula:
// weight × (1 + reps/30). For a single rep the lift itself is the max.
// The estimate degrades for rep counts far outside 1-10; that is a known
// property of the formula, not something callers should correct for.
func Estimated1RM(weight float64, reps int) float64 {
	if reps == 1 {
		return weight
	}
	return weight * (1.0 + float64(reps)/30.0)
}

// Result describes the outcome of a PR check for one attempted set.
type Result struct {
	IsNewPR bool
	// Broken lists the categories this set beats, in check order.
	Broken []models.PRCategory
	// Previous bests at check time; nil when the category had never been
	// achieved for this exercise.
	PrevMaxWeight *float64
	PrevBest1RM   *float64
}

// BrokeCategory reports whether the given category is among the broken ones.
func (r Result) BrokeCategory(c models.PRCategory) bool {
	for _, b := range r.Broken {
		if b == c {
			return true
		}
	}
	return false
}

// Check decides which PR categories a weight/reps attempt breaks, given the
// exercise's standing bests. Pure: the caller fetches the previous values
// (which must not include the attempt itself) and persists the outcome.
//
// Both categories are strict: a tie never counts. A missing previous best
// means the first valid attempt always sets the record.
func Check(prevMaxWeight, prevBest1RM *float64, weight float64, reps int) Result {
	res := Result{
		PrevMaxWeight: prevMaxWeight,
		PrevBest1RM:   prevBest1RM,
	}

	if prevMaxWeight == nil || weight > *prevMaxWeight {
		res.Broken = append(res.Broken, models.PRMaxWeight)
	}

	current1RM := Estimated1RM(weight, reps)
	if prevBest1RM == nil || current1RM > *prevBest1RM {
		res.Broken = append(res.Broken, models.PREstimated1RM)
	}

	res.IsNewPR = len(res.Broken) > 0
	return res
}

// Records builds the PersonalRecord rows for a set that broke one or more
// categories. Rows are append-only; nothing existing is modified.
func Records(set models.Set, res Result, achievedAt time.Time) []models.PersonalRecord {
	if set.ExerciseID == nil {
		return nil
	}

	var records []models.PersonalRecord
	for _, category := range res.Broken {
		value := set.Weight
		if category == models.PREstimated1RM {
			value = Estimated1RM(set.Weight, set.Reps)
		}
		setID := set.ID
		records = append(records, models.PersonalRecord{
			ID:         uuid.New(),
			ExerciseID: *set.ExerciseID,
			Category:   category,
			Value:      value,
			Reps:       set.Reps,
			AchievedAt: achievedAt,
			SetID:      &setID,
		})
	}
	return records
}

// Describe renders the celebration text for a PR result, one line per broken
// category, e.g. "Max weight PR! +10.0 lbs". Returns "" when nothing broke.
func Describe(res Result, weight float64, reps int, unit string) string {
	if !res.IsNewPR {
		return ""
	}

	var lines []string
	if res.BrokeCategory(models.PRMaxWeight) {
		if res.PrevMaxWeight != nil {
			lines = append(lines, fmt.Sprintf("Max weight PR! +%.1f %s", weight-*res.PrevMaxWeight, unit))
		} else {
			lines = append(lines, "First max weight PR!")
		}
	}
	if res.BrokeCategory(models.PREstimated1RM) {
		current1RM := Estimated1RM(weight, reps)
		if res.PrevBest1RM != nil {
			lines = append(lines, fmt.Sprintf("Est. 1RM PR! +%.1f %s", current1RM-*res.PrevBest1RM, unit))
		} else {
			lines = append(lines, "First 1RM PR!")
		}
	}
	return strings.Join(lines, "\n")
}
