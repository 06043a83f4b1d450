package pr

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liftlog/liftlog/internal/models"
)

func ptr(v float64) *float64 { return &v }

// TestEstimated1RM verifies the Epley estimate, including the single-rep
// special case where the lifted weight is the max by definition.
func TestEstimated1RM(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{"single rep is the lift itself", 225, 1, 225},
		{"ten reps at 100", 100, 10, 133.3333},
		{"eight reps at 110", 110, 8, 139.3333},
		{"three reps at 90", 90, 3, 99},
		{"five reps at 200", 200, 5, 233.3333},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Estimated1RM(tc.weight, tc.reps)
			if math.Abs(got-tc.want) > 0.001 {
				t.Errorf("Estimated1RM(%v, %d) = %v, want %v", tc.weight, tc.reps, got, tc.want)
			}
		})
	}
}

// TestCheck_FirstAttempt verifies that with no previous bests, any valid set
// breaks both categories.
func TestCheck_FirstAttempt(t *testing.T) {
	res := Check(nil, nil, 135, 5)
	if !res.IsNewPR {
		t.Fatal("expected a new PR on first attempt")
	}
	if !res.BrokeCategory(models.PRMaxWeight) {
		t.Error("expected max weight to be broken on first attempt")
	}
	if !res.BrokeCategory(models.PREstimated1RM) {
		t.Error("expected estimated 1RM to be broken on first attempt")
	}
}

// TestCheck_StrictComparison verifies that ties never count: matching the
// standing best in either category is not a PR.
func TestCheck_StrictComparison(t *testing.T) {
	// Previous best: 100×10 → max weight 100, est. 1RM 133.33.
	prevMax := ptr(100.0)
	prev1RM := ptr(Estimated1RM(100, 10))

	res := Check(prevMax, prev1RM, 100, 10)
	if res.IsNewPR {
		t.Errorf("repeating the exact best set should not be a PR, broke %v", res.Broken)
	}
}

// TestCheck_CategoriesIndependent verifies that each category is judged on
// its own: a lighter set can still break the 1RM record, and a heavier set
// with few reps can break max weight without improving the 1RM estimate.
func TestCheck_CategoriesIndependent(t *testing.T) {
	cases := []struct {
		name    string
		prevMax *float64
		prev1RM *float64
		weight  float64
		reps    int
		wantMax bool
		want1RM bool
	}{
		{
			// 110×8 → est. 139.33 beats 120, but 110 < 120 max.
			name:    "lighter set breaks 1RM only",
			prevMax: ptr(120), prev1RM: ptr(120),
			weight: 110, reps: 8,
			wantMax: false, want1RM: true,
		},
		{
			// 90×3 → est. 99 does not beat 120.
			name:    "low volume breaks nothing",
			prevMax: ptr(120), prev1RM: ptr(120),
			weight: 90, reps: 3,
			wantMax: false, want1RM: false,
		},
		{
			// 125×1 → est. 125 beats the 120 max but not a 139 1RM.
			name:    "heavy single breaks max weight only",
			prevMax: ptr(120), prev1RM: ptr(139.33),
			weight: 125, reps: 1,
			wantMax: true, want1RM: false,
		},
		{
			name:    "big jump breaks both",
			prevMax: ptr(100), prev1RM: ptr(120),
			weight: 130, reps: 5,
			wantMax: true, want1RM: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Check(tc.prevMax, tc.prev1RM, tc.weight, tc.reps)
			if got := res.BrokeCategory(models.PRMaxWeight); got != tc.wantMax {
				t.Errorf("max weight broken = %v, want %v", got, tc.wantMax)
			}
			if got := res.BrokeCategory(models.PREstimated1RM); got != tc.want1RM {
				t.Errorf("estimated 1RM broken = %v, want %v", got, tc.want1RM)
			}
			if res.IsNewPR != (tc.wantMax || tc.want1RM) {
				t.Errorf("IsNewPR = %v, inconsistent with broken categories", res.IsNewPR)
			}
		})
	}
}

// TestRecords verifies that a double break produces one row per category with
// the right values, and that the rows reference the originating set.
func TestRecords(t *testing.T) {
	exerciseID := uuid.New()
	set := models.Set{
		ID:         uuid.New(),
		ExerciseID: &exerciseID,
		Weight:     130,
		Reps:       5,
	}
	achievedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	res := Check(ptr(100), ptr(120), 130, 5)
	records := Records(set, res, achievedAt)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	byCategory := map[models.PRCategory]models.PersonalRecord{}
	for _, r := range records {
		byCategory[r.Category] = r
	}

	maxRec, ok := byCategory[models.PRMaxWeight]
	if !ok {
		t.Fatal("missing max weight record")
	}
	if maxRec.Value != 130 {
		t.Errorf("max weight value = %v, want 130", maxRec.Value)
	}

	ormRec, ok := byCategory[models.PREstimated1RM]
	if !ok {
		t.Fatal("missing estimated 1RM record")
	}
	if want := Estimated1RM(130, 5); math.Abs(ormRec.Value-want) > 0.001 {
		t.Errorf("estimated 1RM value = %v, want %v", ormRec.Value, want)
	}

	for _, r := range records {
		if r.ExerciseID != exerciseID {
			t.Errorf("record exercise = %v, want %v", r.ExerciseID, exerciseID)
		}
		if r.SetID == nil || *r.SetID != set.ID {
			t.Errorf("record set reference = %v, want %v", r.SetID, set.ID)
		}
		if r.Reps != 5 {
			t.Errorf("record reps = %d, want 5", r.Reps)
		}
		if !r.AchievedAt.Equal(achievedAt) {
			t.Errorf("record achieved at %v, want %v", r.AchievedAt, achievedAt)
		}
	}
}

// TestRecords_NoExercise verifies that a set without an exercise reference
// produces no record rows.
func TestRecords_NoExercise(t *testing.T) {
	set := models.Set{ID: uuid.New(), Weight: 100, Reps: 5}
	res := Check(nil, nil, 100, 5)
	if records := Records(set, res, time.Now()); records != nil {
		t.Errorf("expected nil records for orphan set, got %d rows", len(records))
	}
}

// TestDescribe verifies the celebration text for improvements over a
// previous best and for first-ever records.
func TestDescribe(t *testing.T) {
	cases := []struct {
		name string
		res  Result
		want []string
	}{
		{
			name: "improvement over both",
			res:  Check(ptr(100), ptr(120), 130, 5),
			want: []string{"Max weight PR! +30.0 lbs", "Est. 1RM PR!"},
		},
		{
			name: "first ever",
			res:  Check(nil, nil, 130, 5),
			want: []string{"First max weight PR!", "First 1RM PR!"},
		},
		{
			name: "no PR",
			res:  Check(ptr(200), ptr(250), 130, 5),
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Describe(tc.res, 130, 5, "lbs")
			if len(tc.want) == 0 {
				if got != "" {
					t.Errorf("expected empty description, got %q", got)
				}
				return
			}
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("description %q missing %q", got, fragment)
				}
			}
		})
	}
}

// TestHistory verifies filtering by category and chronological ordering
// regardless of input order.
func TestHistory(t *testing.T) {
	exerciseID := uuid.New()
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	}
	prs := []models.PersonalRecord{
		{ExerciseID: exerciseID, Category: models.PREstimated1RM, Value: 140, AchievedAt: day(20)},
		{ExerciseID: exerciseID, Category: models.PRMaxWeight, Value: 120, AchievedAt: day(5)},
		{ExerciseID: exerciseID, Category: models.PREstimated1RM, Value: 133, AchievedAt: day(5)},
	}

	points := History(prs, models.PREstimated1RM)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Value != 133 || points[1].Value != 140 {
		t.Errorf("points out of order: %v", points)
	}
}

// TestImprovementRate verifies the weekly 1RM slope and the guard cases
// (too few rows, zero elapsed time).
func TestImprovementRate(t *testing.T) {
	exerciseID := uuid.New()
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	mk := func(value float64, at time.Time) models.PersonalRecord {
		return models.PersonalRecord{
			ExerciseID: exerciseID,
			Category:   models.PREstimated1RM,
			Value:      value,
			AchievedAt: at,
		}
	}

	t.Run("two weeks apart", func(t *testing.T) {
		prs := []models.PersonalRecord{
			mk(133, base),
			mk(143, base.AddDate(0, 0, 14)),
		}
		rate := ImprovementRate(prs)
		if rate == nil {
			t.Fatal("expected a rate")
		}
		if math.Abs(*rate-5.0) > 0.001 {
			t.Errorf("rate = %v, want 5.0 per week", *rate)
		}
	})

	t.Run("single row", func(t *testing.T) {
		if rate := ImprovementRate([]models.PersonalRecord{mk(133, base)}); rate != nil {
			t.Errorf("expected nil rate for a single row, got %v", *rate)
		}
	})

	t.Run("same instant", func(t *testing.T) {
		prs := []models.PersonalRecord{mk(133, base), mk(140, base)}
		if rate := ImprovementRate(prs); rate != nil {
			t.Errorf("expected nil rate when no time elapsed, got %v", *rate)
		}
	})
}
