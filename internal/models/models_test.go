package models

import (
	"errors"
	"testing"
	"time"
)

// TestSessionDuration verifies the duration of a finished session and the
// nil duration of one still in progress.
func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, 3, 19, 17, 0, 0, 0, time.UTC)

	active := WorkoutSession{StartTime: start}
	if !active.InProgress() {
		t.Error("session without end time should be in progress")
	}
	if active.Duration() != nil {
		t.Error("expected nil duration for active session")
	}
	if got := active.FormatDuration(); got != "In progress" {
		t.Errorf("FormatDuration = %q, want %q", got, "In progress")
	}

	end := start.Add(83 * time.Minute)
	done := WorkoutSession{StartTime: start, EndTime: &end}
	if done.InProgress() {
		t.Error("session with end time should not be in progress")
	}
	if got := done.FormatDuration(); got != "1h 23m" {
		t.Errorf("FormatDuration = %q, want %q", got, "1h 23m")
	}

	short := start.Add(45 * time.Minute)
	if got := (WorkoutSession{StartTime: start, EndTime: &short}).FormatDuration(); got != "45m" {
		t.Errorf("FormatDuration = %q, want %q", got, "45m")
	}
}

// TestSetVolume verifies the weight × reps product.
func TestSetVolume(t *testing.T) {
	s := Set{Weight: 102.5, Reps: 8}
	if got := s.Volume(); got != 820 {
		t.Errorf("Volume = %v, want 820", got)
	}
}

// TestValidateSetInput verifies that non-positive weight or reps are rejected
// with a ValidationError naming the offending field.
func TestValidateSetInput(t *testing.T) {
	cases := []struct {
		name      string
		weight    float64
		reps      int
		wantField string
	}{
		{"valid", 135, 10, ""},
		{"zero weight", 0, 10, "weight"},
		{"negative weight", -5, 10, "weight"},
		{"zero reps", 135, 0, "reps"},
		{"negative reps", 135, -1, "reps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSetInput(tc.weight, tc.reps)
			if tc.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("error field = %q, want %q", verr.Field, tc.wantField)
			}
		})
	}
}

// TestValidateRPE verifies the 1-10 range and that nil means "not recorded".
func TestValidateRPE(t *testing.T) {
	if err := ValidateRPE(nil); err != nil {
		t.Errorf("nil RPE should be valid, got %v", err)
	}
	ok := 7.5
	if err := ValidateRPE(&ok); err != nil {
		t.Errorf("RPE 7.5 should be valid, got %v", err)
	}
	low, high := 0.5, 10.5
	if err := ValidateRPE(&low); err == nil {
		t.Error("RPE 0.5 should be rejected")
	}
	if err := ValidateRPE(&high); err == nil {
		t.Error("RPE 10.5 should be rejected")
	}
}

// TestValidateExerciseInput verifies name, muscle group, and category checks.
func TestValidateExerciseInput(t *testing.T) {
	if err := ValidateExerciseInput("Bench Press", MuscleChest, WorkoutPush); err != nil {
		t.Errorf("valid exercise rejected: %v", err)
	}
	if err := ValidateExerciseInput("", MuscleChest, WorkoutPush); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := ValidateExerciseInput("Bench Press", MuscleGroup("Wings"), WorkoutPush); err == nil {
		t.Error("unknown muscle group should be rejected")
	}
	if err := ValidateExerciseInput("Bench Press", MuscleChest, WorkoutType("Cardio")); err == nil {
		t.Error("unknown category should be rejected")
	}
}

// TestParseEnums verifies round-trip parsing and rejection of unknown values
// for the three string enums.
func TestParseEnums(t *testing.T) {
	if got, err := ParseWorkoutType("Full Body"); err != nil || got != WorkoutFullBody {
		t.Errorf("ParseWorkoutType(Full Body) = %v, %v", got, err)
	}
	if _, err := ParseWorkoutType("Cardio"); err == nil {
		t.Error("expected error for unknown workout type")
	}

	if got, err := ParseMuscleGroup("Rear Delts"); err != nil || got != MuscleRearDelts {
		t.Errorf("ParseMuscleGroup(Rear Delts) = %v, %v", got, err)
	}
	if _, err := ParseMuscleGroup("Wings"); err == nil {
		t.Error("expected error for unknown muscle group")
	}

	if got, err := ParsePRCategory("estimated_1rm"); err != nil || got != PREstimated1RM {
		t.Errorf("ParsePRCategory(estimated_1rm) = %v, %v", got, err)
	}
	if _, err := ParsePRCategory("max_volume"); err == nil {
		t.Error("expected error for unknown PR category")
	}
}

// TestPRCategoryDisplayName verifies the human-readable labels.
func TestPRCategoryDisplayName(t *testing.T) {
	if got := PRMaxWeight.DisplayName(); got != "Max Weight" {
		t.Errorf("DisplayName = %q, want %q", got, "Max Weight")
	}
	if got := PREstimated1RM.DisplayName(); got != "Estimated 1RM" {
		t.Errorf("DisplayName = %q, want %q", got, "Estimated 1RM")
	}
}
