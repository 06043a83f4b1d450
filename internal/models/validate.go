package models

import "fmt"

// ValidationError marks caller input faults (as opposed to storage failures).
// The logging flow rejects these before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateSetInput checks the weight/reps pair for a set about to be logged.
func ValidateSetInput(weight float64, reps int) error {
	if weight <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be greater than zero"}
	}
	if reps <= 0 {
		return &ValidationError{Field: "reps", Reason: "must be greater than zero"}
	}
	return nil
}

// ValidateExerciseInput checks the fields for a new or renamed exercise.
func ValidateExerciseInput(name string, muscleGroup MuscleGroup, category WorkoutType) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !muscleGroup.Valid() {
		return &ValidationError{Field: "muscle_group", Reason: fmt.Sprintf("unknown value %q", muscleGroup)}
	}
	if !category.Valid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown value %q", category)}
	}
	return nil
}

// ValidateRPE checks an optional exertion rating. Nil is always valid.
func ValidateRPE(rpe *float64) error {
	if rpe == nil {
		return nil
	}
	if *rpe < 1 || *rpe > 10 {
		return &ValidationError{Field: "rpe", Reason: "must be between 1 and 10"}
	}
	return nil
}
