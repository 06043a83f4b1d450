package models

import "fmt"

// WorkoutType is the category axis shared by sessions and exercises. Values
// are stored as their display strings, so the set here must stay in sync
// with what the seed catalog and any historical rows use.
type WorkoutType string

const (
	WorkoutPush     WorkoutType = "Push"
	WorkoutPull     WorkoutType = "Pull"
	WorkoutLegs     WorkoutType = "Legs"
	WorkoutUpper    WorkoutType = "Upper"
	WorkoutLower    WorkoutType = "Lower"
	WorkoutFullBody WorkoutType = "Full Body"
	WorkoutCustom   WorkoutType = "Custom"
)

// WorkoutTypes lists all valid workout types in display order.
var WorkoutTypes = []WorkoutType{
	WorkoutPush, WorkoutPull, WorkoutLegs,
	WorkoutUpper, WorkoutLower, WorkoutFullBody, WorkoutCustom,
}

// Valid reports whether t is a known workout type.
func (t WorkoutType) Valid() bool {
	for _, v := range WorkoutTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (t WorkoutType) String() string { return string(t) }

// ParseWorkoutType converts a stored or user-supplied string into a
// WorkoutType, rejecting unknown values.
func ParseWorkoutType(s string) (WorkoutType, error) {
	t := WorkoutType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown workout type %q", s)
	}
	return t, nil
}

// MuscleGroup tags an exercise with its primary muscle.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "Chest"
	MuscleBack       MuscleGroup = "Back"
	MuscleShoulders  MuscleGroup = "Shoulders"
	MuscleBiceps     MuscleGroup = "Biceps"
	MuscleTriceps    MuscleGroup = "Triceps"
	MuscleQuads      MuscleGroup = "Quads"
	MuscleHamstrings MuscleGroup = "Hamstrings"
	MuscleGlutes     MuscleGroup = "Glutes"
	MuscleCalves     MuscleGroup = "Calves"
	MuscleAbs        MuscleGroup = "Abs"
	MuscleForearms   MuscleGroup = "Forearms"
	MuscleRearDelts  MuscleGroup = "Rear Delts"
)

// MuscleGroups lists all valid muscle groups in display order.
var MuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
	MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves, MuscleAbs,
	MuscleForearms, MuscleRearDelts,
}

// Valid reports whether m is a known muscle group.
func (m MuscleGroup) Valid() bool {
	for _, v := range MuscleGroups {
		if m == v {
			return true
		}
	}
	return false
}

func (m MuscleGroup) String() string { return string(m) }

// ParseMuscleGroup converts a stored or user-supplied string into a
// MuscleGroup, rejecting unknown values.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	m := MuscleGroup(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown muscle group %q", s)
	}
	return m, nil
}

// PRCategory identifies which kind of personal record a row represents.
// The storage representation keeps the original snake_case tags.
type PRCategory string

const (
	PRMaxWeight    PRCategory = "max_weight"
	PREstimated1RM PRCategory = "estimated_1rm"
)

// PRCategories lists all categories the PR engine checks.
var PRCategories = []PRCategory{PRMaxWeight, PREstimated1RM}

// Valid reports whether c is a known PR category.
func (c PRCategory) Valid() bool {
	for _, v := range PRCategories {
		if c == v {
			return true
		}
	}
	return false
}

func (c PRCategory) String() string { return string(c) }

// DisplayName returns the human-readable label for the category.
func (c PRCategory) DisplayName() string {
	switch c {
	case PRMaxWeight:
		return "Max Weight"
	case PREstimated1RM:
		return "Estimated 1RM"
	default:
		return string(c)
	}
}

// ParsePRCategory converts a stored string into a PRCategory, rejecting
// unknown values.
func ParsePRCategory(s string) (PRCategory, error) {
	c := PRCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown PR category %q", s)
	}
	return c, nil
}
