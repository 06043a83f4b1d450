package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Exercise is a reusable movement template, either seeded from the bundled
// catalog (IsCustom=false) or created by the user.
type Exercise struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	MuscleGroup MuscleGroup `json:"muscle_group"`
	Category    WorkoutType `json:"category"`
	IsFavorite  bool        `json:"is_favorite"`
	IsCustom    bool        `json:"is_custom"`
	CreatedAt   time.Time   `json:"created_at"`
	Notes       *string     `json:"notes,omitempty"`
}

// WorkoutSession is one training occasion. EndTime is nil while the session
// is in progress.
type WorkoutSession struct {
	ID          uuid.UUID   `json:"id"`
	Date        time.Time   `json:"date"`
	WorkoutType WorkoutType `json:"workout_type"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     *time.Time  `json:"end_time,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
}

// InProgress reports whether the session has not been finished yet.
func (s WorkoutSession) InProgress() bool {
	return s.EndTime == nil
}

// Duration returns the session length, or nil while in progress.
func (s WorkoutSession) Duration() *time.Duration {
	if s.EndTime == nil {
		return nil
	}
	d := s.EndTime.Sub(s.StartTime)
	return &d
}

// FormatDuration renders the session length as "1h 23m", or "In progress"
// for an unfinished session.
func (s WorkoutSession) FormatDuration() string {
	d := s.Duration()
	if d == nil {
		return "In progress"
	}
	hours := int(d.Seconds()) / 3600
	minutes := (int(d.Seconds()) % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Set is one logged performance of an exercise within a session. Sets are
// immutable after creation; the IsPR flag is computed once at logging time
// and never recomputed. ExerciseID is nil when the exercise was later
// deleted (historical sets are kept, detached).
type Set struct {
	ID         uuid.UUID  `json:"id"`
	SessionID  uuid.UUID  `json:"session_id"`
	ExerciseID *uuid.UUID `json:"exercise_id,omitempty"`
	SetNumber  int        `json:"set_number"`
	Weight     float64    `json:"weight"`
	Reps       int        `json:"reps"`
	RPE        *float64   `json:"rpe,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	IsPR       bool       `json:"is_pr"`
}

// Volume returns weight × reps for this set.
func (s Set) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// PersonalRecord is one best-ever value for an exercise in one category.
// Rows are append-only: a new record is inserted each time a category is
// broken, and prior rows are never touched.
type PersonalRecord struct {
	ID         uuid.UUID  `json:"id"`
	ExerciseID uuid.UUID  `json:"exercise_id"`
	Category   PRCategory `json:"category"`
	Value      float64    `json:"value"`
	Reps       int        `json:"reps"`
	AchievedAt time.Time  `json:"achieved_at"`
	SetID      *uuid.UUID `json:"set_id,omitempty"`
}
