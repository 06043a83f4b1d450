package analytics

import (
	"sort"
	"time"

	"github.com/liftlog/liftlog/internal/models"
)

// SessionGroup is one bucket of the history list: a label ("Today",
// "This Week", "January 2024") and the sessions that fall into it.
type SessionGroup struct {
	Label    string
	Sessions []models.WorkoutSession
}

// Fixed bucket order ahead of the month-year buckets.
var bucketOrder = []string{"Today", "Yesterday", "This Week", "This Month"}

// GroupSessions buckets sessions for the history screen: Today, Yesterday,
// This Week, This Month, then month-year buckets newest first. A session
// lands in the first bucket it matches, in that order. Sessions inside a
// bucket keep their input order (callers pass them date descending).
func GroupSessions(sessions []models.WorkoutSession, now time.Time) []SessionGroup {
	grouped := make(map[string][]models.WorkoutSession)
	for _, s := range sessions {
		label := bucketLabel(s.Date, now)
		grouped[label] = append(grouped[label], s)
	}

	var groups []SessionGroup
	for _, label := range bucketOrder {
		if list, ok := grouped[label]; ok {
			groups = append(groups, SessionGroup{Label: label, Sessions: list})
			delete(grouped, label)
		}
	}

	// Remaining buckets are month-year labels, sorted newest first by the
	// date of their first (most recent) session.
	var rest []SessionGroup
	for label, list := range grouped {
		rest = append(rest, SessionGroup{Label: label, Sessions: list})
	}
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].Sessions[0].Date.After(rest[j].Sessions[0].Date)
	})
	return append(groups, rest...)
}

func bucketLabel(date, now time.Time) string {
	if sameDay(date, now) {
		return "Today"
	}
	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	if models.SameWeek(date, now) {
		return "This Week"
	}
	if date.Year() == now.Year() && date.Month() == now.Month() {
		return "This Month"
	}
	return date.Format("January 2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
