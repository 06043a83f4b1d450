package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatWeight renders a weight with at most one decimal place and the
// configured unit, e.g. "135 lbs" or "62.5 kg".
func FormatWeight(weight float64, unit string) string {
	return fmt.Sprintf("%s %s", trimDecimal(weight, 1), unit)
}

// FormatReps renders a rep count with the correct plural.
func FormatReps(reps int) string {
	if reps == 1 {
		return "1 rep"
	}
	return fmt.Sprintf("%d reps", reps)
}

// FormatSet renders a full set description, e.g. "135 lbs × 10".
func (s Set) FormatSet(unit string) string {
	return fmt.Sprintf("%s × %d", FormatWeight(s.Weight, unit), s.Reps)
}

// FormatRPE renders the exertion rating, or "" when none was recorded.
func (s Set) FormatRPE() string {
	if s.RPE == nil {
		return ""
	}
	return "RPE " + trimDecimal(*s.RPE, 1)
}

// FormatVolume renders a volume total without decimals, e.g. "12500 lbs".
func FormatVolume(volume float64, unit string) string {
	return fmt.Sprintf("%.0f %s", volume, unit)
}

// FormatTimerDuration renders a rest-timer preset, e.g. "30s", "2m", "1m 30s".
func FormatTimerDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	rem := seconds % 60
	if rem == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, rem)
}

// SmartDate renders a date relative to now: "Today", "Yesterday", the
// weekday name within the current week, "Jan 15" within the current year,
// and "Jan 15, 2024" otherwise.
func SmartDate(t, now time.Time) string {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return "Yesterday"
	}
	if SameWeek(t, now) {
		return t.Format("Monday")
	}
	if ty == ny {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

// SameWeek reports whether two times fall in the same ISO week.
func SameWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// StartOfWeek returns midnight on the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := t.Weekday()
	// time.Weekday starts at Sunday; shift so Monday opens the week.
	offset := (int(day) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// trimDecimal formats f with up to prec decimals, dropping trailing zeros
// ("135.0" → "135", "62.50" → "62.5").
func trimDecimal(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
