// Package week tracks which calendar week of the timetable is selected and
// filters schedules down to the entries active in that week. The selection is
// a (week, setAt) pair anchored to a Monday week start; it rolls forward
// automatically as calendar weeks pass and is re-derived from wall-clock time
// on every read, never trusted stale across a week boundary.
package week

import (
	"math"
	"slices"
	"time"

	"github.com/studyzen/studyzen/server/service/draft"
)

// State is the persisted "which week is selected" pair.
type State struct {
	// Week is the 1-based selected week number.
	Week int `json:"week"`
	// SetAt is the start-of-week instant the selection was last pinned at.
	// It is always a week boundary, never an arbitrary time.
	SetAt time.Time `json:"setAt"`
}

// StartOfWeek normalizes t to midnight of the most recent Monday in t's
// location (ISO-style week start, Monday=0 through Sunday=6).
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// NextBoundary returns the instant the calendar week next rolls over, so a
// caller can arm a one-shot timer instead of polling.
func NextBoundary(now time.Time) time.Time {
	return StartOfWeek(now).AddDate(0, 0, 7)
}

// Default returns the initial selection for a client: week 1 anchored to the
// current week start.
func Default(now time.Time) State {
	return State{Week: 1, SetAt: StartOfWeek(now)}
}

// FromParts rebuilds a selection from its persisted fields, falling back to
// the default state when the data is corrupt (non-positive week or missing
// anchor). SetAt is re-normalized to its week start either way.
func FromParts(weekNum int, setAt time.Time, now time.Time) State {
	if weekNum < 1 || setAt.IsZero() {
		return Default(now)
	}
	return State{Week: weekNum, SetAt: StartOfWeek(setAt)}
}

// Advance rolls the selection forward across however many week boundaries
// have elapsed between its anchor and now. Within the same week (or if the
// clock appears to have moved backwards) the state is returned unchanged
// except that SetAt is re-normalized to its own week start. The selection
// never rolls backwards and never skips past the elapsed boundary count.
func Advance(s State, now time.Time) State {
	anchor := StartOfWeek(s.SetAt)
	current := StartOfWeek(now)

	elapsed := weeksBetween(anchor, current)
	if elapsed <= 0 {
		return State{Week: s.Week, SetAt: anchor}
	}
	return State{Week: s.Week + elapsed, SetAt: anchor.AddDate(0, 0, 7*elapsed)}
}

// Set pins the selection to weekNum anchored at ref's week start,
// re-baselining the automatic advance. Non-positive weeks fall back to 1.
func Set(weekNum int, ref time.Time) State {
	if weekNum < 1 {
		weekNum = 1
	}
	return State{Week: weekNum, SetAt: StartOfWeek(ref)}
}

// FilterByWeek returns the entries active in the given week. Entries without
// a weeks restriction apply every week and are always included. A non-positive
// week number returns the input unfiltered.
func FilterByWeek(entries []draft.Chunk, weekNum int) []draft.Chunk {
	if weekNum < 1 {
		return entries
	}
	filtered := make([]draft.Chunk, 0, len(entries))
	for _, entry := range entries {
		if entry.Weeks == nil || slices.Contains(entry.Weeks, weekNum) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Repin re-points the selection at the earliest week present in a freshly
// loaded schedule when the currently selected week has no matching entries
// but other weeks do. Otherwise the selection is returned unchanged.
func Repin(s State, entries []draft.Chunk, now time.Time) State {
	if len(entries) == 0 || len(FilterByWeek(entries, s.Week)) > 0 {
		return s
	}

	earliest := 0
	for _, entry := range entries {
		for _, w := range entry.Weeks {
			if earliest == 0 || w < earliest {
				earliest = w
			}
		}
	}
	if earliest == 0 {
		return s
	}
	return Set(earliest, now)
}

// weeksBetween counts whole week boundaries between two week-start instants.
// Both arguments are midnights, so rounding the hour difference absorbs DST
// shifts before dividing into weeks.
func weeksBetween(from, to time.Time) int {
	days := int(math.Round(to.Sub(from).Hours() / 24))
	return days / 7
}
