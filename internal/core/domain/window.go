package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day format used for window bounds in file names and UIs.
const DateLayout = "2006-01-02"

// TimeWindow bounds "recent" items. A zero Since or Until means the bound is
// absent. Bounds are UTC with second precision.
type TimeWindow struct {
	Since time.Time
	Until time.Time
}

// NewTimeWindow builds a window, normalising both bounds to UTC seconds.
func NewTimeWindow(since, until time.Time) TimeWindow {
	return TimeWindow{
		Since: normaliseBound(since),
		Until: normaliseBound(until),
	}
}

// DayWindow returns the window from day 00:00 to the following 00:00, UTC.
func DayWindow(day time.Time) TimeWindow {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return TimeWindow{Since: start, Until: start.Add(24 * time.Hour)}
}

func normaliseBound(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Second)
}

// HasSince reports whether a lower bound is set.
func (w TimeWindow) HasSince() bool { return !w.Since.IsZero() }

// HasUntil reports whether an upper bound is set.
func (w TimeWindow) HasUntil() bool { return !w.Until.IsZero() }

// IsZero reports whether neither bound is set (full-history semantics).
func (w TimeWindow) IsZero() bool { return !w.HasSince() && !w.HasUntil() }

// Inverted reports whether both bounds are set and Since is after Until.
// An inverted window selects nothing.
func (w TimeWindow) Inverted() bool {
	return w.HasSince() && w.HasUntil() && w.Since.After(w.Until)
}

// Contains reports whether t lies inside the window, inclusive on both bounds.
// A zero t lies outside any window with at least one bound.
func (w TimeWindow) Contains(t time.Time) bool {
	if w.Inverted() {
		return false
	}
	if w.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	if w.HasSince() && t.Before(w.Since) {
		return false
	}
	if w.HasUntil() && t.After(w.Until) {
		return false
	}
	return true
}

// AfterUntil reports whether t is strictly after the upper bound.
// Always false when no upper bound is set.
func (w TimeWindow) AfterUntil(t time.Time) bool {
	return w.HasUntil() && t.After(w.Until)
}

// String renders the window for report headers.
func (w TimeWindow) String() string {
	switch {
	case w.IsZero():
		return "all history"
	case !w.HasUntil():
		return "since " + w.Since.Format(time.RFC3339)
	case !w.HasSince():
		return "until " + w.Until.Format(time.RFC3339)
	default:
		return w.Since.Format(time.RFC3339) + " to " + w.Until.Format(time.RFC3339)
	}
}

// ParseDay parses a YYYY-MM-DD date as UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseWindow builds a window from user input. Each bound is empty, a
// YYYY-MM-DD date or an RFC3339 timestamp. A date as the upper bound covers
// that whole day. An upper bound before the lower bound is rejected here;
// the collector itself treats such a window as empty.
func ParseWindow(since, until string) (TimeWindow, error) {
	lower, err := parseBound(since, false)
	if err != nil {
		return TimeWindow{}, err
	}
	upper, err := parseBound(until, true)
	if err != nil {
		return TimeWindow{}, err
	}
	w := NewTimeWindow(lower, upper)
	if w.Inverted() {
		return TimeWindow{}, fmt.Errorf("%w: until (%s) is before since (%s)", ErrInvalidInput, until, since)
	}
	return w, nil
}

func parseBound(s string, upper bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	day, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q, expected YYYY-MM-DD or RFC3339", ErrInvalidInput, s)
	}
	if upper {
		return day.Add(24 * time.Hour), nil
	}
	return day, nil
}
