package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTime    = errors.New("invalid time, expected HH:MM")
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock zero-padded ("09:05"). This padded form is the
// canonical stored representation: lexicographic order of rendered clocks
// matches chronological order, and the schedule slot match is an exact
// string comparison.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock parses user time input. Accepted shapes: "H:MM", "HH:MM",
// "H.MM", "HH.MM" — the dot is normalized to a colon before matching.
// Anything else, including out-of-range values, is ErrInvalidTime.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ".", ":"))
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Clock{Hour: h, Minute: min}, nil
}

// ClockOf extracts the clock of the given instant.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// NextOccurrence returns the earliest instant at or after now whose
// wall clock equals c: today at c if that has not passed yet, otherwise
// the same time tomorrow. Seconds and below are zeroed.
func NextOccurrence(now time.Time, c Clock) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
	if at.Before(now) {
		at = at.Add(24 * time.Hour)
	}
	return at
}

// TimeUntil renders the time remaining from now until the next occurrence
// of c, e.g. "2h 5m" or, under an hour, just "5m".
func TimeUntil(now time.Time, c Clock) string {
	left := NextOccurrence(now, c).Sub(now)
	h := int(left.Hours())
	m := int(left.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// Weekdays lists the canonical weekday labels in display order. Both the
// schedule write path and the scanner's current-day computation use these
// exact labels; the slot lookup is a string match, so no other spelling
// may reach the store.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var weekdayNames = map[string]string{
	"mon": "Mon", "monday": "Mon",
	"tue": "Tue", "tuesday": "Tue",
	"wed": "Wed", "wednesday": "Wed",
	"thu": "Thu", "thursday": "Thu",
	"fri": "Fri", "friday": "Fri",
	"sat": "Sat", "saturday": "Sat",
	"sun": "Sun", "sunday": "Sun",
}

// ParseWeekday normalizes short or full weekday names, case-insensitively,
// to the canonical label.
func ParseWeekday(s string) (string, error) {
	if day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return day, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// WeekdayOf returns the canonical label for the instant's weekday.
func WeekdayOf(t time.Time) string {
	return t.Weekday().String()[:3]
}
