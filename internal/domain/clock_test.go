package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
	}{
		{"09:00", Clock{9, 0}},
		{"9:05", Clock{9, 5}},
		{"23:59", Clock{23, 59}},
		{"0:00", Clock{0, 0}},
		{"15.30", Clock{15, 30}},
		{"7.05", Clock{7, 5}},
		{" 12:00 ", Clock{12, 0}},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseClock(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	cases := []string{
		"", "24:00", "25:00", "12:60", "9:5", "123:00", "12:345",
		"ab:cd", "12-30", "12:30pm", "12:30:00", ":30", "12:",
	}
	for _, in := range cases {
		if _, err := ParseClock(in); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("ParseClock(%q): want ErrInvalidTime, got %v", in, err)
		}
	}
}

func TestClockString_ZeroPadded(t *testing.T) {
	if got := (Clock{9, 5}).String(); got != "09:05" {
		t.Fatalf("want 09:05, got %s", got)
	}
}

func TestNextOccurrence_LaterToday(t *testing.T) {
	now := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	got := NextOccurrence(now, Clock{9, 0})
	want := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestNextOccurrence_AlreadyPassed(t *testing.T) {
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	got := NextOccurrence(now, Clock{7, 0})
	want := time.Date(2025, time.June, 3, 7, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestNextOccurrence_ExactMinute(t *testing.T) {
	// At 09:00:00 sharp the occurrence is now, not tomorrow.
	now := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	got := NextOccurrence(now, Clock{9, 0})
	if !got.Equal(now) {
		t.Fatalf("want %v, got %v", now, got)
	}
}

func TestNextOccurrence_NeverPast(t *testing.T) {
	now := time.Date(2025, time.June, 2, 14, 37, 21, 0, time.UTC)
	for h := 0; h < 24; h++ {
		got := NextOccurrence(now, Clock{h, 30})
		if got.Before(now) {
			t.Fatalf("occurrence for %02d:30 is in the past: %v < %v", h, got, now)
		}
	}
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	if got := TimeUntil(now, Clock{10, 5}); got != "2h 5m" {
		t.Fatalf("want 2h 5m, got %s", got)
	}
	if got := TimeUntil(now, Clock{8, 45}); got != "45m" {
		t.Fatalf("want 45m, got %s", got)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Mon", "Mon"}, {"monday", "Mon"}, {"THU", "Thu"},
		{"Sunday", "Sun"}, {" fri ", "Fri"},
	}
	for _, c := range cases {
		got, err := ParseWeekday(c.in)
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseWeekday(%q) = %s, want %s", c.in, got, c.want)
		}
	}
	if _, err := ParseWeekday("Funday"); !errors.Is(err, ErrInvalidWeekday) {
		t.Fatalf("want ErrInvalidWeekday, got %v", err)
	}
}

func TestWeekdayOf_MatchesCanonicalLabels(t *testing.T) {
	// 2025-06-02 is a Monday.
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		got := WeekdayOf(day.AddDate(0, 0, i))
		if got != Weekdays[i] {
			t.Fatalf("day %d: want %s, got %s", i, Weekdays[i], got)
		}
	}
}
