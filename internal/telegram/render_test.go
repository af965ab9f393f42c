package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

func TestRenderOverview_GroupsSections(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Text: "Buy milk"},
		{ID: 2, Text: "Call mom"},
	}
	reminders := []domain.Reminder{
		{ID: 1, Name: "Standup", TimeText: "09:00"},
		{ID: 2, Name: "Old", TimeText: "08:00", Sent: true},
	}
	schedule := []domain.ScheduleEntry{
		{Day: "Mon", TimeText: "09:00", Text: "Standup"},
		{Day: "Mon", TimeText: "18:00", Text: "Gym"},
		{Day: "Fri", TimeText: "17:00", Text: "Retro"},
	}

	out := renderOverview(tasks, reminders, schedule)

	for _, want := range []string{"1. Buy milk", "2. Call mom", "• Standup at 09:00", "┈┈ Mon ┈┈", "┈┈ Fri ┈┈", "└ 18:00 — Gym"} {
		if !strings.Contains(out, want) {
			t.Fatalf("overview missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Old") {
		t.Fatalf("sent reminder rendered in overview:\n%s", out)
	}
	// Mon header appears once for its two entries.
	if strings.Count(out, "┈┈ Mon ┈┈") != 1 {
		t.Fatalf("duplicated day header:\n%s", out)
	}
}

func TestRenderOverview_Empty(t *testing.T) {
	out := renderOverview(nil, nil, nil)
	if !strings.Contains(out, "📭") {
		t.Fatalf("want empty placeholder, got %q", out)
	}
}

func TestRenderReminders_TimeRemaining(t *testing.T) {
	now := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	reminders := []domain.Reminder{
		{ID: 3, Name: "Standup", TimeText: "09:30"},
		{ID: 4, Name: "Done", TimeText: "07:00", Sent: true},
	}

	out := renderReminders(reminders, now)

	if !strings.Contains(out, "in 1h 30m") {
		t.Fatalf("missing time remaining:\n%s", out)
	}
	if !strings.Contains(out, "✅ sent") {
		t.Fatalf("missing sent status:\n%s", out)
	}
	if !strings.Contains(out, "[id 3]") {
		t.Fatalf("missing reminder id:\n%s", out)
	}
}

func TestRenderReminders_Empty(t *testing.T) {
	if out := renderReminders(nil, time.Now()); !strings.Contains(out, "📭") {
		t.Fatalf("want empty placeholder, got %q", out)
	}
}

func TestRenderTasks_MarksDone(t *testing.T) {
	out := renderTasks([]domain.Task{
		{ID: 1, Text: "open"},
		{ID: 2, Text: "closed", Done: true},
	})
	if !strings.Contains(out, "closed ✔") {
		t.Fatalf("done task not marked:\n%s", out)
	}
	if strings.Contains(out, "open ✔") {
		t.Fatalf("open task marked done:\n%s", out)
	}
}
