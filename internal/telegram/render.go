package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

// Rendering is pure: collections and the current instant in, text out.
// The scanner and the handlers share these so list output stays uniform.

// renderOverview builds the combined "my tasks" view: open tasks, pending
// reminders, and the weekly schedule grouped by day.
func renderOverview(tasks []domain.Task, reminders []domain.Reminder, schedule []domain.ScheduleEntry) string {
	var b strings.Builder
	b.WriteString("📋 YOUR LIST\n\n")

	empty := true

	if len(tasks) > 0 {
		empty = false
		b.WriteString("✅ Tasks:\n")
		for i, t := range tasks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t.Text)
		}
		b.WriteString("\n")
	}

	pending := pendingReminders(reminders)
	if len(pending) > 0 {
		empty = false
		b.WriteString("⏰ Reminders:\n")
		for _, r := range pending {
			fmt.Fprintf(&b, "• %s at %s\n", r.Name, r.TimeText)
		}
		b.WriteString("\n")
	}

	if len(schedule) > 0 {
		empty = false
		b.WriteString(renderSchedule(schedule))
	}

	if empty {
		return "📭 Nothing here yet. Add a task, reminder or schedule entry!"
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderReminders lists all reminders with their id, status and, for pending
// ones, the time remaining until the next occurrence of their clock.
func renderReminders(reminders []domain.Reminder, now time.Time) string {
	if len(reminders) == 0 {
		return "📭 You have no reminders!"
	}

	var b strings.Builder
	b.WriteString("⏰ Your reminders:\n\n")
	for i, r := range reminders {
		status := "✅ sent"
		if !r.Sent {
			if c, err := domain.ParseClock(r.TimeText); err == nil {
				status = "⏰ in " + domain.TimeUntil(now, c)
			} else {
				status = "⏰ pending"
			}
		}
		fmt.Fprintf(&b, "%d. %s — %s (%s) [id %d]\n", i+1, r.Name, r.TimeText, status, r.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTasks lists tasks with ids, marking completed ones.
func renderTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "📭 No tasks!"
	}
	var b strings.Builder
	b.WriteString("✅ Tasks:\n")
	for i, t := range tasks {
		mark := ""
		if t.Done {
			mark = " ✔"
		}
		fmt.Fprintf(&b, "%d. %s%s [id %d]\n", i+1, t.Text, mark, t.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSchedule lists the weekly schedule grouped by day.
func renderSchedule(schedule []domain.ScheduleEntry) string {
	if len(schedule) == 0 {
		return "📭 Your schedule is empty."
	}
	var b strings.Builder
	b.WriteString("🗓 Weekly schedule:\n")
	currentDay := ""
	for _, e := range schedule {
		if e.Day != currentDay {
			fmt.Fprintf(&b, "┈┈ %s ┈┈\n", e.Day)
			currentDay = e.Day
		}
		fmt.Fprintf(&b, "└ %s — %s\n", e.TimeText, e.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func pendingReminders(reminders []domain.Reminder) []domain.Reminder {
	var out []domain.Reminder
	for _, r := range reminders {
		if !r.Sent {
			out = append(out, r)
		}
	}
	return out
}
