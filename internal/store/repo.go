package store

import (
	"context"
	"time"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

// Repo defines storage operations for users, tasks, reminders and the weekly
// schedule. Each call is its own atomic unit of work; bool results report
// whether a row matching both id and owner existed (false covers not-found
// and not-owned alike).
type Repo interface {
	UpsertUser(ctx context.Context, u *domain.User) error

	CreateTask(ctx context.Context, chatID int64, text string) (int64, error)
	ListTasks(ctx context.Context, chatID int64, includeDone bool) ([]domain.Task, error)
	MarkTaskDone(ctx context.Context, taskID, chatID int64) (bool, error)
	DeleteTask(ctx context.Context, taskID, chatID int64) (bool, error)

	// CreateReminder validates timeText itself and stores the next
	// occurrence relative to now as the fire instant. Returns
	// domain.ErrInvalidTime without inserting when the text does not parse.
	CreateReminder(ctx context.Context, chatID int64, name, timeText string, now time.Time) (int64, error)
	ListUserReminders(ctx context.Context, chatID int64) ([]domain.Reminder, error)
	ListDueReminders(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	MarkReminderSent(ctx context.Context, reminderID int64) error
	DeleteReminder(ctx context.Context, reminderID, chatID int64) (bool, error)

	AddScheduleEntry(ctx context.Context, e *domain.ScheduleEntry) error
	ListScheduleForSlot(ctx context.Context, day, timeText string) ([]domain.ScheduleEntry, error)
	ListFullSchedule(ctx context.Context, chatID int64) ([]domain.ScheduleEntry, error)

	Close() error
}
