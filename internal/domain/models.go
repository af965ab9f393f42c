package domain

import "time"

// User is a registered chat. Created on first /start, never deleted;
// re-registration is an insert-or-ignore upsert.
type User struct {
	ChatID       int64
	Username     string
	FirstName    string
	RegisteredAt time.Time
}

// Task is a one-off to-do item owned by a single chat.
type Task struct {
	ID        int64
	ChatID    int64
	Text      string
	Done      bool
	CreatedAt time.Time
}

// Reminder is a one-shot timed notification. FireAt is fixed at creation
// (next occurrence of the requested clock) and Sent flips false→true
// exactly once after delivery.
type Reminder struct {
	ID        int64
	ChatID    int64
	Name      string
	TimeText  string // canonical "HH:MM"
	FireAt    time.Time
	Sent      bool
	CreatedAt time.Time
}

// ScheduleEntry recurs every week at Day+TimeText. Entries carry no sent
// state; duplicates are allowed and fire independently.
type ScheduleEntry struct {
	ChatID   int64
	Day      string // canonical label, see Weekdays
	TimeText string // canonical "HH:MM"
	Text     string
}
