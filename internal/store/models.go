package store

import (
	"time"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

// Row types mirror the sqlite schema. Timestamps are stored as unix seconds
// (UTC) and booleans as 0/1 integers.

type taskRow struct {
	ID        int64  `db:"id"`
	ChatID    int64  `db:"chat_id"`
	Text      string `db:"text"`
	Done      int    `db:"is_done"`
	CreatedAt int64  `db:"created_at"`
}

func (r taskRow) toDomain() domain.Task {
	return domain.Task{
		ID:        r.ID,
		ChatID:    r.ChatID,
		Text:      r.Text,
		Done:      r.Done != 0,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
	}
}

type reminderRow struct {
	ID        int64  `db:"id"`
	ChatID    int64  `db:"chat_id"`
	Name      string `db:"name"`
	TimeText  string `db:"time"`
	FireAt    int64  `db:"fire_at"`
	Sent      int    `db:"is_sent"`
	CreatedAt int64  `db:"created_at"`
}

func (r reminderRow) toDomain() domain.Reminder {
	return domain.Reminder{
		ID:        r.ID,
		ChatID:    r.ChatID,
		Name:      r.Name,
		TimeText:  r.TimeText,
		FireAt:    time.Unix(r.FireAt, 0).UTC(),
		Sent:      r.Sent != 0,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
	}
}

type scheduleRow struct {
	ChatID   int64  `db:"chat_id"`
	Day      string `db:"day"`
	TimeText string `db:"time"`
	Text     string `db:"text"`
}

func (r scheduleRow) toDomain() domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ChatID:   r.ChatID,
		Day:      r.Day,
		TimeText: r.TimeText,
		Text:     r.Text,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
