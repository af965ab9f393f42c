package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sqlx.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
// Pass ":memory:" for a throwaway in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single-writer engine; one pooled connection keeps every statement on
	// the same session and makes each call its own implicit transaction.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// UpsertUser inserts a user if the chat id is new and is a no-op otherwise.
func (r *SQLiteRepo) UpsertUser(ctx context.Context, u *domain.User) error {
	registered := u.RegisteredAt
	if registered.IsZero() {
		registered = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (chat_id, username, first_name, registered_at)
		VALUES (?, ?, ?, ?)`,
		u.ChatID, u.Username, u.FirstName, registered.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// CreateTask inserts a task and returns its id.
func (r *SQLiteRepo) CreateTask(ctx context.Context, chatID int64, text string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (chat_id, text, is_done, created_at)
		VALUES (?, ?, 0, ?)`,
		chatID, text, time.Now().UTC().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create task id: %w", err)
	}
	return id, nil
}

// ListTasks returns the owner's tasks, newest first. With includeDone false
// only open tasks are returned.
func (r *SQLiteRepo) ListTasks(ctx context.Context, chatID int64, includeDone bool) ([]domain.Task, error) {
	query := `
		SELECT id, chat_id, text, is_done, created_at
		FROM tasks
		WHERE chat_id = ?`
	if !includeDone {
		query += ` AND is_done = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, chatID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

// MarkTaskDone flips the done flag. It reports false when no row matches
// both the task id and the owner.
func (r *SQLiteRepo) MarkTaskDone(ctx context.Context, taskID, chatID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET is_done = 1
		WHERE id = ? AND chat_id = ?`,
		taskID, chatID,
	)
	if err != nil {
		return false, fmt.Errorf("mark task done: %w", err)
	}
	return affected(res.RowsAffected())
}

// DeleteTask removes a task under the same id+owner contract.
func (r *SQLiteRepo) DeleteTask(ctx context.Context, taskID, chatID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = ? AND chat_id = ?`,
		taskID, chatID,
	)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected(res.RowsAffected())
}

// CreateReminder parses timeText, computes the fire instant (today at that
// clock, or tomorrow if already passed relative to now) and inserts the
// reminder with the time stored in canonical "HH:MM" form.
func (r *SQLiteRepo) CreateReminder(ctx context.Context, chatID int64, name, timeText string, now time.Time) (int64, error) {
	clock, err := domain.ParseClock(timeText)
	if err != nil {
		return 0, err
	}
	fireAt := domain.NextOccurrence(now, clock)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (chat_id, name, time, fire_at, is_sent, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`,
		chatID, name, clock.String(), fireAt.Unix(), now.UTC().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("create reminder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create reminder id: %w", err)
	}
	return id, nil
}

// ListUserReminders returns the owner's reminders ordered by time of day.
func (r *SQLiteRepo) ListUserReminders(ctx context.Context, chatID int64) ([]domain.Reminder, error) {
	var rows []reminderRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, chat_id, name, time, fire_at, is_sent, created_at
		FROM reminders
		WHERE chat_id = ?
		ORDER BY time, id`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminderRowsToDomain(rows), nil
}

// ListDueReminders returns every unsent reminder across all users whose fire
// instant is at or before now.
func (r *SQLiteRepo) ListDueReminders(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	var rows []reminderRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, chat_id, name, time, fire_at, is_sent, created_at
		FROM reminders
		WHERE is_sent = 0 AND fire_at <= ?
		ORDER BY fire_at, id`,
		now.UTC().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return reminderRowsToDomain(rows), nil
}

// MarkReminderSent sets the sent flag. Idempotent: marking an already-sent
// reminder is a no-op, not an error.
func (r *SQLiteRepo) MarkReminderSent(ctx context.Context, reminderID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET is_sent = 1 WHERE id = ?`,
		reminderID,
	)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

// DeleteReminder removes a reminder under the id+owner contract.
func (r *SQLiteRepo) DeleteReminder(ctx context.Context, reminderID, chatID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM reminders WHERE id = ? AND chat_id = ?`,
		reminderID, chatID,
	)
	if err != nil {
		return false, fmt.Errorf("delete reminder: %w", err)
	}
	return affected(res.RowsAffected())
}

// AddScheduleEntry inserts a weekly schedule row. The caller is responsible
// for canonical day and time formatting; duplicates are allowed by design.
func (r *SQLiteRepo) AddScheduleEntry(ctx context.Context, e *domain.ScheduleEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule (chat_id, day, time, text)
		VALUES (?, ?, ?, ?)`,
		e.ChatID, e.Day, e.TimeText, e.Text,
	)
	if err != nil {
		return fmt.Errorf("add schedule entry: %w", err)
	}
	return nil
}

// ListScheduleForSlot returns every entry matching exactly the given weekday
// label and "HH:MM" text, across all users.
func (r *SQLiteRepo) ListScheduleForSlot(ctx context.Context, day, timeText string) ([]domain.ScheduleEntry, error) {
	var rows []scheduleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT chat_id, day, time, text
		FROM schedule
		WHERE day = ? AND time = ?`,
		day, timeText,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedule slot: %w", err)
	}
	return scheduleRowsToDomain(rows), nil
}

// ListFullSchedule returns the owner's schedule ordered by weekday then time.
func (r *SQLiteRepo) ListFullSchedule(ctx context.Context, chatID int64) ([]domain.ScheduleEntry, error) {
	// Canonical labels don't sort alphabetically into week order, so the
	// weekday rank is spelled out in the query.
	var rows []scheduleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT chat_id, day, time, text
		FROM schedule
		WHERE chat_id = ?
		ORDER BY CASE day
			WHEN 'Mon' THEN 0 WHEN 'Tue' THEN 1 WHEN 'Wed' THEN 2
			WHEN 'Thu' THEN 3 WHEN 'Fri' THEN 4 WHEN 'Sat' THEN 5
			WHEN 'Sun' THEN 6 ELSE 7 END, time`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("list full schedule: %w", err)
	}
	return scheduleRowsToDomain(rows), nil
}

func reminderRowsToDomain(rows []reminderRow) []domain.Reminder {
	out := make([]domain.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func scheduleRowsToDomain(rows []scheduleRow) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func affected(n int64, err error) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
