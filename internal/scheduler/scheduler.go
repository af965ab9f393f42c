package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
	"github.com/ciclos5258/to-do-ru-bot/internal/store"
)

// Sender is the minimal delivery capability the scheduler needs.
// telegram.Router implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler periodically scans the store for due one-off reminders and
// matching weekly schedule entries and dispatches notifications. It keeps no
// durable state of its own: due-ness is re-derived from the store on every
// tick, so a restart loses nothing.
type Scheduler struct {
	repo     store.Repo
	log      *zap.Logger
	sender   Sender
	interval time.Duration
	backoff  time.Duration
	now      func() time.Time

	// lastMinute is the wall-clock minute the recurring pass last ran for,
	// so a slot fires at most once even when several ticks land inside the
	// same minute.
	lastMinute time.Time
}

// New creates a Scheduler polling at the given interval. After a failed tick
// the next attempt is delayed by a longer backoff instead.
func New(repo store.Repo, log *zap.Logger, sender Sender, interval time.Duration) *Scheduler {
	return &Scheduler{
		repo:     repo,
		log:      log,
		sender:   sender,
		interval: interval,
		backoff:  2 * interval,
		now:      time.Now,
	}
}

// Run executes ticks until ctx is canceled. A tick that fails at the storage
// level is logged and followed by the backoff delay; the loop itself never
// terminates on an error.
func (s *Scheduler) Run(ctx context.Context) {
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-timer.C:
			wait := s.interval
			if err := s.tick(ctx, s.now()); err != nil {
				s.log.Error("tick failed", zap.Error(err))
				wait = s.backoff
			}
			timer.Reset(wait)
		}
	}
}

// tick runs one scan cycle at the given instant: the one-off reminder pass,
// then the recurring schedule pass. Split out from Run so tests can drive it
// with a fixed clock.
func (s *Scheduler) tick(ctx context.Context, now time.Time) error {
	if err := s.deliverDueReminders(ctx, now); err != nil {
		return err
	}
	return s.deliverScheduleSlot(ctx, now)
}

// deliverDueReminders sends every unsent reminder whose fire instant has
// passed and marks it sent. A failed delivery leaves the reminder unmarked,
// so it is retried on the next tick; nothing is marked before its own send
// succeeded, and rows are handled one at a time, so a reminder is never
// delivered twice within a run.
func (s *Scheduler) deliverDueReminders(ctx context.Context, now time.Time) error {
	due, err := s.repo.ListDueReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("list due reminders: %w", err)
	}

	for _, rem := range due {
		text := fmt.Sprintf("⏰ Reminder: %s\nTime: %s", rem.Name, rem.TimeText)
		if err := s.sender.SendMessage(rem.ChatID, text); err != nil {
			s.log.Error("reminder delivery failed",
				zap.Error(err),
				zap.Int64("chatID", rem.ChatID),
				zap.Int64("reminderID", rem.ID),
			)
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, rem.ID); err != nil {
			return fmt.Errorf("mark reminder %d sent: %w", rem.ID, err)
		}
		s.log.Info("reminder sent",
			zap.Int64("chatID", rem.ChatID),
			zap.Int64("reminderID", rem.ID),
		)
	}
	return nil
}

// deliverScheduleSlot sends every schedule entry matching the current weekday
// and minute. Schedule entries carry no sent flag; the lastMinute guard is
// the only dedup, and it covers a single process only.
func (s *Scheduler) deliverScheduleSlot(ctx context.Context, now time.Time) error {
	minute := now.Truncate(time.Minute)
	if minute.Equal(s.lastMinute) {
		return nil
	}

	day, slot := domain.WeekdayOf(now), domain.ClockOf(now).String()
	entries, err := s.repo.ListScheduleForSlot(ctx, day, slot)
	if err != nil {
		return fmt.Errorf("list schedule slot %s %s: %w", day, slot, err)
	}
	s.lastMinute = minute

	for _, e := range entries {
		text := fmt.Sprintf("🗓 Scheduled: %s", e.Text)
		if err := s.sender.SendMessage(e.ChatID, text); err != nil {
			s.log.Error("schedule delivery failed",
				zap.Error(err),
				zap.Int64("chatID", e.ChatID),
				zap.String("day", day),
				zap.String("slot", slot),
			)
		}
	}
	return nil
}
