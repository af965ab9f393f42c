package telegram

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendWithMenu(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) sendWithCancel(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = cancelInlineKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) answerCallback(id, text string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, text))
}

// --- Core commands ---

func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	u := &domain.User{ChatID: msg.Chat.ID}
	if from := msg.From; from != nil {
		u.Username = from.UserName
		u.FirstName = from.FirstName
	}
	if err := r.repo.UpsertUser(ctx, u); err != nil {
		r.log.Error("register user failed", zap.Error(err), zap.Int64("chatID", msg.Chat.ID))
		r.sendText(msg.Chat.ID, errorText)
		return
	}
	r.clearPending(msg.Chat.ID)
	r.sendWithMenu(msg.Chat.ID, startText)
}

func (r *Router) handleCancel(chatID int64) {
	if r.clearPending(chatID) {
		r.sendWithMenu(chatID, canceledText)
		return
	}
	r.sendWithMenu(chatID, "Nothing to cancel.")
}

func (r *Router) handleList(ctx context.Context, chatID int64) {
	tasks, err := r.repo.ListTasks(ctx, chatID, false)
	if err != nil {
		r.log.Error("list tasks failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	reminders, err := r.repo.ListUserReminders(ctx, chatID)
	if err != nil {
		r.log.Error("list reminders failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	schedule, err := r.repo.ListFullSchedule(ctx, chatID)
	if err != nil {
		r.log.Error("list schedule failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}

	msg := tgbotapi.NewMessage(chatID, renderOverview(tasks, reminders, schedule))
	if kb := tasksInlineKeyboard(tasks); kb != nil {
		msg.ReplyMarkup = *kb
	} else {
		msg.ReplyMarkup = mainMenuKeyboard()
	}
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleCompleted(ctx context.Context, chatID int64) {
	tasks, err := r.repo.ListTasks(ctx, chatID, true)
	if err != nil {
		r.log.Error("list tasks failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	var done []domain.Task
	for _, t := range tasks {
		if t.Done {
			done = append(done, t)
		}
	}
	if len(done) == 0 {
		r.sendWithMenu(chatID, "📭 No completed tasks yet!")
		return
	}
	r.sendWithMenu(chatID, renderTasks(done))
}

// --- Task flows ---

func (r *Router) askTaskText(chatID int64) {
	r.sendWithCancel(chatID, "📝 Enter the new task text:")
	r.setPending(chatID, &pending{step: stepTaskText})
}

func (r *Router) handleDone(ctx context.Context, chatID int64, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		r.sendWithMenu(chatID, "Usage: /done <task id>")
		return
	}
	ok, err := r.repo.MarkTaskDone(ctx, id, chatID)
	if err != nil {
		r.log.Error("mark done failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	if !ok {
		r.sendWithMenu(chatID, "❌ Task not found.")
		return
	}
	r.sendWithMenu(chatID, "Task done! ✅")
}

func (r *Router) handleDelete(ctx context.Context, chatID int64, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		r.sendWithMenu(chatID, "Usage: /delete <task id>")
		return
	}
	ok, err := r.repo.DeleteTask(ctx, id, chatID)
	if err != nil {
		r.log.Error("delete task failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	if !ok {
		r.sendWithMenu(chatID, "❌ Task not found.")
		return
	}
	r.sendWithMenu(chatID, "Task deleted 🗑")
}

// --- Reminder flows ---

func (r *Router) handleReminders(ctx context.Context, chatID int64) {
	reminders, err := r.repo.ListUserReminders(ctx, chatID)
	if err != nil {
		r.log.Error("list reminders failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	r.sendWithMenu(chatID, renderReminders(reminders, time.Now()))
}

func (r *Router) askReminderName(chatID int64) {
	r.sendWithCancel(chatID, "📝 Enter the reminder name:")
	r.setPending(chatID, &pending{step: stepReminderName})
}

func (r *Router) handleDeleteReminder(ctx context.Context, chatID int64, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		r.sendWithMenu(chatID, "Usage: /delreminder <reminder id>")
		return
	}
	ok, err := r.repo.DeleteReminder(ctx, id, chatID)
	if err != nil {
		r.log.Error("delete reminder failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	if !ok {
		r.sendWithMenu(chatID, "❌ Reminder not found.")
		return
	}
	r.sendWithMenu(chatID, "Reminder deleted 🗑")
}

// --- Schedule flow ---

func (r *Router) handleSchedule(ctx context.Context, chatID int64) {
	schedule, err := r.repo.ListFullSchedule(ctx, chatID)
	if err != nil {
		r.log.Error("list schedule failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errorText)
		return
	}
	if len(schedule) > 0 {
		r.sendText(chatID, renderSchedule(schedule))
	}
	msg := tgbotapi.NewMessage(chatID, "Pick a weekday to add an entry:")
	msg.ReplyMarkup = weekdayInlineKeyboard()
	_, _ = r.bot.Send(msg)
}

// --- Free-form dispatcher (pending conversation steps) ---

func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	p := r.getPending(chatID)
	if p == nil {
		r.sendWithMenu(chatID, unknownText)
		return
	}

	switch p.step {
	case stepTaskText:
		if text == "" {
			r.sendText(chatID, "❌ Task text cannot be empty!")
			return
		}
		r.clearPending(chatID)
		if _, err := r.repo.CreateTask(ctx, chatID, text); err != nil {
			r.log.Error("create task failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, errorText)
			return
		}
		r.sendWithMenu(chatID, "✅ Task added: "+text)

	case stepReminderName:
		if text == "" {
			r.sendText(chatID, "❌ Name cannot be empty!")
			return
		}
		p.reminderName = text
		p.step = stepReminderTime
		r.setPending(chatID, p)
		r.sendText(chatID, "⏰ Enter the time (HH:MM):")

	case stepReminderTime:
		clock, err := domain.ParseClock(text)
		if err != nil {
			// Stay in this step until valid input arrives.
			r.sendText(chatID, "❌ Invalid time! Use HH:MM, e.g. 09:30")
			return
		}
		r.clearPending(chatID)
		if _, err := r.repo.CreateReminder(ctx, chatID, p.reminderName, clock.String(), time.Now()); err != nil {
			r.log.Error("create reminder failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, errorText)
			return
		}
		r.sendWithMenu(chatID, "⏰ Reminder '"+p.reminderName+"' set for "+clock.String())

	case stepScheduleTime:
		clock, err := domain.ParseClock(text)
		if err != nil {
			r.sendText(chatID, "❌ Invalid time! Use HH:MM, e.g. 15:30")
			return
		}
		p.scheduleTime = clock.String()
		p.step = stepScheduleText
		r.setPending(chatID, p)
		r.sendText(chatID, "📝 Enter the entry text:")

	case stepScheduleText:
		if text == "" {
			r.sendText(chatID, "❌ Text cannot be empty!")
			return
		}
		r.clearPending(chatID)
		entry := &domain.ScheduleEntry{
			ChatID:   chatID,
			Day:      p.scheduleDay,
			TimeText: p.scheduleTime,
			Text:     text,
		}
		if err := r.repo.AddScheduleEntry(ctx, entry); err != nil {
			r.log.Error("add schedule entry failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, errorText)
			return
		}
		r.sendWithMenu(chatID, "Schedule saved 🗓")

	default:
		r.clearPending(chatID)
		r.sendWithMenu(chatID, unknownText)
	}
}

// --- Callbacks ---

func (r *Router) handleCompleteCallback(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		r.answerCallback(cb.ID, "❌ Bad task id")
		return
	}
	ok, err := r.repo.MarkTaskDone(ctx, id, chatID)
	if err != nil {
		r.log.Error("mark done failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.answerCallback(cb.ID, errorText)
		return
	}
	if !ok {
		r.answerCallback(cb.ID, "❌ Task not found")
		return
	}
	r.answerCallback(cb.ID, "Task done! ✅")

	// Re-render the list in place of the original message.
	tasks, err := r.repo.ListTasks(ctx, chatID, false)
	if err != nil {
		r.log.Error("list tasks failed", zap.Error(err), zap.Int64("chatID", chatID))
		return
	}
	if len(tasks) == 0 {
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, "🎉 All tasks done!")
		_, _ = r.bot.Send(edit)
		return
	}
	reminders, err := r.repo.ListUserReminders(ctx, chatID)
	if err != nil {
		r.log.Error("list reminders failed", zap.Error(err), zap.Int64("chatID", chatID))
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, renderOverview(tasks, reminders, nil))
	if kb := tasksInlineKeyboard(tasks); kb != nil {
		edit.ReplyMarkup = kb
	}
	_, _ = r.bot.Send(edit)
}

func (r *Router) handleDayCallback(chatID int64, cb *tgbotapi.CallbackQuery, arg string) {
	day, err := domain.ParseWeekday(arg)
	if err != nil {
		r.answerCallback(cb.ID, "❌ Unknown weekday")
		return
	}
	r.answerCallback(cb.ID, "")
	r.setPending(chatID, &pending{step: stepScheduleTime, scheduleDay: day})
	r.sendText(chatID, "⏰ Enter the time (e.g. 15:30):")
}

func (r *Router) handleCancelCallback(chatID int64, cb *tgbotapi.CallbackQuery) {
	if r.clearPending(chatID) {
		r.answerCallback(cb.ID, "")
		r.sendWithMenu(chatID, canceledText)
		return
	}
	r.answerCallback(cb.ID, "Nothing to cancel")
}
