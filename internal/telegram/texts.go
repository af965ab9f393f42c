package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ciclos5258/to-do-ru-bot/internal/domain"
)

const (
	startText = "🎯 Welcome to To-Do Bot!\n\n" +
		"What I can do:\n" +
		"/add — add a task\n" +
		"/list — show tasks and reminders\n" +
		"/done <id> — mark a task done\n" +
		"/delete <id> — delete a task\n" +
		"/reminders — show your reminders\n" +
		"/delreminder <id> — delete a reminder\n" +
		"/schedule — weekly schedule\n\n" +
		"Or use the menu below 👇"

	unknownText  = "I don't understand that. Use the menu buttons."
	errorText    = "Something went wrong. Please try again later."
	canceledText = "Action canceled."

	btnMyTasks     = "📋 My tasks"
	btnAddTask     = "➕ Add task"
	btnAddReminder = "⏰ Add reminder"
	btnCompleted   = "✅ Completed"
	btnSchedule    = "📜 Schedule"
)

// mainMenuKeyboard is the persistent reply keyboard shown after most actions.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyTasks),
			tgbotapi.NewKeyboardButton(btnAddTask),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddReminder),
			tgbotapi.NewKeyboardButton(btnCompleted),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSchedule),
		),
	)
}

// tasksInlineKeyboard builds one complete-button per open task.
// Returns nil when every task is done.
func tasksInlineKeyboard(tasks []domain.Task) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tasks {
		if t.Done {
			continue
		}
		label := t.Text
		if len([]rune(label)) > 15 {
			label = string([]rune(label)[:15]) + "…"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+label, "complete_"+itoa(t.ID)),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// weekdayInlineKeyboard is the day picker for the schedule-entry flow.
func weekdayInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(domain.Weekdays); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(domain.Weekdays[i], "day:"+domain.Weekdays[i]),
		}
		if i+1 < len(domain.Weekdays) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(domain.Weekdays[i+1], "day:"+domain.Weekdays[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel_action"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// cancelInlineKeyboard offers a single cancel button during input flows.
func cancelInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel_action"),
		),
	)
}
