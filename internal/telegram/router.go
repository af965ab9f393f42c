package telegram

import (
	"context"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ciclos5258/to-do-ru-bot/internal/store"
)

// Steps of the conversational input flows. The pending struct accumulates
// the answers collected so far.
const (
	stepTaskText     = "await_task_text"
	stepReminderName = "await_reminder_name"
	stepReminderTime = "await_reminder_time"
	stepScheduleTime = "await_schedule_time"
	stepScheduleText = "await_schedule_text"
)

type pending struct {
	step         string
	reminderName string
	scheduleDay  string
	scheduleTime string
}

// Router wires Telegram updates to handlers and holds the in-memory
// conversation state for multi-step input flows.
type Router struct {
	bot   *tgbotapi.BotAPI
	log   *zap.Logger
	repo  store.Repo
	state map[int64]*pending
	mu    sync.RWMutex
}

// NewRouter creates a new Telegram router over the injected store.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo) *Router {
	return &Router{
		bot:   bot,
		log:   log,
		repo:  repo,
		state: make(map[int64]*pending),
	}
}

func (r *Router) setPending(chatID int64, p *pending) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = p
}

func (r *Router) getPending(chatID int64) *pending {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

func (r *Router) clearPending(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, had := r.state[chatID]
	delete(r.state, chatID)
	return had
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(ctx, msg)
		case strings.HasPrefix(text, "/cancel"):
			r.handleCancel(chatID)
		case strings.HasPrefix(text, "/list"), text == btnMyTasks:
			r.handleList(ctx, chatID)
		case strings.HasPrefix(text, "/add"), text == btnAddTask:
			r.askTaskText(chatID)
		case strings.HasPrefix(text, "/done"):
			r.handleDone(ctx, chatID, argAfter(text, "/done"))
		case strings.HasPrefix(text, "/delreminder"):
			r.handleDeleteReminder(ctx, chatID, argAfter(text, "/delreminder"))
		case strings.HasPrefix(text, "/delete"):
			r.handleDelete(ctx, chatID, argAfter(text, "/delete"))
		case strings.HasPrefix(text, "/reminders"):
			r.handleReminders(ctx, chatID)
		case text == btnAddReminder:
			r.askReminderName(chatID)
		case text == btnCompleted:
			r.handleCompleted(ctx, chatID)
		case strings.HasPrefix(text, "/schedule"), text == btnSchedule:
			r.handleSchedule(ctx, chatID)
		default:
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		chatID := cb.Message.Chat.ID
		data := cb.Data

		switch {
		case strings.HasPrefix(data, "complete_"):
			r.handleCompleteCallback(ctx, chatID, cb, strings.TrimPrefix(data, "complete_"))
		case strings.HasPrefix(data, "day:"):
			r.handleDayCallback(chatID, cb, strings.TrimPrefix(data, "day:"))
		case data == "cancel_action":
			r.handleCancelCallback(chatID, cb)
		default:
			// Unknown callback — ignore silently
		}
		return
	}
}

// SendMessage sends a plain text message to the given chat.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// argAfter extracts the argument of a "/cmd value" message.
func argAfter(text, cmd string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, cmd))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
