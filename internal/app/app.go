package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ciclos5258/to-do-ru-bot/internal/config"
	"github.com/ciclos5258/to-do-ru-bot/internal/scheduler"
	"github.com/ciclos5258/to-do-ru-bot/internal/store"
	"github.com/ciclos5258/to-do-ru-bot/internal/telegram"
)

const (
	connectAttempts  = 10
	connectBaseDelay = 5 * time.Second
	connectMaxDelay  = 5 * time.Minute
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := connectBot(cfg.BotToken, log)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

// connectBot dials the Bot API with bounded exponential backoff so a
// transient outage at startup does not kill the process.
func connectBot(token string, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	delay := connectBaseDelay
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		bot, err := tgbotapi.NewBotAPI(token)
		if err == nil {
			return bot, nil
		}
		lastErr = err
		log.Warn("bot connect failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("retryIn", delay),
		)
		time.Sleep(delay)
		delay *= 2
		if delay > connectMaxDelay {
			delay = connectMaxDelay
		}
	}
	return nil, lastErr
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting todo bot",
		zap.String("db", a.cfg.DBPath),
		zap.Duration("pollInterval", a.cfg.PollInterval),
		zap.String("http", a.cfg.HTTPAddr),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	a.router = telegram.NewRouter(a.bot, a.log, a.repo)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The scanner shares the injected repo and uses the router as its
	// delivery capability.
	sched := scheduler.New(a.repo, a.log, a.router, a.cfg.PollInterval)
	go sched.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
