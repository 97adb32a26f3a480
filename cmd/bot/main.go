package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/app"
	"github.com/Freeeeeet/timetable_bot/internal/config"
	"github.com/Freeeeeet/timetable_bot/internal/controller"
	"github.com/Freeeeeet/timetable_bot/internal/controller/handlers"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.Log.Level)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	logger.Info("Starting timetable bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", loc.String()))

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator connection", zap.Error(err))
	}

	repos := repository.NewPostgres(pool, logger)
	txManager := repository.NewPostgresTxManager(pool, logger)
	cache := service.NewWeekCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)

	calendarService := service.NewCalendarService(repos, cache, clock, logger)
	services := handlers.Services{
		Users:      service.NewUserService(repos.User, logger),
		Timetables: service.NewTimetableService(repos, txManager, cache, cfg.Subjects.DefaultColor, logger),
		Lessons:    service.NewLessonService(repos, cache, clock, logger),
		Tasks:      service.NewTaskService(repos, txManager, cfg.ReminderLead(), clock, logger),
		Calendar:   calendarService,
		Export:     service.NewExportService(repos, calendarService, loc, clock, logger),
		Cache:      cache,
	}

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	reminders := service.NewReminderService(repos, controller.NewNotifier(b), loc, clock, logger)
	scheduler, err := app.NewScheduler(reminders, cfg.Reminders.Cron, loc, logger)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, services, loc, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// без меню команд бот работает, команды можно набрать вручную
		logger.Warn("Bot started without commands menu", zap.Error(err))
	}

	scheduler.Start(ctx)
	defer scheduler.Stop()

	return botController.Start(ctx)
}
