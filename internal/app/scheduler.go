package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reminderJobTimeout = 30 * time.Second

// ReminderSender отправляет наступившие напоминания
type ReminderSender interface {
	SendDue(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron      *cron.Cron
	reminders ReminderSender
	logger    *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler создаёт планировщик, spec - расписание в формате cron
func NewScheduler(reminders ReminderSender, spec string, loc *time.Location, logger *zap.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		reminders: reminders,
		logger:    logger,
	}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
	)

	if _, err := s.cron.AddFunc(spec, s.sendReminders); err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", spec, err)
	}

	return s, nil
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
}

// Stop останавливает задачи и ждёт завершения текущих
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendReminders() {
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, reminderJobTimeout)
	defer cancel()

	sent, err := s.reminders.SendDue(ctx)
	if err != nil {
		s.logger.Error("Failed to send reminders", zap.Error(err))
		return
	}
	if sent > 0 {
		s.logger.Debug("Reminder job finished", zap.Int("sent", sent))
	}
}

// cronLogger пишет сообщения cron в zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
