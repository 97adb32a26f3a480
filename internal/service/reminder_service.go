package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"go.uber.org/zap"
)

const reminderBatchSize = 100

// Notifier доставляет текст пользователю (в боте - сообщением в чат)
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// ReminderService рассылка напоминаний о задачах
type ReminderService struct {
	repo     *repository.Repository
	notifier Notifier
	loc      *time.Location
	clock    schedule.Clock
	logger   *zap.Logger
}

func NewReminderService(repo *repository.Repository, notifier Notifier, loc *time.Location, clock schedule.Clock, logger *zap.Logger) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &ReminderService{
		repo:     repo,
		notifier: notifier,
		loc:      loc,
		clock:    clock,
		logger:   logger,
	}
}

// SendDue отправляет наступившие напоминания и возвращает число отправленных.
// Напоминание, которое не удалось отправить, остаётся неотправленным до следующего запуска.
func (s *ReminderService) SendDue(ctx context.Context) (int, error) {
	now := s.clock()

	due, err := s.repo.Notification.ListDue(ctx, now, reminderBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	sent := 0
	for _, n := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := s.notifier.Notify(ctx, n.ChatID, ReminderText(n, s.loc)); err != nil {
			s.logger.Warn("Failed to send reminder",
				zap.Int64("notification_id", n.ID),
				zap.Int64("chat_id", n.ChatID),
				zap.Error(err))
			continue
		}

		if err := s.repo.Notification.MarkSent(ctx, n.ID, now); err != nil {
			return sent, fmt.Errorf("mark reminder %d sent: %w", n.ID, err)
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("Reminders sent",
			zap.Int("sent", sent),
			zap.Int("due", len(due)))
	}

	return sent, nil
}

// ReminderText текст напоминания о задаче
func ReminderText(n *model.Notification, loc *time.Location) string {
	if n.TaskDue == nil {
		return fmt.Sprintf("⏰ Напоминание: %s", n.TaskTitle)
	}
	return fmt.Sprintf("⏰ Напоминание: %s\nСрок: %s", n.TaskTitle, n.TaskDue.In(loc).Format("02.01.2006 15:04"))
}
