package handlers

import (
	"bytes"
	"context"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNow что идёт прямо сейчас: уроки и события
func (h *Handlers) HandleNow(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	now := h.now()

	// при сбое хранилища показываем пустой ответ, а не ошибку
	lessons, err := h.lessonService.CurrentLessons(ctx, user.ID)
	if err != nil {
		h.logger.Warn("Failed to load current lessons", zap.Int64("user_id", user.ID), zap.Error(err))
		lessons = nil
	}

	text := formatting.FormatCurrentLessons(lessons, now)

	entries, err := h.calendarService.CalendarEventsAt(ctx, user.ID, now)
	if err != nil {
		h.logger.Warn("Failed to load current events", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	for _, e := range entries {
		if e.Kind == model.CalendarEventEvent {
			text += "\n" + formatting.FormatCalendarEvent(e)
		}
	}

	h.sendHTML(ctx, b, chatID, text, nil)
}

// HandleNext ближайшие уроки и когда они начнутся
func (h *Handlers) HandleNext(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	lessons, err := h.lessonService.NextLessons(ctx, user.ID)
	if err != nil {
		h.logger.Warn("Failed to load next lessons", zap.Int64("user_id", user.ID), zap.Error(err))
		lessons = nil
	}

	starts := make([]time.Time, 0, len(lessons))
	for _, l := range lessons {
		starts = append(starts, h.lessonService.DateOfNext(l).In(h.loc))
	}

	kb := keyboard.NewBuilder()
	for _, l := range lessons {
		kb.Row(keyboard.Button("📚 "+l.Title(), keyboard.WithID(keyboard.LessonView, l.ID)))
	}

	h.sendHTML(ctx, b, chatID, formatting.FormatNextLessons(lessons, starts, h.now()), kb.Build())
}

// HandleToday уроки и события на сегодня. Если сегодня пусто - ближайший непустой день.
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	now := h.now()

	day, err := h.calendarService.DayEntry(ctx, user.ID, now)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "today")
		return
	}

	text := formatting.FormatDayEntry(day, now)
	if len(day.Entries) == 0 {
		next, err := h.calendarService.NextDayEntry(ctx, user.ID, now.AddDate(0, 0, 1))
		if err != nil {
			h.logger.Warn("Failed to load next day", zap.Int64("user_id", user.ID), zap.Error(err))
		} else if len(next.Entries) > 0 {
			text += "\n\nБлижайший учебный день:\n\n" + formatting.FormatDayEntry(next, now)
		}
	}

	h.sendHTML(ctx, b, chatID, text, nil)
}

// HandleWeek текущая неделя текстом
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	now := h.now()

	days, err := h.calendarService.WeekEntries(ctx, user.ID, now)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "week")
		return
	}

	text, kb := common.BuildWeekScreen(days, now)
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleWeekImage текущая неделя картинкой
func (h *Handlers) HandleWeekImage(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	now := h.now()
	weekStart := schedule.StartOfWeek(now)

	data, err := common.GenerateWeekImage(ctx, h.calendarService, h.cache, user.ID, weekStart, now)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "week_image")
		return
	}

	kb := keyboard.NewBuilder().Row(keyboard.WeekImageNavigation(weekStart)...).Build()
	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(data)},
		Caption:     "📅 Неделя " + formatting.FormatWeekRange(weekStart),
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleLessons все уроки по дням недели
func (h *Handlers) HandleLessons(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	week, err := h.lessonService.Week(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "lessons")
		return
	}

	text, kb := common.BuildLessonsScreen(week)
	h.sendHTML(ctx, b, chatID, text, kb)
}
