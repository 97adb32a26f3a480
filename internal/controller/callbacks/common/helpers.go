package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseUUIDFromCallback извлекает uuid после префикса
// Например: "task_done:6f1c..." -> 6f1c...
func ParseUUIDFromCallback(data, prefix string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %q has no prefix %q", ErrInvalidFormat, data, prefix)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return id, nil
}

// ParseIntFromCallback извлекает число после префикса: "addlesson_day:3" -> 3
func ParseIntFromCallback(data, prefix string) (int, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q has no prefix %q", ErrInvalidFormat, data, prefix)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return n, nil
}

// ParseDateFromCallback извлекает дату после префикса: "week:2024-09-09"
func ParseDateFromCallback(data, prefix string, loc *time.Location) (time.Time, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q has no prefix %q", ErrInvalidFormat, data, prefix)
	}
	t, err := time.ParseInLocation(keyboard.DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return t, nil
}

// ParsePageFromCallback разбирает "tasks_page:<filter>:<page>"
func ParsePageFromCallback(data string) (filter string, page int, err error) {
	raw, ok := strings.CutPrefix(data, keyboard.TasksPage)
	if !ok {
		return "", 0, ErrInvalidFormat
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return "", 0, ErrInvalidFormat
	}
	page, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return parts[0], page, nil
}

// IsMessageNotModifiedError Telegram отвечает ошибкой, если текст и клавиатура не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
