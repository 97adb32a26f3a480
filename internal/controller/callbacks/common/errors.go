package common

import (
	"errors"

	"github.com/Freeeeeet/timetable_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrNotFound):
		return "❌ Не найдено. Возможно, запись уже удалена"
	case errors.Is(err, service.ErrForbidden):
		return "❌ Нет доступа"
	case errors.Is(err, service.ErrInvalidInput):
		return "❌ Некорректные данные"
	default:
		return "❌ Произошла ошибка"
	}
}

// IsUserError ошибка вызвана действиями пользователя, а не сбоем
func IsUserError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrForbidden) ||
		errors.Is(err, service.ErrInvalidInput)
}
