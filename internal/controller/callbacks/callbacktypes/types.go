package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	GetState(telegramID int64) state.UserState
	Start(telegramID int64, s state.UserState)
	SetState(telegramID int64, s state.UserState)
	Advance(telegramID int64, expected state.UserState, key string, value interface{}) (state.UserState, bool)
	Finish(telegramID int64) map[string]interface{}
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	ClearState(telegramID int64)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService      *service.UserService
	TimetableService *service.TimetableService
	LessonService    *service.LessonService
	TaskService      *service.TaskService
	CalendarService  *service.CalendarService
	WeekCache        *service.WeekCache
	StateManager     StateManager
	Location         *time.Location
	Logger           *zap.Logger

	// Функции-хэндлеры из основного контроллера
	PromptTaskTitle func(ctx context.Context, b *bot.Bot, chatID int64)
}
