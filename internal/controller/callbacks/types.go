package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// StateManager интерфейс для управления состоянием пользователей
type StateManager = callbacktypes.StateManager

// Services сервисы, нужные обработчикам кнопок
type Services struct {
	Users      *service.UserService
	Timetables *service.TimetableService
	Lessons    *service.LessonService
	Tasks      *service.TaskService
	Calendar   *service.CalendarService
	Cache      *service.WeekCache
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	services Services,
	stateManager StateManager,
	loc *time.Location,
	logger *zap.Logger,
	promptTaskTitle func(ctx context.Context, b *bot.Bot, chatID int64),
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:      services.Users,
		TimetableService: services.Timetables,
		LessonService:    services.Lessons,
		TaskService:      services.Tasks,
		CalendarService:  services.Calendar,
		WeekCache:        services.Cache,
		StateManager:     stateManager,
		Location:         loc,
		Logger:           logger,
		PromptTaskTitle:  promptTaskTitle,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
