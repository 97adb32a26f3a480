package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/tasks"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerFunc обработчик одного вида callback
type HandlerFunc func(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler)

type route struct {
	prefix  string
	exact   bool
	handler HandlerFunc
}

// routes проверяются по порядку: более длинные префиксы раньше коротких с тем же началом
var routes = []route{
	// ===== Common Navigation =====
	{keyboard.Noop, true, common.HandleNoop},
	{keyboard.BackToMain, true, common.HandleBackToMain},

	// ===== Tasks =====
	{keyboard.TasksPage, false, tasks.HandleTasksPage},
	{keyboard.TaskView, false, tasks.HandleViewTask},
	{keyboard.TaskComplete, false, tasks.HandleCompleteTask},
	{keyboard.TaskReopen, false, tasks.HandleReopenTask},
	{keyboard.TaskArchive, false, tasks.HandleArchiveTask},
	{keyboard.TaskUnarchive, false, tasks.HandleUnarchiveTask},
	{keyboard.TaskDelete, false, tasks.HandleDeleteTask},
	{keyboard.TaskConfirmDelete, false, tasks.HandleConfirmDeleteTask},

	// ===== Lessons =====
	{keyboard.LessonView, false, timetable.HandleViewLesson},
	{keyboard.LessonDelete, false, timetable.HandleDeleteLesson},
	{keyboard.LessonConfirmDelete, false, timetable.HandleConfirmDeleteLesson},
	{keyboard.LessonAddTask, false, timetable.HandleLessonAddTask},

	// ===== Week =====
	{keyboard.Week, false, timetable.HandleWeek},
	{keyboard.WeekImage, false, timetable.HandleWeekImage},

	// ===== Timetables and events =====
	{keyboard.TimetableDefault, false, timetable.HandleSetDefaultTimetable},
	{keyboard.EventDelete, false, timetable.HandleDeleteEvent},

	// ===== /addlesson dialog =====
	{keyboard.AddLessonSubject, false, timetable.HandleAddLessonSubject},
	{keyboard.AddLessonCreateSubject, true, timetable.HandleAddLessonCreateSubject},
	{keyboard.AddLessonDay, false, timetable.HandleAddLessonDay},
}

// Match находит обработчик для callback data
func Match(data string) (HandlerFunc, bool) {
	for _, r := range routes {
		if r.exact && data == r.prefix {
			return r.handler, true
		}
		if !r.exact && strings.HasPrefix(data, r.prefix) {
			return r.handler, true
		}
	}
	return nil, false
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	handler, ok := Match(data)
	if !ok {
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
		return
	}

	handler(ctx, b, callback, h)
}
