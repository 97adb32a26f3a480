package tasks

import (
	"context"
	"html"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleTasksPage страница списка задач с фильтром
func HandleTasksPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		filter, page, err := common.ParsePageFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "tasks_page")
			return
		}

		tasks, err := common.LoadTasks(ctx, h.TaskService, hc.User.ID, filter)
		if err != nil {
			common.HandleError(hc, err, "tasks_page")
			return
		}

		text, kb := common.BuildTasksScreen(filter, tasks, page, hc.Now(), h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "tasks_page")
			return
		}
		hc.Answer("")
	})
}

// HandleViewTask карточка задачи
func HandleViewTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskView, func(hc *common.HandlerContext, id uuid.UUID) {
		task, err := h.TaskService.GetTask(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "view_task")
			return
		}
		showTask(hc, task, "")
	})
}

// HandleCompleteTask отмечает задачу выполненной
func HandleCompleteTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskComplete, func(hc *common.HandlerContext, id uuid.UUID) {
		task, err := h.TaskService.CompleteTask(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "complete_task")
			return
		}
		showTask(hc, task, "✅ Выполнено")
	})
}

// HandleReopenTask возвращает задачу в работу
func HandleReopenTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskReopen, func(hc *common.HandlerContext, id uuid.UUID) {
		task, err := h.TaskService.ReopenTask(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "reopen_task")
			return
		}
		showTask(hc, task, "↩️ Задача снова в работе")
	})
}

// HandleArchiveTask убирает задачу в архив
func HandleArchiveTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskArchive, func(hc *common.HandlerContext, id uuid.UUID) {
		task, err := h.TaskService.ArchiveTask(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "archive_task")
			return
		}
		showTask(hc, task, "🗄 В архиве")
	})
}

// HandleUnarchiveTask достаёт задачу из архива
func HandleUnarchiveTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskUnarchive, func(hc *common.HandlerContext, id uuid.UUID) {
		task, err := h.TaskService.UnarchiveTask(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "unarchive_task")
			return
		}
		showTask(hc, task, "📤 Возвращена из архива")
	})
}

// HandleDeleteTask спрашивает подтверждение удаления
func HandleDeleteTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskDelete, func(hc *common.HandlerContext, id uuid.UUID) {
		task, err := h.TaskService.GetTask(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "delete_task")
			return
		}

		text := "🗑 Удалить задачу <b>" + html.EscapeString(task.Title) + "</b>?\n\nНапоминания по ней тоже будут удалены."
		kb := keyboard.ConfirmDelete(keyboard.WithID(keyboard.TaskConfirmDelete, id), keyboard.WithID(keyboard.TaskView, id))
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "delete_task")
			return
		}
		hc.Answer("")
	})
}

// HandleConfirmDeleteTask удаляет задачу
func HandleConfirmDeleteTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withTask(ctx, b, callback, h, keyboard.TaskConfirmDelete, func(hc *common.HandlerContext, id uuid.UUID) {
		if err := h.TaskService.DeleteTask(ctx, hc.User.ID, id); err != nil {
			common.HandleError(hc, err, "confirm_delete_task")
			return
		}

		kb := keyboard.NewBuilder().Row(keyboard.Button("📝 К задачам", keyboard.TasksPage+keyboard.FilterOpen+":0")).Build()
		if err := hc.EditMessage("🗑 Задача удалена", kb); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Task deleted", "Удалено")
	})
}

func withTask(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	prefix string,
	handler func(hc *common.HandlerContext, id uuid.UUID),
) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, prefix)
		if err != nil {
			common.HandleError(hc, err, "parse_task_id")
			return
		}
		handler(hc, id)
	})
}

func showTask(hc *common.HandlerContext, task *model.Task, answer string) {
	h := hc.Handler

	var lesson *model.Lesson
	if task.LessonID != nil {
		l, err := h.LessonService.GetLesson(hc.Ctx, hc.User.ID, *task.LessonID)
		if err != nil {
			h.Logger.Warn("Failed to load task lesson",
				zap.String("task_id", task.ID.String()),
				zap.Error(err))
		}
		lesson = l
	}

	text, kb := common.BuildTaskScreen(task, lesson, hc.Now(), h.Location)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "show_task")
		return
	}
	hc.Answer(answer)
}
