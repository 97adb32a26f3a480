package timetable

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleViewLesson карточка урока с задачами к нему
func HandleViewLesson(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.LessonView)
		if err != nil {
			common.HandleError(hc, err, "view_lesson")
			return
		}

		lesson, err := h.LessonService.GetLesson(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "view_lesson")
			return
		}

		tasks, err := h.TaskService.TasksForLesson(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "view_lesson")
			return
		}

		next := h.LessonService.DateOfNext(lesson).In(h.Location)
		text, kb := common.BuildLessonScreen(lesson, tasks, next, hc.Now(), h.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "view_lesson")
			return
		}
		hc.Answer("")
	})
}

// HandleDeleteLesson спрашивает подтверждение удаления урока
func HandleDeleteLesson(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.LessonDelete)
		if err != nil {
			common.HandleError(hc, err, "delete_lesson")
			return
		}

		lesson, err := h.LessonService.GetLesson(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "delete_lesson")
			return
		}

		text := "🗑 Удалить урок?\n\n" + formatting.FormatLessonInfo(lesson) +
			"\n\nЗадачи к уроку останутся, но будут отвязаны от него."
		kb := keyboard.ConfirmDelete(keyboard.WithID(keyboard.LessonConfirmDelete, id), keyboard.WithID(keyboard.LessonView, id))
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "delete_lesson")
			return
		}
		hc.Answer("")
	})
}

// HandleConfirmDeleteLesson удаляет урок
func HandleConfirmDeleteLesson(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.LessonConfirmDelete)
		if err != nil {
			common.HandleError(hc, err, "confirm_delete_lesson")
			return
		}

		if err := h.LessonService.DeleteLesson(ctx, hc.User.ID, id); err != nil {
			common.HandleError(hc, err, "confirm_delete_lesson")
			return
		}

		if err := hc.EditMessage("🗑 Урок удалён\n\nВсе уроки: /lessons", nil); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Lesson deleted", "Удалено")
	})
}

// HandleLessonAddTask начинает диалог новой задачи, привязанной к уроку
func HandleLessonAddTask(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.LessonAddTask)
		if err != nil {
			common.HandleError(hc, err, "lesson_add_task")
			return
		}

		if _, err := h.LessonService.GetLesson(ctx, hc.User.ID, id); err != nil {
			common.HandleError(hc, err, "lesson_add_task")
			return
		}

		hc.StartDialog(state.StateAddTaskTitle)
		h.StateManager.SetData(hc.TelegramID, state.KeyLessonID, id)

		h.PromptTaskTitle(ctx, b, hc.ChatID)
		hc.Answer("")
	})
}
