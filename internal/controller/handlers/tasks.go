package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleTasks открытые задачи
func (h *Handlers) HandleTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.showTasks(ctx, b, update, keyboard.FilterOpen)
}

// HandleOverdue просроченные задачи
func (h *Handlers) HandleOverdue(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.showTasks(ctx, b, update, keyboard.FilterOverdue)
}

func (h *Handlers) showTasks(ctx context.Context, b *bot.Bot, update *models.Update, filter string) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := common.LoadTasks(ctx, h.taskService, user.ID, filter)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "tasks_"+filter)
		return
	}

	text, kb := common.BuildTasksScreen(filter, tasks, 0, h.now(), h.loc)
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleAddTaskStart начинает диалог создания задачи
func (h *Handlers) HandleAddTaskStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.Start(telegramID, state.StateAddTaskTitle)

	h.logger.Info("Starting task creation",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("user_id", user.ID))

	h.PromptTaskTitle(ctx, b, update.Message.Chat.ID)
}

// PromptTaskTitle первый шаг диалога задачи. Используется и кнопкой "задача к уроку".
func (h *Handlers) PromptTaskTitle(ctx context.Context, b *bot.Bot, chatID int64) {
	h.sendMessage(ctx, b, chatID, common.PromptTaskTitle)
}

func (h *Handlers) handleTaskTitleStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, title string) {
	if err := validateLength(title, 1, TaskTitleMaxLength); err != nil {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Название задачи должно быть от 1 до %d символов.\n\nПопробуйте ещё раз:", TaskTitleMaxLength))
		return
	}

	if _, ok := h.stateManager.Advance(telegramID, state.StateAddTaskTitle, state.KeyTitle, title); !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Задача: %s\n\n%s", title, common.PromptTaskDue))
}

func (h *Handlers) handleTaskDueStep(ctx context.Context, b *bot.Bot, chatID, telegramID, userID int64, text string) {
	now := h.now()
	due, err := parseDue(text, now)
	if err != nil {
		h.sendError(ctx, b, chatID, inputErrorText(err)+"\n\nПопробуйте ещё раз или отправьте \"-\":")
		return
	}

	if _, ok := h.stateManager.Advance(telegramID, state.StateAddTaskDue, "", nil); !ok {
		h.stateManager.ClearState(telegramID)
		return
	}
	data := h.stateManager.Finish(telegramID)

	in := service.NewTask{Due: due}
	in.Title, _ = data[state.KeyTitle].(string)
	if lessonID, ok := data[state.KeyLessonID].(uuid.UUID); ok {
		in.LessonID = &lessonID
	}

	task, err := h.taskService.AddTask(ctx, userID, in)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_task")
		return
	}

	text, kb := common.BuildTaskScreen(task, nil, now, h.loc)
	h.sendHTML(ctx, b, chatID, "✅ Задача добавлена\n\n"+text, kb)

	h.logger.Info("Task created via dialog",
		zap.Int64("user_id", userID),
		zap.String("task_id", task.ID.String()),
		zap.String("title", task.Title))
}
