package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(ctx, service.Profile{
		TelegramID:   from.ID,
		ChatID:       chatID,
		Username:     from.Username,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		LanguageCode: from.LanguageCode,
	})
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	if _, err := h.timetableService.EnsureDefaultTimetable(ctx, registeredUser.ID); err != nil {
		h.replyError(ctx, b, chatID, err, "ensure_default_timetable")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я помогу вести школьное расписание: уроки по дням недели, "+
			"домашние задания со сроками и разовые события.\n\n%s",
		registeredUser.FirstName,
		common.MainMenuText,
	)

	h.sendMessage(ctx, b, chatID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "📚 Справка\n\n"+common.MainMenuText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Если нет активного состояния, подсказываем команды
	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Не понимаю. Список команд: /help")
		return
	}

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	chatID := update.Message.Chat.ID

	// Обрабатываем в зависимости от состояния
	switch currentState {
	case state.StateAddLessonSubject:
		h.handleLessonSubjectStep(ctx, b, chatID, telegramID, user.ID, text)
	case state.StateAddLessonWeekday:
		h.handleLessonWeekdayStep(ctx, b, chatID, telegramID, text)
	case state.StateAddLessonStart:
		h.handleLessonStartStep(ctx, b, chatID, telegramID, text)
	case state.StateAddLessonEnd:
		h.handleLessonEndStep(ctx, b, chatID, telegramID, user.ID, text)
	case state.StateAddTaskTitle:
		h.handleTaskTitleStep(ctx, b, chatID, telegramID, text)
	case state.StateAddTaskDue:
		h.handleTaskDueStep(ctx, b, chatID, telegramID, user.ID, text)
	case state.StateAddEvent:
		h.handleEventStep(ctx, b, chatID, telegramID, user.ID, text)
	case state.StateAddSubject:
		h.handleSubjectStep(ctx, b, chatID, telegramID, user.ID, text)
	case state.StateCreateTimetable:
		h.handleTimetableStep(ctx, b, chatID, telegramID, user.ID, text)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
