package controller

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/timetable_bot/internal/controller/handlers"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services handlers.Services,
	loc *time.Location,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(services, stateManager, loc, logger)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		callbacks.Services{
			Users:      services.Users,
			Timetables: services.Timetables,
			Lessons:    services.Lessons,
			Tasks:      services.Tasks,
			Calendar:   services.Calendar,
			Cache:      services.Cache,
		},
		stateManager,
		loc,
		logger,
		cmdHandlers.PromptTaskTitle,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	commands := map[string]bot.HandlerFunc{
		"/start":        c.handlers.HandleStart,
		"/help":         c.handlers.HandleHelp,
		"/cancel":       c.handlers.HandleCancel,
		"/now":          c.handlers.HandleNow,
		"/next":         c.handlers.HandleNext,
		"/today":        c.handlers.HandleToday,
		"/week":         c.handlers.HandleWeek,
		"/weekimage":    c.handlers.HandleWeekImage,
		"/lessons":      c.handlers.HandleLessons,
		"/tasks":        c.handlers.HandleTasks,
		"/overdue":      c.handlers.HandleOverdue,
		"/addtask":      c.handlers.HandleAddTaskStart,
		"/addlesson":    c.handlers.HandleAddLessonStart,
		"/addsubject":   c.handlers.HandleAddSubjectStart,
		"/addevent":     c.handlers.HandleAddEventStart,
		"/subjects":     c.handlers.HandleSubjects,
		"/timetables":   c.handlers.HandleTimetables,
		"/newtimetable": c.handlers.HandleNewTimetableStart,
		"/export":       c.handlers.HandleExport,
	}
	for command, handler := range commands {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeExact, handler)
	}

	// Текстовые сообщения вне команд (для диалогов с состояниями)
	c.bot.RegisterHandlerMatchFunc(isDialogText, c.handlers.HandleTextMessage)

	// Присланные файлы .ics
	c.bot.RegisterHandlerMatchFunc(isDocument, c.handlers.HandleDocument)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

func isDialogText(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/")
}

func isDocument(update *models.Update) bool {
	return update.Message != nil && update.Message.Document != nil
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "now", Description: "🔔 Что идёт сейчас"},
		{Command: "next", Description: "⏭ Следующий урок"},
		{Command: "today", Description: "📅 Расписание на сегодня"},
		{Command: "week", Description: "🗓 Неделя"},
		{Command: "weekimage", Description: "🖼 Неделя картинкой"},
		{Command: "tasks", Description: "📝 Задачи"},
		{Command: "overdue", Description: "🔴 Просроченные задачи"},
		{Command: "addtask", Description: "➕ Новая задача"},
		{Command: "addlesson", Description: "📚 Добавить урок"},
		{Command: "addevent", Description: "📌 Добавить событие"},
		{Command: "lessons", Description: "📖 Уроки по дням"},
		{Command: "subjects", Description: "🎒 Предметы"},
		{Command: "timetables", Description: "🗂 Расписания"},
		{Command: "export", Description: "📤 Выгрузить в календарь"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
