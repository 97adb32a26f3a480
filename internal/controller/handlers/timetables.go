package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTimetables список расписаний с выбором основного
func (h *Handlers) HandleTimetables(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	timetables, err := h.timetableService.ListTimetables(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "timetables")
		return
	}

	text, kb := common.BuildTimetablesScreen(timetables)
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleNewTimetableStart спрашивает название нового расписания
func (h *Handlers) HandleNewTimetableStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}
	h.stateManager.Start(update.Message.From.ID, state.StateCreateTimetable)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.PromptTimetable)
}

func (h *Handlers) handleTimetableStep(ctx context.Context, b *bot.Bot, chatID, telegramID, userID int64, name string) {
	if err := validateLength(name, TimetableNameMinLength, TimetableNameMaxLength); err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Название должно быть от %d до %d символов.\n\nПопробуйте ещё раз:",
			TimetableNameMinLength, TimetableNameMaxLength))
		return
	}
	h.stateManager.ClearState(telegramID)

	timetable, err := h.timetableService.CreateTimetable(ctx, userID, name, "")
	if err != nil {
		h.replyError(ctx, b, chatID, err, "create_timetable")
		return
	}

	h.logger.Info("Timetable created via dialog",
		zap.Int64("user_id", userID),
		zap.String("timetable_id", timetable.ID.String()))

	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("✅ Расписание «%s» создано.\n\nВсе расписания: /timetables", html.EscapeString(timetable.Name)), nil)
}

// HandleSubjects предметы основного расписания
func (h *Handlers) HandleSubjects(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	subjects, err := h.timetableService.ListSubjects(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "subjects")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.FormatSubjects(subjects), nil)
}

// HandleAddSubjectStart спрашивает название предмета
func (h *Handlers) HandleAddSubjectStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}
	h.stateManager.Start(update.Message.From.ID, state.StateAddSubject)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.PromptSubject)
}

func (h *Handlers) handleSubjectStep(ctx context.Context, b *bot.Bot, chatID, telegramID, userID int64, name string) {
	if err := validateLength(name, SubjectNameMinLength, SubjectNameMaxLength); err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Название предмета должно быть от %d до %d символов.\n\nПопробуйте ещё раз:",
			SubjectNameMinLength, SubjectNameMaxLength))
		return
	}
	h.stateManager.ClearState(telegramID)

	existing, err := h.timetableService.SubjectByName(ctx, userID, name, false)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_subject")
		return
	}
	if existing != nil {
		h.sendHTML(ctx, b, chatID, fmt.Sprintf("ℹ️ Предмет «%s» уже есть.", html.EscapeString(existing.Name)), nil)
		return
	}

	subject, err := h.timetableService.AddSubject(ctx, userID, name, "")
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_subject")
		return
	}

	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("✅ Предмет «%s» добавлен.\n\nДобавить урок: /addlesson", html.EscapeString(subject.Name)), nil)
}
