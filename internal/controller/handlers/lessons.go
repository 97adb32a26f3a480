package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSubjectSuggestions сколько похожих предметов предлагать
const maxSubjectSuggestions = 3

// HandleAddLessonStart начинает диалог добавления урока
func (h *Handlers) HandleAddLessonStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	subjects, err := h.timetableService.ListSubjects(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_lesson_start")
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.Start(telegramID, state.StateAddLessonSubject)

	h.logger.Info("Starting lesson creation",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("user_id", user.ID),
		zap.Int("subjects", len(subjects)))

	h.sendHTML(ctx, b, chatID, common.PromptLessonSubject, common.BuildSubjectPicker(subjects))
}

// handleLessonSubjectStep название предмета текстом: точное совпадение или выбор из похожих
func (h *Handlers) handleLessonSubjectStep(ctx context.Context, b *bot.Bot, chatID, telegramID, userID int64, name string) {
	if err := validateLength(name, SubjectNameMinLength, SubjectNameMaxLength); err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Название предмета должно быть от %d до %d символов.\n\nПопробуйте ещё раз:",
			SubjectNameMinLength, SubjectNameMaxLength))
		return
	}

	subject, err := h.timetableService.SubjectByName(ctx, userID, name, false)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_lesson_subject")
		return
	}

	if subject != nil {
		if _, ok := h.stateManager.Advance(telegramID, state.StateAddLessonSubject, state.KeySubjectID, subject.ID); !ok {
			h.stateManager.ClearState(telegramID)
			return
		}
		h.sendHTML(ctx, b, chatID, common.PromptLessonWeekday(subject.Name), common.BuildWeekdayPicker())
		return
	}

	suggestions, err := h.timetableService.SubjectSuggestions(ctx, userID, name)
	if err != nil {
		h.logger.Warn("Failed to load subject suggestions", zap.Int64("user_id", userID), zap.Error(err))
	}
	if len(suggestions) > maxSubjectSuggestions {
		suggestions = suggestions[:maxSubjectSuggestions]
	}

	h.stateManager.SetData(telegramID, state.KeyTitle, name)

	text := fmt.Sprintf("🔎 Предмета «%s» ещё нет.", html.EscapeString(name))
	if len(suggestions) > 0 {
		text += "\n\nВозможно, вы имели в виду один из этих:"
	}
	h.sendHTML(ctx, b, chatID, text, common.BuildSuggestionPicker(name, suggestions))
}

// handleLessonWeekdayStep день недели можно написать словами вместо кнопки
func (h *Handlers) handleLessonWeekdayStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	day, err := schedule.ParseWeekday(text)
	if err != nil {
		h.sendHTML(ctx, b, chatID, "❌ Не понял день недели. Выберите кнопкой:", common.BuildWeekdayPicker())
		return
	}

	if _, ok := h.stateManager.Advance(telegramID, state.StateAddLessonWeekday, state.KeyWeekday, day); !ok {
		h.stateManager.ClearState(telegramID)
		return
	}
	h.sendHTML(ctx, b, chatID, common.PromptLessonStart(day), nil)
}

func (h *Handlers) handleLessonStartStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	start, err := schedule.ParseTimeOfDay(text)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Время в формате ЧЧ:ММ, например 09:00.\n\nПопробуйте ещё раз:")
		return
	}

	if _, ok := h.stateManager.Advance(telegramID, state.StateAddLessonStart, state.KeyStart, start); !ok {
		h.stateManager.ClearState(telegramID)
		return
	}
	h.sendHTML(ctx, b, chatID, common.PromptLessonEnd(start), nil)
}

// handleLessonEndStep время окончания, после него через пробел можно написать заметку
func (h *Handlers) handleLessonEndStep(ctx context.Context, b *bot.Bot, chatID, telegramID, userID int64, text string) {
	endText, note, _ := strings.Cut(text, " ")
	end, err := schedule.ParseTimeOfDay(endText)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Время в формате ЧЧ:ММ, например 10:30.\n\nПопробуйте ещё раз:")
		return
	}

	raw, _ := h.stateManager.GetData(telegramID, state.KeyStart)
	start, ok := raw.(schedule.TimeOfDay)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Данные диалога потеряны. Начните заново: /addlesson")
		return
	}
	if !end.After(start) {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Урок должен закончиться позже %s.\n\nПопробуйте ещё раз:", start))
		return
	}

	if _, ok := h.stateManager.Advance(telegramID, state.StateAddLessonEnd, "", nil); !ok {
		h.stateManager.ClearState(telegramID)
		return
	}
	data := h.stateManager.Finish(telegramID)

	in := service.NewLesson{Start: start, End: end, Note: strings.TrimSpace(note)}
	in.SubjectID, _ = data[state.KeySubjectID].(uuid.UUID)
	in.Day, _ = data[state.KeyWeekday].(schedule.Weekday)

	lesson, err := h.lessonService.AddLesson(ctx, userID, in)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_lesson")
		return
	}

	h.sendHTML(ctx, b, chatID, "✅ Урок добавлен\n\n"+formatting.FormatLessonInfo(lesson), keyboard.LessonActions(lesson))
}
