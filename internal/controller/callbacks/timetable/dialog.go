package timetable

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const dialogExpired = "⌛️ Диалог устарел. Начните заново: /addlesson"

// HandleAddLessonSubject выбор предмета кнопкой на шаге 1
func HandleAddLessonSubject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.AddLessonSubject)
		if err != nil {
			common.HandleError(hc, err, "add_lesson_subject")
			return
		}

		subject, err := h.TimetableService.GetSubject(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "add_lesson_subject")
			return
		}

		chooseSubject(hc, subject)
	})
}

// HandleAddLessonCreateSubject создаёт предмет с введённым на шаге 1 названием
func HandleAddLessonCreateSubject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		raw, ok := h.StateManager.GetData(hc.TelegramID, state.KeyTitle)
		name, _ := raw.(string)
		if !ok || name == "" || h.StateManager.GetState(hc.TelegramID) != state.StateAddLessonSubject {
			hc.AnswerAlert(dialogExpired)
			return
		}

		subject, err := h.TimetableService.SubjectByName(ctx, hc.User.ID, name, true)
		if err != nil {
			common.HandleError(hc, err, "add_lesson_create_subject")
			return
		}

		chooseSubject(hc, subject)
	})
}

func chooseSubject(hc *common.HandlerContext, subject *model.Subject) {
	h := hc.Handler

	if _, ok := h.StateManager.Advance(hc.TelegramID, state.StateAddLessonSubject, state.KeySubjectID, subject.ID); !ok {
		hc.AnswerAlert(dialogExpired)
		return
	}

	if err := hc.EditMessage(common.PromptLessonWeekday(subject.Name), common.BuildWeekdayPicker()); err != nil {
		common.HandleError(hc, err, "add_lesson_subject")
		return
	}
	hc.Answer("")
}

// HandleAddLessonDay выбор дня недели на шаге 2
func HandleAddLessonDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	index, err := common.ParseIntFromCallback(callback.Data, keyboard.AddLessonDay)
	if err != nil {
		common.HandleError(hc, err, "add_lesson_day")
		return
	}
	day, err := schedule.WeekdayFromIndex(index)
	if err != nil {
		common.HandleError(hc, common.ErrInvalidFormat, "add_lesson_day")
		return
	}

	if _, ok := h.StateManager.Advance(hc.TelegramID, state.StateAddLessonWeekday, state.KeyWeekday, day); !ok {
		hc.AnswerAlert(dialogExpired)
		return
	}

	h.Logger.Info("Lesson weekday chosen",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("weekday", day.String()))

	if err := hc.EditMessage(common.PromptLessonStart(day), nil); err != nil {
		common.HandleError(hc, err, "add_lesson_day")
		return
	}
	hc.Answer("")
}
