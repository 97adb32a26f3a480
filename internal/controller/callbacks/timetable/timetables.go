package timetable

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSetDefaultTimetable делает расписание основным
func HandleSetDefaultTimetable(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.TimetableDefault)
		if err != nil {
			common.HandleError(hc, err, "set_default_timetable")
			return
		}

		if err := h.TimetableService.SetDefaultTimetable(ctx, hc.User.ID, id); err != nil {
			common.HandleError(hc, err, "set_default_timetable")
			return
		}

		timetables, err := h.TimetableService.ListTimetables(ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "set_default_timetable")
			return
		}

		text, kb := common.BuildTimetablesScreen(timetables)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Default timetable changed", "⭐️ Основное расписание изменено")
	})
}

// HandleDeleteEvent удаляет разовое событие
func HandleDeleteEvent(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUIDFromCallback(callback.Data, keyboard.EventDelete)
		if err != nil {
			common.HandleError(hc, err, "delete_event")
			return
		}

		if err := h.CalendarService.DeleteEvent(ctx, hc.User.ID, id); err != nil {
			common.HandleError(hc, err, "delete_event")
			return
		}

		if err := hc.EditMessage("🗑 Событие удалено", nil); err != nil {
			h.Logger.Warn("Failed to edit message", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Event deleted", "Удалено")
	})
}
