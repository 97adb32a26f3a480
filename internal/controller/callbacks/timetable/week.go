package timetable

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleWeek неделя текстом, листание вперёд и назад
func HandleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.ParseDateFromCallback(callback.Data, keyboard.Week, h.Location)
		if err != nil {
			common.HandleError(hc, err, "week")
			return
		}

		days, err := h.CalendarService.WeekEntries(ctx, hc.User.ID, date)
		if err != nil {
			common.HandleError(hc, err, "week")
			return
		}

		text, kb := common.BuildWeekScreen(days, hc.Now())
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "week")
			return
		}
		hc.Answer("")
	})
}

// HandleWeekImage неделя картинкой. Старое сообщение заменяется фото.
func HandleWeekImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.ParseDateFromCallback(callback.Data, keyboard.WeekImage, h.Location)
		if err != nil {
			common.HandleError(hc, err, "week_image")
			return
		}
		weekStart := schedule.StartOfWeek(date)

		data, err := common.GenerateWeekImage(ctx, h.CalendarService, h.WeekCache, hc.User.ID, weekStart, hc.Now())
		if err != nil {
			common.HandleError(hc, err, "week_image")
			return
		}

		kb := keyboard.NewBuilder().Row(keyboard.WeekImageNavigation(weekStart)...).Build()
		if err := hc.SendPhoto(data, "📅 Неделя "+formatting.FormatWeekRange(weekStart), kb); err != nil {
			common.HandleError(hc, err, "week_image")
			return
		}

		// Удаляем старое сообщение
		if err := hc.DeleteMessage(); err != nil {
			h.Logger.Debug("Failed to delete previous week message", zap.Error(err))
		}
		hc.Answer("")
	})
}
