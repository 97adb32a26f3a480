package common

import (
	"context"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := NewHandlerContext(ctx, b, callback, h)
	if hc.Message == nil {
		hc.Answer("❌ Ошибка")
		return
	}

	// Очищаем состояние пользователя
	hc.ClearState()

	if err := hc.EditMessage(MainMenuText, nil); err != nil {
		HandleError(hc, err, "back_to_main")
		return
	}

	hc.Answer("Возврат в главное меню")
}

// HandleNoop подтверждает нажатие на неактивную кнопку
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "")
}
