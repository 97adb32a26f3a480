package controller

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// Notifier отправляет напоминания сообщениями бота
type Notifier struct {
	bot *bot.Bot
}

func NewNotifier(b *bot.Bot) *Notifier {
	return &Notifier{bot: b}
}

// Notify реализует service.Notifier
func (n *Notifier) Notify(ctx context.Context, chatID int64, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send reminder to chat %d: %w", chatID, err)
	}
	return nil
}
