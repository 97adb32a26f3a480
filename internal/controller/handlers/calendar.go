package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/state"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var errFileTooLarge = errors.New("file too large")

// HandleAddEventStart просит описать событие одной строкой
func (h *Handlers) HandleAddEventStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}
	h.stateManager.Start(update.Message.From.ID, state.StateAddEvent)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.PromptEvent)
}

func (h *Handlers) handleEventStep(ctx context.Context, b *bot.Bot, chatID, telegramID, userID int64, text string) {
	in, err := parseEventLine(text, h.now())
	if err != nil {
		h.sendError(ctx, b, chatID, inputErrorText(err)+"\n\n"+common.PromptEvent)
		return
	}
	if err := validateLength(in.Title, 1, EventTitleMaxLength); err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Название события должно быть не длиннее %d символов.", EventTitleMaxLength))
		return
	}
	h.stateManager.ClearState(telegramID)

	event, err := h.calendarService.AddEvent(ctx, userID, in)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "add_event")
		return
	}

	text = fmt.Sprintf("✅ Событие добавлено\n\n%s\n%s",
		formatting.FormatDateWithWeekday(event.Start.In(h.loc)),
		formatting.FormatCalendarEvent(model.EventCalendarEvent(event)))
	kb := keyboard.NewBuilder().
		Row(keyboard.DeleteButton(keyboard.WithID(keyboard.EventDelete, event.ID))).
		Build()
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleExport отправляет расписание файлом .ics
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	ics, err := h.exportService.ExportICS(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "export")
		return
	}

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: "timetable.ics", Data: strings.NewReader(ics)},
		Caption:  "📤 Расписание для Google Calendar, Apple Calendar и Outlook",
	})
	if err != nil {
		h.logger.Error("Failed to send calendar file", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	h.logger.Info("Calendar exported", zap.Int64("user_id", user.ID), zap.Int("bytes", len(ics)))
}

// HandleDocument импортирует события из присланного .ics
func (h *Handlers) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Document == nil {
		return
	}
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID
	doc := update.Message.Document

	if !isCalendarFile(doc) {
		h.sendError(ctx, b, chatID, "❌ Поддерживаются только файлы календаря .ics")
		return
	}
	if doc.FileSize > MaxImportFileSize {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Файл больше %d КБ", MaxImportFileSize>>10))
		return
	}

	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: doc.FileID})
	if err != nil {
		h.replyError(ctx, b, chatID, err, "import_get_file")
		return
	}

	body, err := h.download(ctx, b.FileDownloadLink(file))
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Файл больше %d КБ", MaxImportFileSize>>10))
			return
		}
		h.replyError(ctx, b, chatID, err, "import_download")
		return
	}

	result, err := h.exportService.ImportICS(ctx, user.ID, body)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "import")
		return
	}

	text := fmt.Sprintf("📥 Импорт завершён\n\n✅ Добавлено: %d %s", result.Imported, formatting.PluralizeEvents(result.Imported))
	if result.Duplicate > 0 {
		text += fmt.Sprintf("\n♻️ Уже были: %d", result.Duplicate)
	}
	if result.Skipped > 0 {
		text += fmt.Sprintf("\n⚠️ Пропущено: %d", result.Skipped)
	}
	text += "\n\nНеделя: /week"
	h.sendMessage(ctx, b, chatID, text)
}

// download скачивает файл не больше MaxImportFileSize
func (h *Handlers) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImportFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(body) > MaxImportFileSize {
		return nil, errFileTooLarge
	}
	return body, nil
}
