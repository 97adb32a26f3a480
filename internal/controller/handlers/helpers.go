package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

var (
	errBadDate      = errors.New("bad date")
	errBadTimeRange = errors.New("bad time range")
	errNoTitle      = errors.New("no title")
	errTooShort     = errors.New("too short")
	errTooLong      = errors.New("too long")
)

// defaultEventDuration длительность события, если указано только время начала
const defaultEventDuration = time.Hour

const noDue = "-"

// parseDate разбирает "25.09.2024" или "25.09". Без года берётся ближайшая
// такая дата начиная с сегодняшнего дня.
func parseDate(text string, now time.Time) (time.Time, error) {
	loc := now.Location()

	if t, err := time.ParseInLocation("02.01.2006", text, loc); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation("02.01", text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errBadDate, text)
	}
	today := schedule.StartOfDay(now)
	for _, year := range []int{now.Year(), now.Year() + 1} {
		date := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, loc)
		// 29.02 в невисокосный год
		if date.Month() != t.Month() {
			continue
		}
		if !date.Before(today) {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadDate, text)
}

// parseDue разбирает срок задачи: дата с необязательным временем или "-" без срока.
// Без времени срок - конец дня.
func parseDue(text string, now time.Time) (*time.Time, error) {
	text = strings.TrimSpace(text)
	if text == noDue {
		return nil, nil
	}

	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, fmt.Errorf("%w: %q", errBadDate, text)
	}

	date, err := parseDate(fields[0], now)
	if err != nil {
		return nil, err
	}

	due := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 0, 0, date.Location())
	if len(fields) == 2 {
		tod, err := schedule.ParseTimeOfDay(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadDate, err)
		}
		due = tod.On(date)
	}
	return &due, nil
}

// parseTimeRange разбирает "18:00-20:00" или "18:00"
func parseTimeRange(text string) (schedule.TimeOfDay, *schedule.TimeOfDay, error) {
	startText, endText, hasEnd := strings.Cut(text, "-")

	start, err := schedule.ParseTimeOfDay(startText)
	if err != nil {
		return schedule.TimeOfDay{}, nil, fmt.Errorf("%w: %v", errBadTimeRange, err)
	}
	if !hasEnd {
		return start, nil, nil
	}

	end, err := schedule.ParseTimeOfDay(endText)
	if err != nil {
		return schedule.TimeOfDay{}, nil, fmt.Errorf("%w: %v", errBadTimeRange, err)
	}
	if end.Before(start) {
		return schedule.TimeOfDay{}, nil, fmt.Errorf("%w: %s ends before %s", errBadTimeRange, end, start)
	}
	return start, &end, nil
}

// parseEventLine разбирает "25.09.2024 18:00-20:00 Концерт" или "25.09 Экскурсия" (весь день)
func parseEventLine(text string, now time.Time) (service.NewEvent, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return service.NewEvent{}, errNoTitle
	}

	date, err := parseDate(fields[0], now)
	if err != nil {
		return service.NewEvent{}, err
	}

	if !looksLikeTime(fields[1]) {
		return service.NewEvent{
			Title:  strings.Join(fields[1:], " "),
			Start:  date,
			End:    schedule.EndOfDay(date),
			AllDay: true,
		}, nil
	}

	start, end, err := parseTimeRange(fields[1])
	if err != nil {
		return service.NewEvent{}, err
	}
	if len(fields) < 3 {
		return service.NewEvent{}, errNoTitle
	}

	ev := service.NewEvent{
		Title: strings.Join(fields[2:], " "),
		Start: start.On(date),
	}
	if end != nil {
		ev.End = end.On(date)
	} else {
		ev.End = ev.Start.Add(defaultEventDuration)
	}
	return ev, nil
}

func looksLikeTime(s string) bool {
	return len(s) >= 4 && s[0] >= '0' && s[0] <= '9' && strings.Contains(s, ":")
}

// validateLength проверяет длину в символах
func validateLength(s string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(s)
	if n < minLen {
		return errTooShort
	}
	if n > maxLen {
		return errTooLong
	}
	return nil
}

// isCalendarFile документ похож на .ics
func isCalendarFile(doc *models.Document) bool {
	if doc == nil {
		return false
	}
	if strings.EqualFold(filepath.Ext(doc.FileName), ".ics") {
		return true
	}
	return strings.HasPrefix(doc.MimeType, "text/calendar")
}

// inputErrorText текст ошибки разбора пользовательского ввода
func inputErrorText(err error) string {
	switch {
	case errors.Is(err, errBadDate):
		return "❌ Не удалось разобрать дату. Пример: 25.09.2024 18:00"
	case errors.Is(err, errBadTimeRange):
		return "❌ Не удалось разобрать время. Пример: 18:00-20:00"
	case errors.Is(err, errNoTitle):
		return "❌ Не хватает названия."
	default:
		return "❌ Некорректный ввод."
	}
}
