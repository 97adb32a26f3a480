package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
)

// FormatLessonShort "09:00-10:30 Математика"
func FormatLessonShort(lesson *model.Lesson) string {
	text := fmt.Sprintf("%s-%s %s", lesson.Start, lesson.End, html.EscapeString(lesson.Title()))
	if lesson.Note != "" {
		text += fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(lesson.Note))
	}
	return text
}

// FormatLessonInfo урок с днём недели и длительностью
func FormatLessonInfo(lesson *model.Lesson) string {
	return fmt.Sprintf("📚 <b>%s</b>\n📅 %s\n🕐 %s-%s (%s)",
		html.EscapeString(lesson.Title()),
		lesson.Day,
		lesson.Start,
		lesson.End,
		FormatDuration(lesson.Interval().Duration()),
	)
}

// FormatCurrentLessons ответ на "что идёт сейчас"
func FormatCurrentLessons(lessons []*model.Lesson, now time.Time) string {
	if len(lessons) == 0 {
		return fmt.Sprintf("☕️ Сейчас (%s) уроков нет", FormatTime(now))
	}

	lines := make([]string, 0, len(lessons))
	for _, l := range lessons {
		left := l.End.On(now).Sub(now)
		lines = append(lines, fmt.Sprintf("▶️ %s\n   осталось %s", FormatLessonShort(l), FormatDuration(left)))
	}
	return fmt.Sprintf("🔔 Сейчас идёт:\n\n%s", strings.Join(lines, "\n"))
}

// FormatNextLessons ближайшие уроки. starts - дата начала каждого урока.
func FormatNextLessons(lessons []*model.Lesson, starts []time.Time, now time.Time) string {
	if len(lessons) == 0 {
		return "📭 В расписании нет уроков.\n\nДобавьте урок: /addlesson"
	}

	lines := make([]string, 0, len(lessons))
	for i, l := range lessons {
		line := "⏭ " + FormatLessonShort(l)
		if i < len(starts) {
			line += fmt.Sprintf("\n   %s, %s", FormatDateWithWeekday(starts[i]), FormatUntil(now, starts[i]))
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("Следующий %s:\n\n%s", PluralizeLessons(len(lessons)), strings.Join(lines, "\n"))
}

// FormatCalendarEvent строка записи дня
func FormatCalendarEvent(e *model.CalendarEvent) string {
	icon := "📚"
	if e.Kind == model.CalendarEventEvent {
		icon = "📌"
	}
	if e.AllDay {
		return fmt.Sprintf("%s весь день %s", icon, html.EscapeString(e.Title))
	}
	return fmt.Sprintf("%s %s %s", icon, FormatTimeRange(e.Start, e.End), html.EscapeString(e.Title))
}

// FormatDayEntry день с уроками и событиями
func FormatDayEntry(day *model.CalendarDayEntry, now time.Time) string {
	header := "<b>" + FormatDayHeader(day.Date) + "</b>"
	if schedule.StartOfDay(now).Equal(schedule.StartOfDay(day.Date)) {
		header += " 👈 сегодня"
	}

	if len(day.Entries) == 0 {
		return header + "\n   свободно"
	}

	lines := make([]string, 0, len(day.Entries)+1)
	lines = append(lines, header)
	for _, e := range day.Entries {
		lines = append(lines, "   "+FormatCalendarEvent(e))
	}
	return strings.Join(lines, "\n")
}

// FormatWeek неделя по дням
func FormatWeek(days []*model.CalendarDayEntry, now time.Time) string {
	if len(days) == 0 {
		return "📅 Нет данных"
	}

	total := 0
	parts := make([]string, 0, len(days))
	for _, d := range days {
		total += len(d.Entries)
		parts = append(parts, FormatDayEntry(d, now))
	}

	return fmt.Sprintf("📅 Неделя %s\n\n%s", FormatWeekRange(days[0].Date), strings.Join(parts, "\n\n"))
}

// FormatLessonWeek шаблон недели без дат: уроки по дням
func FormatLessonWeek(week schedule.Week[*model.Lesson]) string {
	if week.Empty() {
		return "📭 В расписании нет уроков.\n\nДобавьте урок: /addlesson"
	}

	parts := make([]string, 0, schedule.DaysInWeek)
	for _, d := range schedule.Weekdays() {
		entries := week.Day(d)
		if len(entries) == 0 {
			continue
		}
		lines := []string{"<b>" + d.String() + "</b>"}
		for _, l := range schedule.Payloads(entries) {
			lines = append(lines, "   "+FormatLessonShort(l))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return "🗓 Уроки по дням недели\n\n" + strings.Join(parts, "\n\n")
}

// FormatTimetable строка расписания в списке
func FormatTimetable(t *model.Timetable, index int) string {
	mark := ""
	if t.IsDefault {
		mark = " ⭐️"
	}
	return fmt.Sprintf("%d. %s%s", index, html.EscapeString(t.Name), mark)
}

// FormatSubjects список предметов
func FormatSubjects(subjects []*model.Subject) string {
	if len(subjects) == 0 {
		return "📚 Предметов пока нет.\n\nДобавить: /addsubject"
	}

	lines := make([]string, 0, len(subjects))
	for i, s := range subjects {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, html.EscapeString(s.Name)))
	}
	return "📚 Предметы\n\n" + strings.Join(lines, "\n")
}
