package common

import (
	"fmt"
	"html"

	"github.com/Freeeeeet/timetable_bot/internal/schedule"
)

// Подсказки шагов диалогов
const (
	PromptLessonSubject = "📚 Новый урок\n\n" +
		"Шаг 1 из 4: выберите предмет или напишите его название\n\n" +
		"Для отмены используйте /cancel"

	PromptTaskTitle = "📝 Новая задача\n\n" +
		"Шаг 1 из 2: что нужно сделать?\n\n" +
		"Для отмены используйте /cancel"

	PromptTaskDue = "Шаг 2 из 2: срок выполнения\n\n" +
		"Форматы: 25.09.2024 18:00, 25.09 18:00, 25.09 или \"-\" без срока\n\n" +
		"Для отмены используйте /cancel"

	PromptEvent = "📌 Новое событие\n\n" +
		"Одной строкой: дата, время и название\n" +
		"25.09.2024 18:00-20:00 Концерт\n" +
		"25.09.2024 Экскурсия (на весь день)\n\n" +
		"Для отмены используйте /cancel"

	PromptSubject = "📚 Название нового предмета?\n\nДля отмены используйте /cancel"

	PromptTimetable = "🗂 Название нового расписания?\n\nДля отмены используйте /cancel"
)

// PromptLessonWeekday шаг 2 добавления урока
func PromptLessonWeekday(subject string) string {
	return fmt.Sprintf("✅ Предмет: %s\n\nШаг 2 из 4: выберите день недели", html.EscapeString(subject))
}

// PromptLessonStart шаг 3 добавления урока
func PromptLessonStart(day schedule.Weekday) string {
	return fmt.Sprintf("✅ День: %s\n\nШаг 3 из 4: время начала в формате ЧЧ:ММ, например 09:00\n\n"+
		"Для отмены используйте /cancel", day)
}

// PromptLessonEnd шаг 4 добавления урока
func PromptLessonEnd(start schedule.TimeOfDay) string {
	return fmt.Sprintf("✅ Начало: %s\n\nШаг 4 из 4: время окончания, например 10:30\n\n"+
		"Для отмены используйте /cancel", start)
}
