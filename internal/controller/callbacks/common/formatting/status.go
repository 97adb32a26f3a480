package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
)

// TaskStatusDisplay представляет отображение статуса задачи
type TaskStatusDisplay struct {
	Emoji string
	Text  string
}

// GetTaskStatusDisplay возвращает emoji и текст для статуса задачи
func GetTaskStatusDisplay(status model.TaskStatus) TaskStatusDisplay {
	displays := map[model.TaskStatus]TaskStatusDisplay{
		model.TaskStatusOpen:     {"🟡", "В работе"},
		model.TaskStatusOverdue:  {"🔴", "Просрочена"},
		model.TaskStatusDone:     {"✅", "Выполнена"},
		model.TaskStatusDoneLate: {"☑️", "Выполнена с опозданием"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return TaskStatusDisplay{"❓", "Неизвестно"}
}

// FormatTaskShort строка задачи в списке
func FormatTaskShort(task *model.Task, index int, now time.Time, loc *time.Location) string {
	display := GetTaskStatusDisplay(task.Status(now))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. %s %s", index, display.Emoji, html.EscapeString(task.Title))
	if task.Priority > 0 {
		sb.WriteString(" " + strings.Repeat("❗", min(task.Priority, 3)))
	}
	if task.Due != nil {
		fmt.Fprintf(&sb, "\n   ⏳ до %s", FormatDateTime(task.Due.In(loc)))
	}
	if task.Archived {
		sb.WriteString("\n   🗄 в архиве")
	}
	return sb.String()
}

// FormatTaskInfo карточка задачи
func FormatTaskInfo(task *model.Task, lesson *model.Lesson, now time.Time, loc *time.Location) string {
	display := GetTaskStatusDisplay(task.Status(now))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>%s</b>\n\n", display.Emoji, html.EscapeString(task.Title))
	if task.Text != "" {
		fmt.Fprintf(&sb, "📝 %s\n", html.EscapeString(task.Text))
	}
	if lesson != nil {
		fmt.Fprintf(&sb, "📚 Урок: %s, %s\n", html.EscapeString(lesson.Title()), lesson.Interval())
	}
	if task.Due != nil {
		fmt.Fprintf(&sb, "⏳ Срок: %s (%s)\n", FormatDateTime(task.Due.In(loc)), FormatUntil(now, *task.Due))
	} else {
		sb.WriteString("⏳ Срок: не задан\n")
	}
	if task.Priority > 0 {
		fmt.Fprintf(&sb, "❗ Приоритет: %d\n", task.Priority)
	}
	fmt.Fprintf(&sb, "📊 Статус: %s", display.Text)
	if task.CompletedAt != nil {
		fmt.Fprintf(&sb, " (%s)", FormatDateTime(task.CompletedAt.In(loc)))
	}
	if task.Archived {
		sb.WriteString("\n🗄 В архиве")
	}
	return sb.String()
}

// FormatTaskList нумерованный список задач с заголовком
func FormatTaskList(title string, tasks []*model.Task, now time.Time, loc *time.Location) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("%s\n\nЗадач нет 🎉", title)
	}

	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		lines = append(lines, FormatTaskShort(task, i+1, now, loc))
	}
	return fmt.Sprintf("%s (%d %s)\n\n%s", title, len(tasks), PluralizeTasks(len(tasks)), strings.Join(lines, "\n"))
}
