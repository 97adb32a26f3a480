package common

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// MainMenuText список команд для /start, /help и возврата в меню
const MainMenuText = "📋 Доступные команды:\n\n" +
	"Расписание:\n" +
	"/now - Что идёт сейчас\n" +
	"/next - Следующие уроки\n" +
	"/today - Сегодня\n" +
	"/week - Неделя\n" +
	"/weekimage - Неделя картинкой\n" +
	"/lessons - Уроки по дням недели\n\n" +
	"Задачи:\n" +
	"/tasks - Открытые задачи\n" +
	"/overdue - Просроченные\n" +
	"/addtask - Новая задача\n\n" +
	"Настройка:\n" +
	"/addlesson - Добавить урок\n" +
	"/addsubject - Добавить предмет\n" +
	"/addevent - Добавить событие\n" +
	"/subjects - Предметы\n" +
	"/timetables - Расписания\n" +
	"/newtimetable - Новое расписание\n" +
	"/export - Выгрузить в календарь (.ics)\n\n" +
	"Пришлите файл .ics, чтобы импортировать события.\n" +
	"/cancel - Отменить текущий диалог"

var taskFilterTitles = map[string]string{
	keyboard.FilterOpen:     "📝 Задачи",
	keyboard.FilterOverdue:  "🔴 Просроченные задачи",
	keyboard.FilterDone:     "✅ Выполненные задачи",
	keyboard.FilterArchived: "🗄 Архив задач",
}

// LoadTasks задачи пользователя для фильтра списка
func LoadTasks(ctx context.Context, tasks *service.TaskService, ownerID int64, filter string) ([]*model.Task, error) {
	switch filter {
	case keyboard.FilterOpen:
		return tasks.OpenTasks(ctx, ownerID)
	case keyboard.FilterOverdue:
		return tasks.ExpiredTasks(ctx, ownerID)
	case keyboard.FilterDone:
		return tasks.CompletedTasks(ctx, ownerID)
	case keyboard.FilterArchived:
		return tasks.ArchivedTasks(ctx, ownerID)
	default:
		return nil, fmt.Errorf("%w: unknown task filter %q", ErrInvalidFormat, filter)
	}
}

// BuildTasksScreen страница списка задач с кнопками задач и фильтров
func BuildTasksScreen(filter string, tasks []*model.Task, page int, now time.Time, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	title, ok := taskFilterTitles[filter]
	if !ok {
		title = taskFilterTitles[keyboard.FilterOpen]
	}

	start, end, totalPages := keyboard.Page(len(tasks), page)
	pageTasks := tasks[start:end]
	if totalPages > 0 {
		page = start / keyboard.PageSize
	}

	text := formatting.FormatTaskList(title, nil, now, loc)
	if len(tasks) > 0 {
		text = fmt.Sprintf("%s (%d %s)", title, len(tasks), formatting.PluralizeTasks(len(tasks)))
		for i, task := range pageTasks {
			text += "\n\n" + formatting.FormatTaskShort(task, start+i+1, now, loc)
		}
	}

	b := keyboard.NewBuilder()
	buttons := make([]models.InlineKeyboardButton, 0, len(pageTasks))
	for i, task := range pageTasks {
		buttons = append(buttons, keyboard.Button(fmt.Sprintf("%d", start+i+1), keyboard.WithID(keyboard.TaskView, task.ID)))
	}
	b.Grid(4, buttons...)
	b.AddPagination(keyboard.TasksPage+filter+":", page, totalPages)

	filters := make([]models.InlineKeyboardButton, 0, 3)
	for _, f := range []string{keyboard.FilterOpen, keyboard.FilterOverdue, keyboard.FilterDone, keyboard.FilterArchived} {
		if f == filter {
			continue
		}
		filters = append(filters, keyboard.Button(taskFilterTitles[f], keyboard.TasksPage+f+":0"))
	}
	b.Grid(2, filters...)

	return text, b.Build()
}

// BuildTaskScreen карточка задачи с действиями
func BuildTaskScreen(task *model.Task, lesson *model.Lesson, now time.Time, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	return formatting.FormatTaskInfo(task, lesson, now, loc), keyboard.TaskActions(task)
}

// BuildWeekScreen неделя текстом с навигацией
func BuildWeekScreen(days []*model.CalendarDayEntry, now time.Time) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatWeek(days, now)

	b := keyboard.NewBuilder()
	if len(days) > 0 {
		b.Row(keyboard.WeekNavigation(schedule.StartOfDay(days[0].Date))...)
	}
	return text, b.Build()
}

// BuildLessonsScreen уроки по дням недели с кнопками карточек
func BuildLessonsScreen(week schedule.Week[*model.Lesson]) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatLessonWeek(week)

	buttons := make([]models.InlineKeyboardButton, 0)
	for _, d := range schedule.Weekdays() {
		for _, l := range schedule.Payloads(week.Day(d)) {
			label := fmt.Sprintf("%s %s %s", d.Short(), l.Start, l.Title())
			buttons = append(buttons, keyboard.Button(label, keyboard.WithID(keyboard.LessonView, l.ID)))
		}
	}
	return text, keyboard.NewBuilder().Grid(2, buttons...).Build()
}

// BuildLessonScreen карточка урока. next - ближайшее начало урока.
func BuildLessonScreen(lesson *model.Lesson, tasks []*model.Task, next, now time.Time, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatLessonInfo(lesson)
	if lesson.Note != "" {
		text += "\n📝 " + html.EscapeString(lesson.Note)
	}
	text += fmt.Sprintf("\n\n⏭ Следующий: %s %s (%s)",
		formatting.FormatDateWithWeekday(next), lesson.Start, formatting.FormatUntil(now, next))

	if len(tasks) > 0 {
		text += "\n\n" + formatting.FormatTaskList("Задачи к уроку:", tasks, now, loc)
	}
	return text, keyboard.LessonActions(lesson)
}

// BuildTimetablesScreen список расписаний с выбором основного
func BuildTimetablesScreen(timetables []*model.Timetable) (string, *models.InlineKeyboardMarkup) {
	if len(timetables) == 0 {
		return "🗂 Расписаний пока нет.\n\nСоздать: /newtimetable", nil
	}

	text := "🗂 Расписания (⭐️ - основное)\n"
	b := keyboard.NewBuilder()
	for i, t := range timetables {
		text += "\n" + formatting.FormatTimetable(t, i+1)
		if !t.IsDefault {
			b.Row(keyboard.Button("⭐️ Сделать основным: "+t.Name, keyboard.WithID(keyboard.TimetableDefault, t.ID)))
		}
	}
	return text, b.Build()
}

// BuildSubjectPicker выбор предмета для нового урока
func BuildSubjectPicker(subjects []*model.Subject) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(subjects))
	for _, s := range subjects {
		buttons = append(buttons, keyboard.Button(s.Name, keyboard.WithID(keyboard.AddLessonSubject, s.ID)))
	}
	return keyboard.NewBuilder().Grid(2, buttons...).Build()
}

// BuildSuggestionPicker похожие предметы и кнопка создания нового с названием name
func BuildSuggestionPicker(name string, suggestions []*model.Subject) *models.InlineKeyboardMarkup {
	b := keyboard.NewBuilder()
	for _, s := range suggestions {
		b.Row(keyboard.Button("📚 "+s.Name, keyboard.WithID(keyboard.AddLessonSubject, s.ID)))
	}
	b.Row(keyboard.Button("➕ Создать «"+name+"»", keyboard.AddLessonCreateSubject))
	return b.Build()
}

// BuildWeekdayPicker выбор дня недели
func BuildWeekdayPicker() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, schedule.DaysInWeek)
	for _, d := range schedule.Weekdays() {
		buttons = append(buttons, keyboard.Button(d.Short(), fmt.Sprintf("%s%d", keyboard.AddLessonDay, d.Index())))
	}
	return keyboard.NewBuilder().Grid(4, buttons...).Build()
}
