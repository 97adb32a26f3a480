package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var monday = time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC)

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "уроков"},
		{1, "урок"},
		{2, "урока"},
		{4, "урока"},
		{5, "уроков"},
		{11, "уроков"},
		{12, "уроков"},
		{21, "урок"},
		{22, "урока"},
		{111, "уроков"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeLessons(tt.count), "count %d", tt.count)
	}

	assert.Equal(t, "задачи", PluralizeTasks(3))
	assert.Equal(t, "событий", PluralizeEvents(7))
	assert.Equal(t, "день", PluralizeDays(1))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45*time.Minute))
	assert.Equal(t, "2 ч", FormatDuration(2*time.Hour))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90*time.Minute))
}

func TestFormatUntil(t *testing.T) {
	now := monday.Add(8 * time.Hour)

	assert.Equal(t, "сейчас", FormatUntil(now, now))
	assert.Equal(t, "сейчас", FormatUntil(now, now.Add(-time.Hour)))
	assert.Equal(t, "через 1 ч 15 мин", FormatUntil(now, now.Add(75*time.Minute)))
	assert.Equal(t, "через 2 дня", FormatUntil(now, now.Add(50*time.Hour)))
}

func TestFormatDates(t *testing.T) {
	assert.Equal(t, "Понедельник, 9 сентября", FormatDayHeader(monday))
	assert.Equal(t, "Пн, 09.09.2024", FormatDateWithWeekday(monday))
	assert.Equal(t, "09.09 - 15.09.2024", FormatWeekRange(monday))
}

func lesson(name string, day schedule.Weekday, start, end string) *model.Lesson {
	s, _ := schedule.ParseTimeOfDay(start)
	e, _ := schedule.ParseTimeOfDay(end)
	return &model.Lesson{
		ID:      uuid.New(),
		Day:     day,
		Start:   s,
		End:     e,
		Subject: &model.Subject{Name: name},
	}
}

func TestFormatLessonShort(t *testing.T) {
	l := lesson("Алгебра & геометрия", schedule.Monday, "09:00", "10:30")
	assert.Equal(t, "09:00-10:30 Алгебра &amp; геометрия", FormatLessonShort(l))

	l.Note = "каб. 12"
	assert.Equal(t, "09:00-10:30 Алгебра &amp; геометрия <i>(каб. 12)</i>", FormatLessonShort(l))
}

func TestFormatDayEntry(t *testing.T) {
	empty := &model.CalendarDayEntry{Date: monday}
	assert.Equal(t, "<b>Понедельник, 9 сентября</b> 👈 сегодня\n   свободно", FormatDayEntry(empty, monday.Add(10*time.Hour)))

	day := &model.CalendarDayEntry{
		Date: monday,
		Entries: []*model.CalendarEvent{
			model.LessonCalendarEvent(lesson("Физика", schedule.Monday, "09:00", "10:30"), monday),
			model.EventCalendarEvent(&model.Event{Title: "Экскурсия", Start: monday, End: monday.Add(23 * time.Hour), AllDay: true}),
		},
	}
	want := "<b>Понедельник, 9 сентября</b>\n" +
		"   📚 09:00-10:30 Физика\n" +
		"   📌 весь день Экскурсия"
	assert.Equal(t, want, FormatDayEntry(day, monday.AddDate(0, 0, 3)))
}

func TestFormatLessonWeek(t *testing.T) {
	week := schedule.GroupByDay(model.LessonEntries([]*model.Lesson{
		lesson("Химия", schedule.Wednesday, "11:00", "12:00"),
		lesson("Физика", schedule.Monday, "09:00", "10:00"),
	}))

	want := "🗓 Уроки по дням недели\n\n" +
		"<b>Понедельник</b>\n   09:00-10:00 Физика\n\n" +
		"<b>Среда</b>\n   11:00-12:00 Химия"
	assert.Equal(t, want, FormatLessonWeek(week))

	assert.Contains(t, FormatLessonWeek(schedule.Week[*model.Lesson]{}), "/addlesson")
}

func TestFormatTaskShort(t *testing.T) {
	now := monday.Add(12 * time.Hour)
	due := monday.Add(10 * time.Hour)

	task := &model.Task{Title: "Реферат", Due: &due, Priority: 2}
	assert.Equal(t, "1. 🔴 Реферат ❗❗\n   ⏳ до 09.09.2024 10:00", FormatTaskShort(task, 1, now, time.UTC))

	task.Completed = true
	task.Archived = true
	assert.Equal(t, "2. ✅ Реферат ❗❗\n   ⏳ до 09.09.2024 10:00\n   🗄 в архиве", FormatTaskShort(task, 2, now, time.UTC))
}

func TestFormatTaskList(t *testing.T) {
	now := monday
	assert.Equal(t, "📝 Задачи\n\nЗадач нет 🎉", FormatTaskList("📝 Задачи", nil, now, time.UTC))

	tasks := []*model.Task{{Title: "A"}, {Title: "B"}}
	assert.Equal(t, "📝 Задачи (2 задачи)\n\n1. 🟡 A\n2. 🟡 B", FormatTaskList("📝 Задачи", tasks, now, time.UTC))
}

func TestGetTaskStatusDisplay(t *testing.T) {
	assert.Equal(t, "Просрочена", GetTaskStatusDisplay(model.TaskStatusOverdue).Text)
	assert.Equal(t, "❓", GetTaskStatusDisplay(model.TaskStatus("x")).Emoji)
}
