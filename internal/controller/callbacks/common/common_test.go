package common

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUUIDFromCallback(t *testing.T) {
	id := uuid.New()

	got, err := ParseUUIDFromCallback(keyboard.TaskComplete+id.String(), keyboard.TaskComplete)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseUUIDFromCallback(keyboard.TaskComplete+"123", keyboard.TaskComplete)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseUUIDFromCallback(keyboard.TaskArchive+id.String(), keyboard.TaskComplete)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseIntFromCallback(t *testing.T) {
	n, err := ParseIntFromCallback("addlesson_day:3", keyboard.AddLessonDay)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseIntFromCallback("addlesson_day:x", keyboard.AddLessonDay)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseDateFromCallback(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)

	got, err := ParseDateFromCallback("week:2024-09-09", keyboard.Week, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 9, 0, 0, 0, 0, loc), got)

	_, err = ParseDateFromCallback("week:09.09.2024", keyboard.Week, loc)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParsePageFromCallback(t *testing.T) {
	filter, page, err := ParsePageFromCallback("tasks_page:overdue:2")
	require.NoError(t, err)
	assert.Equal(t, keyboard.FilterOverdue, filter)
	assert.Equal(t, 2, page)

	_, _, err = ParsePageFromCallback("tasks_page:overdue")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestErrorMessage(t *testing.T) {
	wrapped := fmt.Errorf("task %s: %w", uuid.New(), service.ErrNotFound)

	assert.Equal(t, "❌ Не найдено. Возможно, запись уже удалена", ErrorMessage(wrapped))
	assert.Equal(t, "❌ Нет доступа", ErrorMessage(service.ErrForbidden))
	assert.Equal(t, "❌ Произошла ошибка", ErrorMessage(errors.New("db down")))

	assert.True(t, IsUserError(wrapped))
	assert.False(t, IsUserError(errors.New("db down")))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified")))
}

func TestBuildTasksScreen(t *testing.T) {
	now := time.Date(2024, 9, 9, 8, 0, 0, 0, time.UTC)

	tasks := make([]*model.Task, 0, 10)
	for i := 0; i < 10; i++ {
		tasks = append(tasks, &model.Task{ID: uuid.New(), Title: fmt.Sprintf("Задача %d", i+1)})
	}

	text, kb := BuildTasksScreen(keyboard.FilterOpen, tasks, 1, now, time.UTC)
	assert.True(t, strings.HasPrefix(text, "📝 Задачи (10 задач)"))
	assert.Contains(t, text, "9. 🟡 Задача 9")
	assert.NotContains(t, text, "Задача 8\n")

	require.NotNil(t, kb)
	// кнопки задач 9 и 10, пагинация, фильтры
	assert.Equal(t, keyboard.TaskView+tasks[8].ID.String(), kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "tasks_page:open:0", kb.InlineKeyboard[1][0].CallbackData)

	text, _ = BuildTasksScreen(keyboard.FilterArchived, nil, 0, now, time.UTC)
	assert.Equal(t, "🗄 Архив задач\n\nЗадач нет 🎉", text)
}

func TestBuildTimetablesScreen(t *testing.T) {
	main := &model.Timetable{ID: uuid.New(), Name: "Школа", IsDefault: true}
	extra := &model.Timetable{ID: uuid.New(), Name: "Кружки"}

	text, kb := BuildTimetablesScreen([]*model.Timetable{main, extra})
	assert.Equal(t, "🗂 Расписания (⭐️ - основное)\n\n1. Школа ⭐️\n2. Кружки", text)
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, keyboard.TimetableDefault+extra.ID.String(), kb.InlineKeyboard[0][0].CallbackData)

	_, kb = BuildTimetablesScreen(nil)
	assert.Nil(t, kb)
}
