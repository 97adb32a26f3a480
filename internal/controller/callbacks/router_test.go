package callbacks

import (
	"reflect"
	"testing"

	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/tasks"
	"github.com/Freeeeeet/timetable_bot/internal/controller/callbacks/timetable"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funcPtr(f interface{}) uintptr {
	return reflect.ValueOf(f).Pointer()
}

func TestMatch(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		data string
		want interface{}
	}{
		{keyboard.Noop, common.HandleNoop},
		{keyboard.BackToMain, common.HandleBackToMain},
		{keyboard.WithID(keyboard.TaskView, id), tasks.HandleViewTask},
		{keyboard.WithID(keyboard.TaskComplete, id), tasks.HandleCompleteTask},
		{keyboard.WithID(keyboard.TaskDelete, id), tasks.HandleDeleteTask},
		{keyboard.WithID(keyboard.TaskConfirmDelete, id), tasks.HandleConfirmDeleteTask},
		{keyboard.TasksPage + "open:2", tasks.HandleTasksPage},
		{keyboard.WithID(keyboard.LessonView, id), timetable.HandleViewLesson},
		{keyboard.WithID(keyboard.LessonAddTask, id), timetable.HandleLessonAddTask},
		{keyboard.WithID(keyboard.LessonConfirmDelete, id), timetable.HandleConfirmDeleteLesson},
		{keyboard.Week + "2024-09-09", timetable.HandleWeek},
		{keyboard.WeekImage + "2024-09-09", timetable.HandleWeekImage},
		{keyboard.WithID(keyboard.TimetableDefault, id), timetable.HandleSetDefaultTimetable},
		{keyboard.WithID(keyboard.EventDelete, id), timetable.HandleDeleteEvent},
		{keyboard.WithID(keyboard.AddLessonSubject, id), timetable.HandleAddLessonSubject},
		{keyboard.AddLessonCreateSubject, timetable.HandleAddLessonCreateSubject},
		{keyboard.AddLessonDay + "3", timetable.HandleAddLessonDay},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			handler, ok := Match(tt.data)
			require.True(t, ok)
			assert.Equal(t, funcPtr(tt.want), funcPtr(handler))
		})
	}
}

func TestMatch_Unknown(t *testing.T) {
	for _, data := range []string{"", "booking:1", "noop_extra", keyboard.AddLessonCreateSubject + "x"} {
		_, ok := Match(data)
		assert.False(t, ok, data)
	}
}

func TestRoutes_PrefixesDoNotShadow(t *testing.T) {
	// более ранний префикс не должен перехватывать данные более позднего маршрута
	for i, later := range routes {
		for _, earlier := range routes[:i] {
			if earlier.exact {
				continue
			}
			assert.False(t, len(later.prefix) >= len(earlier.prefix) && later.prefix[:len(earlier.prefix)] == earlier.prefix,
				"%q shadows %q", earlier.prefix, later.prefix)
		}
	}
}
