package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskTitles(tasks []*model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newTaskEnv(t *testing.T) *testEnv {
	env := newTestEnv()
	_, err := env.timetables.EnsureDefaultTimetable(context.Background(), env.ownerID)
	require.NoError(t, err)
	return env
}

func TestTaskService_AddTaskRequiresTimetable(t *testing.T) {
	env := newTestEnv()

	_, err := env.tasks.AddTask(context.Background(), env.ownerID, NewTask{Title: "Эссе"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskService_AddTaskRejectsEmptyTitle(t *testing.T) {
	env := newTaskEnv(t)

	_, err := env.tasks.AddTask(context.Background(), env.ownerID, NewTask{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskService_AddTaskSchedulesReminder(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	due := at(1, 12, 0)
	task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Эссе", Due: &due, Priority: 2})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusOpen, task.Status(env.clock.now))

	pending := env.store.pending(task.ID)
	require.Len(t, pending, 1)
	assert.Equal(t, due.Add(-time.Hour), pending[0].NotifyAt)

	undated, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Когда-нибудь"})
	require.NoError(t, err)
	assert.Empty(t, env.store.pending(undated.ID))
}

func TestTaskService_TaskForLessonUsesLessonTimetable(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	lesson := env.addLesson(t, env.ownerID, "Физика", 0, "09:00", "10:00")
	task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Задачи 1-5", LessonID: &lesson.ID})
	require.NoError(t, err)
	assert.Equal(t, lesson.Subject.TimetableID, task.TimetableID)

	forLesson, err := env.tasks.TasksForLesson(ctx, env.ownerID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Задачи 1-5"}, taskTitles(forLesson))

	_, err = env.tasks.AddTask(ctx, env.otherUser(), NewTask{Title: "чужое", LessonID: &lesson.ID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReminderTime(t *testing.T) {
	now := at(0, 8, 0)
	lead := time.Hour

	tests := []struct {
		name   string
		task   model.Task
		want   time.Time
		wantOK bool
	}{
		{name: "lead before due", task: model.Task{Due: timePtr(at(0, 12, 0))}, want: at(0, 11, 0), wantOK: true},
		{name: "inside lead window fires now", task: model.Task{Due: timePtr(at(0, 8, 30))}, want: now, wantOK: true},
		{name: "due already passed", task: model.Task{Due: timePtr(at(0, 7, 0))}},
		{name: "due equals now", task: model.Task{Due: timePtr(now)}},
		{name: "no due", task: model.Task{}},
		{name: "completed", task: model.Task{Due: timePtr(at(1, 0, 0)), Completed: true}},
		{name: "archived", task: model.Task{Due: timePtr(at(1, 0, 0)), Archived: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReminderTime(&tt.task, lead, now)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTaskService_CompleteAndReopen(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	due := at(0, 18, 0)
	task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Лабораторная", Due: &due})
	require.NoError(t, err)

	env.clock.now = at(0, 19, 0)
	done, err := env.tasks.CompleteTask(ctx, env.ownerID, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, model.TaskStatusDoneLate, done.Status(env.clock.now))
	assert.Empty(t, env.store.pending(task.ID))

	env.clock.now = at(0, 10, 0)
	reopened, err := env.tasks.ReopenTask(ctx, env.ownerID, task.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
	assert.Len(t, env.store.pending(task.ID), 1)
}

func TestTaskService_SetDueReschedules(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Доклад"})
	require.NoError(t, err)
	assert.Empty(t, env.store.pending(task.ID))

	due := at(2, 10, 0)
	_, err = env.tasks.SetDue(ctx, env.ownerID, task.ID, &due)
	require.NoError(t, err)
	pending := env.store.pending(task.ID)
	require.Len(t, pending, 1)
	assert.Equal(t, at(2, 9, 0), pending[0].NotifyAt)

	_, err = env.tasks.SetDue(ctx, env.ownerID, task.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, env.store.pending(task.ID))
}

func TestTaskService_Queries(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	add := func(title string, due *time.Time) *model.Task {
		task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: title, Due: due})
		require.NoError(t, err)
		return task
	}

	overdue := add("просрочена", timePtr(at(-1, 10, 0)))
	add("завтра", timePtr(at(1, 10, 0)))
	add("через неделю", timePtr(at(7, 10, 0)))
	add("без срока", nil)
	finished := add("сделана", timePtr(at(2, 10, 0)))
	archived := add("в архиве", timePtr(at(3, 10, 0)))

	_, err := env.tasks.CompleteTask(ctx, env.ownerID, finished.ID)
	require.NoError(t, err)
	_, err = env.tasks.ArchiveTask(ctx, env.ownerID, archived.ID)
	require.NoError(t, err)
	assert.Empty(t, env.store.pending(archived.ID))

	all, err := env.tasks.AllTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"просрочена", "завтра", "сделана", "через неделю", "без срока"}, taskTitles(all))

	open, err := env.tasks.OpenTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"просрочена", "завтра", "через неделю", "без срока"}, taskTitles(open))

	completed, err := env.tasks.CompletedTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"сделана"}, taskTitles(completed))

	expired, err := env.tasks.ExpiredTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"просрочена"}, taskTitles(expired))
	assert.True(t, expired[0].IsExpired(env.clock.now))
	assert.Equal(t, overdue.ID, expired[0].ID)

	archivedOnly, err := env.tasks.ArchivedTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"в архиве"}, taskTitles(archivedOnly))

	planned, err := env.tasks.PlannedTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.NotContains(t, taskTitles(planned), "без срока")
	assert.Len(t, planned, 4)

	next, err := env.tasks.NextTasks(ctx, env.ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"завтра", "сделана", "через неделю"}, taskTitles(next))

	before, err := env.tasks.TasksBefore(ctx, env.ownerID, at(1, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"просрочена", "завтра"}, taskTitles(before))

	between, err := env.tasks.TasksBetween(ctx, env.ownerID, at(1, 0, 0), at(3, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"завтра", "сделана"}, taskTitles(between))

	_, err = env.tasks.TasksBetween(ctx, env.ownerID, at(3, 0, 0), at(1, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	limited, err := env.tasks.TasksOrderedByDue(ctx, env.ownerID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"просрочена", "завтра"}, taskTitles(limited))

	byDefault, err := env.tasks.TasksOrderedByDue(ctx, env.ownerID, 0)
	require.NoError(t, err)
	assert.Len(t, byDefault, DefaultTaskLimit)

	_, err = env.tasks.UnarchiveTask(ctx, env.ownerID, archived.ID)
	require.NoError(t, err)
	assert.Len(t, env.store.pending(archived.ID), 1)
}

func TestTaskService_DeleteTaskRemovesReminders(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	due := at(1, 10, 0)
	task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Удалить", Due: &due})
	require.NoError(t, err)
	require.Len(t, env.store.pending(task.ID), 1)

	require.NoError(t, env.tasks.DeleteTask(ctx, env.ownerID, task.ID))
	assert.Empty(t, env.store.pending(task.ID))

	_, err = env.tasks.GetTask(ctx, env.ownerID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_ForeignTask(t *testing.T) {
	env := newTaskEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, env.ownerID, NewTask{Title: "Моя"})
	require.NoError(t, err)

	other := env.otherUser()
	_, err = env.tasks.CompleteTask(ctx, other, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, other, task.ID), ErrForbidden)
}
