package keyboard

import (
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Grid(t *testing.T) {
	b := NewBuilder().Grid(3,
		Button("1", "a"), Button("2", "b"), Button("3", "c"),
		Button("4", "d"), Button("5", "e"),
	)

	kb := b.Build()
	require.NotNil(t, kb)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 2)
	assert.Equal(t, "e", kb.InlineKeyboard[1][1].CallbackData)
}

func TestBuilder_EmptyBuildsNil(t *testing.T) {
	assert.Nil(t, NewBuilder().Row().Build())
}

func TestPage(t *testing.T) {
	tests := []struct {
		name                   string
		n, page                int
		start, end, totalPages int
	}{
		{"empty", 0, 0, 0, 0, 0},
		{"first page", 20, 0, 0, 8, 3},
		{"last page", 20, 2, 16, 20, 3},
		{"page past the end", 20, 9, 16, 20, 3},
		{"negative page", 5, -1, 0, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, total := Page(tt.n, tt.page)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.totalPages, total)
		})
	}
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	buttons := PaginationButtons("p:", 1, 3)
	require.Len(t, buttons, 3)
	assert.Equal(t, "p:0", buttons[0].CallbackData)
	assert.Equal(t, "📄 2/3", buttons[1].Text)
	assert.Equal(t, Noop, buttons[1].CallbackData)
	assert.Equal(t, "p:2", buttons[2].CallbackData)
}

func TestWeekNavigation(t *testing.T) {
	weekStart := time.Date(2024, 9, 9, 0, 0, 0, 0, time.UTC)
	buttons := WeekNavigation(weekStart)

	require.Len(t, buttons, 3)
	assert.Equal(t, "week:2024-09-02", buttons[0].CallbackData)
	assert.Equal(t, "week_image:2024-09-09", buttons[1].CallbackData)
	assert.Equal(t, "week:2024-09-16", buttons[2].CallbackData)
}

func TestTaskActions(t *testing.T) {
	task := &model.Task{ID: uuid.New()}

	kb := TaskActions(task)
	assert.Equal(t, TaskComplete+task.ID.String(), kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, TaskArchive+task.ID.String(), kb.InlineKeyboard[1][0].CallbackData)

	task.Completed = true
	task.Archived = true
	kb = TaskActions(task)
	assert.Equal(t, TaskReopen+task.ID.String(), kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, TaskUnarchive+task.ID.String(), kb.InlineKeyboard[1][0].CallbackData)

	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			assert.LessOrEqual(t, len(button.CallbackData), 64)
		}
	}
}
