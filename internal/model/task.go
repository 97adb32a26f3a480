package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusOpen     TaskStatus = "open"      // Не выполнена, срок не прошёл
	TaskStatusOverdue  TaskStatus = "overdue"   // Не выполнена, срок прошёл
	TaskStatusDone     TaskStatus = "done"      // Выполнена вовремя
	TaskStatusDoneLate TaskStatus = "done_late" // Выполнена после срока
)

type Task struct {
	ID          uuid.UUID  `json:"id"`
	TimetableID uuid.UUID  `json:"timetable_id"`
	LessonID    *uuid.UUID `json:"lesson_id"` // nil - задача не привязана к уроку
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	Due         *time.Time `json:"due"`
	Priority    int        `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Status статус задачи на момент now
func (t *Task) Status(now time.Time) TaskStatus {
	if t.Completed {
		if t.Due != nil && t.CompletedAt != nil && t.CompletedAt.After(*t.Due) {
			return TaskStatusDoneLate
		}
		return TaskStatusDone
	}
	if t.Due != nil && !now.Before(*t.Due) {
		return TaskStatusOverdue
	}
	return TaskStatusOpen
}

// IsExpired срок прошёл, а задача не выполнена
func (t *Task) IsExpired(now time.Time) bool {
	return t.Status(now) == TaskStatusOverdue
}

// SortTasks сортирует по сроку (без срока в конце), затем по приоритету и названию
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.Due != nil && b.Due == nil:
			return true
		case a.Due == nil && b.Due != nil:
			return false
		case a.Due != nil && b.Due != nil && !a.Due.Equal(*b.Due):
			return a.Due.Before(*b.Due)
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Title < b.Title
	})
}
