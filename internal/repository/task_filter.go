package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/google/uuid"
)

// TaskFilter условия выборки задач. Нулевые поля не ограничивают выборку.
type TaskFilter struct {
	Completed *bool
	Archived  *bool
	HasDue    *bool
	DueFrom   *time.Time // due >= DueFrom
	DueTo     *time.Time // due <= DueTo
	LessonID  *uuid.UUID
	Limit     int // 0 - без ограничения
}

// NotArchived базовый фильтр большинства выборок
func NotArchived() TaskFilter {
	return TaskFilter{Archived: boolPtr(false)}
}

func boolPtr(v bool) *bool {
	return &v
}

// WithCompleted копия фильтра с условием на выполненность
func (f TaskFilter) WithCompleted(completed bool) TaskFilter {
	f.Completed = boolPtr(completed)
	return f
}

// Matches проверяет задачу в памяти теми же правилами, что и SQL
func (f TaskFilter) Matches(task *model.Task) bool {
	if f.Completed != nil && task.Completed != *f.Completed {
		return false
	}
	if f.Archived != nil && task.Archived != *f.Archived {
		return false
	}
	if f.HasDue != nil && (task.Due != nil) != *f.HasDue {
		return false
	}
	if f.DueFrom != nil && (task.Due == nil || task.Due.Before(*f.DueFrom)) {
		return false
	}
	if f.DueTo != nil && (task.Due == nil || task.Due.After(*f.DueTo)) {
		return false
	}
	if f.LessonID != nil && (task.LessonID == nil || *task.LessonID != *f.LessonID) {
		return false
	}
	return true
}

// where собирает условие WHERE и аргументы, нумерация начинается с next
func (f TaskFilter) where(next int) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		conds = append(conds, fmt.Sprintf(cond, next))
		args = append(args, arg)
		next++
	}

	if f.Completed != nil {
		add("tk.completed = $%d", *f.Completed)
	}
	if f.Archived != nil {
		add("tk.archived = $%d", *f.Archived)
	}
	if f.HasDue != nil {
		if *f.HasDue {
			conds = append(conds, "tk.due IS NOT NULL")
		} else {
			conds = append(conds, "tk.due IS NULL")
		}
	}
	if f.DueFrom != nil {
		add("tk.due >= $%d", *f.DueFrom)
	}
	if f.DueTo != nil {
		add("tk.due <= $%d", *f.DueTo)
	}
	if f.LessonID != nil {
		add("tk.lesson_id = $%d", *f.LessonID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(conds, " AND "), args
}
