package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultReminderLead = time.Hour
	DefaultTaskLimit    = 5
)

// TaskService задачи пользователя и напоминания по ним
type TaskService struct {
	repo   *repository.Repository
	tx     repository.TxManager
	lead   time.Duration
	clock  schedule.Clock
	logger *zap.Logger
}

func NewTaskService(repo *repository.Repository, tx repository.TxManager, lead time.Duration, clock schedule.Clock, logger *zap.Logger) *TaskService {
	if lead <= 0 {
		lead = DefaultReminderLead
	}
	if clock == nil {
		clock = time.Now
	}
	return &TaskService{
		repo:   repo,
		tx:     tx,
		lead:   lead,
		clock:  clock,
		logger: logger,
	}
}

// NewTask параметры новой задачи
type NewTask struct {
	TimetableID *uuid.UUID // nil - основное расписание
	LessonID    *uuid.UUID
	Title       string
	Text        string
	Due         *time.Time
	Priority    int
}

// AddTask создаёт задачу и, если есть срок, напоминание о ней
func (s *TaskService) AddTask(ctx context.Context, ownerID int64, in NewTask) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is empty", ErrInvalidInput)
	}

	task := &model.Task{
		ID:        uuid.New(),
		LessonID:  in.LessonID,
		Title:     title,
		Text:      strings.TrimSpace(in.Text),
		Due:       in.Due,
		Priority:  in.Priority,
		CreatedAt: s.clock(),
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repository.Repository) error {
		timetableID, err := s.resolveTimetable(ctx, repos, ownerID, in)
		if err != nil {
			return err
		}
		task.TimetableID = timetableID

		if err := repos.Task.Create(ctx, task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return s.scheduleReminder(ctx, repos, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task created",
		zap.Int64("owner_id", ownerID),
		zap.String("task_id", task.ID.String()),
		zap.Bool("has_due", task.Due != nil))

	return task, nil
}

func (s *TaskService) resolveTimetable(ctx context.Context, repos *repository.Repository, ownerID int64, in NewTask) (uuid.UUID, error) {
	if in.LessonID != nil {
		lesson, err := repos.Lesson.GetByID(ctx, *in.LessonID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("get lesson: %w", err)
		}
		if lesson == nil {
			return uuid.Nil, fmt.Errorf("lesson %s: %w", *in.LessonID, ErrNotFound)
		}
		subject, err := ownedSubject(ctx, repos, ownerID, lesson.SubjectID)
		if err != nil {
			return uuid.Nil, err
		}
		return subject.TimetableID, nil
	}

	if in.TimetableID != nil {
		timetable, err := ownedTimetable(ctx, repos, ownerID, *in.TimetableID)
		if err != nil {
			return uuid.Nil, err
		}
		return timetable.ID, nil
	}

	timetables, err := repos.Timetable.GetByOwner(ctx, ownerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("list timetables: %w", err)
	}
	for _, t := range timetables {
		if t.IsDefault {
			return t.ID, nil
		}
	}
	if len(timetables) > 0 {
		return timetables[0].ID, nil
	}
	return uuid.Nil, fmt.Errorf("%w: user has no timetable", ErrInvalidInput)
}

// scheduleReminder заменяет неотправленное напоминание задачи новым
func (s *TaskService) scheduleReminder(ctx context.Context, repos *repository.Repository, task *model.Task) error {
	if _, err := repos.Notification.DeletePendingByTask(ctx, task.ID); err != nil {
		return fmt.Errorf("delete pending reminders: %w", err)
	}

	notifyAt, ok := ReminderTime(task, s.lead, s.clock())
	if !ok {
		return nil
	}

	if err := repos.Notification.Create(ctx, &model.Notification{
		TaskID:   task.ID,
		NotifyAt: notifyAt,
	}); err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// ReminderTime момент напоминания: за lead до срока, но не раньше now.
// Для выполненных, архивных, просроченных и бессрочных задач напоминания нет.
func ReminderTime(task *model.Task, lead time.Duration, now time.Time) (time.Time, bool) {
	if task.Due == nil || task.Completed || task.Archived {
		return time.Time{}, false
	}
	if !task.Due.After(now) {
		return time.Time{}, false
	}
	notifyAt := task.Due.Add(-lead)
	if notifyAt.Before(now) {
		notifyAt = now
	}
	return notifyAt, true
}

// GetTask задача, принадлежащая пользователю
func (s *TaskService) GetTask(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Task, error) {
	return ownedTask(ctx, s.repo, ownerID, id)
}

// CompleteTask отмечает задачу выполненной и отменяет напоминание
func (s *TaskService) CompleteTask(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, ownerID, id, "Task completed", func(task *model.Task) {
		now := s.clock()
		task.Completed = true
		task.CompletedAt = &now
	})
}

// ReopenTask снимает отметку о выполнении
func (s *TaskService) ReopenTask(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, ownerID, id, "Task reopened", func(task *model.Task) {
		task.Completed = false
		task.CompletedAt = nil
	})
}

func (s *TaskService) ArchiveTask(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, ownerID, id, "Task archived", func(task *model.Task) {
		task.Archived = true
	})
}

func (s *TaskService) UnarchiveTask(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Task, error) {
	return s.mutate(ctx, ownerID, id, "Task unarchived", func(task *model.Task) {
		task.Archived = false
	})
}

// SetDue меняет срок задачи, nil убирает срок
func (s *TaskService) SetDue(ctx context.Context, ownerID int64, id uuid.UUID, due *time.Time) (*model.Task, error) {
	return s.mutate(ctx, ownerID, id, "Task due changed", func(task *model.Task) {
		task.Due = due
	})
}

// mutate применяет изменение к задаче и пересчитывает напоминание в одной транзакции
func (s *TaskService) mutate(ctx context.Context, ownerID int64, id uuid.UUID, msg string, apply func(task *model.Task)) (*model.Task, error) {
	var task *model.Task
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repository.Repository) error {
		var err error
		task, err = ownedTask(ctx, repos, ownerID, id)
		if err != nil {
			return err
		}

		apply(task)

		if err := repos.Task.Update(ctx, task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return s.scheduleReminder(ctx, repos, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(msg,
		zap.Int64("owner_id", ownerID),
		zap.String("task_id", id.String()))

	return task, nil
}

// DeleteTask удаляет задачу вместе с напоминаниями
func (s *TaskService) DeleteTask(ctx context.Context, ownerID int64, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repository.Repository) error {
		if _, err := ownedTask(ctx, repos, ownerID, id); err != nil {
			return err
		}
		if _, err := repos.Notification.DeletePendingByTask(ctx, id); err != nil {
			return fmt.Errorf("delete pending reminders: %w", err)
		}
		return repos.Task.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info("Task deleted",
		zap.Int64("owner_id", ownerID),
		zap.String("task_id", id.String()))

	return nil
}

func (s *TaskService) list(ctx context.Context, ownerID int64, filter repository.TaskFilter) ([]*model.Task, error) {
	tasks, err := s.repo.Task.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	model.SortTasks(tasks)
	return tasks, nil
}

// AllTasks все неархивные задачи
func (s *TaskService) AllTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	return s.list(ctx, ownerID, repository.NotArchived())
}

// OpenTasks невыполненные задачи
func (s *TaskService) OpenTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	return s.list(ctx, ownerID, repository.NotArchived().WithCompleted(false))
}

func (s *TaskService) CompletedTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	return s.list(ctx, ownerID, repository.NotArchived().WithCompleted(true))
}

// ExpiredTasks невыполненные задачи со сроком не позже текущего момента
func (s *TaskService) ExpiredTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	now := s.clock()
	filter := repository.NotArchived().WithCompleted(false)
	filter.DueTo = &now
	return s.list(ctx, ownerID, filter)
}

// ArchivedTasks только архивные задачи
func (s *TaskService) ArchivedTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	archived := true
	return s.list(ctx, ownerID, repository.TaskFilter{Archived: &archived})
}

// PlannedTasks задачи со сроком
func (s *TaskService) PlannedTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	hasDue := true
	filter := repository.NotArchived()
	filter.HasDue = &hasDue
	return s.list(ctx, ownerID, filter)
}

func (s *TaskService) TasksForLesson(ctx context.Context, ownerID int64, lessonID uuid.UUID) ([]*model.Task, error) {
	filter := repository.NotArchived()
	filter.LessonID = &lessonID
	return s.list(ctx, ownerID, filter)
}

// TasksBefore задачи со сроком не позже t
func (s *TaskService) TasksBefore(ctx context.Context, ownerID int64, t time.Time) ([]*model.Task, error) {
	filter := repository.NotArchived()
	filter.DueTo = &t
	return s.list(ctx, ownerID, filter)
}

// TasksAfter задачи со сроком не раньше t
func (s *TaskService) TasksAfter(ctx context.Context, ownerID int64, t time.Time) ([]*model.Task, error) {
	filter := repository.NotArchived()
	filter.DueFrom = &t
	return s.list(ctx, ownerID, filter)
}

// TasksBetween задачи со сроком в [from, to]
func (s *TaskService) TasksBetween(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Task, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidInput)
	}
	filter := repository.NotArchived()
	filter.DueFrom = &from
	filter.DueTo = &to
	return s.list(ctx, ownerID, filter)
}

// NextTasks задачи со сроком, который ещё не наступил
func (s *TaskService) NextTasks(ctx context.Context, ownerID int64) ([]*model.Task, error) {
	return s.TasksAfter(ctx, ownerID, s.clock())
}

// TasksOrderedByDue первые limit задач по сроку, limit <= 0 означает значение по умолчанию
func (s *TaskService) TasksOrderedByDue(ctx context.Context, ownerID int64, limit int) ([]*model.Task, error) {
	if limit <= 0 {
		limit = DefaultTaskLimit
	}
	filter := repository.NotArchived()
	filter.Limit = limit
	return s.list(ctx, ownerID, filter)
}

// Now текущее время часов сервиса
func (s *TaskService) Now() time.Time {
	return s.clock()
}

func ownedTask(ctx context.Context, repos *repository.Repository, ownerID int64, id uuid.UUID) (*model.Task, error) {
	task, err := repos.Task.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if _, err := ownedTimetable(ctx, repos, ownerID, task.TimetableID); err != nil {
		return nil, err
	}
	return task, nil
}
