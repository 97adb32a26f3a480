package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskPostgresRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewTaskRepository(db base.Querier, logger *zap.Logger) *TaskPostgresRepository {
	return &TaskPostgresRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

const taskColumns = `tk.id, tk.timetable_id, tk.lesson_id, tk.title, tk.text, tk.due, tk.priority,
	tk.completed, tk.completed_at, tk.archived, tk.created_at`

// Create создаёт задачу, id генерируется если не задан
func (r *TaskPostgresRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	query := `
		INSERT INTO tasks (id, timetable_id, lesson_id, title, text, due, priority, completed, completed_at, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		task.ID,
		task.TimetableID,
		task.LessonID,
		task.Title,
		task.Text,
		task.Due,
		task.Priority,
		task.Completed,
		task.CompletedAt,
		task.Archived,
	).Scan(&task.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.String("timetable_id", task.TimetableID.String()),
			zap.String("title", task.Title),
			zap.Error(err))
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID получает задачу по ID
func (r *TaskPostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks tk WHERE tk.id = $1`

	task, err := scanTask(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return task, nil
}

// taskOrder совпадает с model.SortTasks: побайтовое сравнение названий, а не локаль базы
const taskOrder = `tk.due ASC NULLS LAST, tk.priority DESC, tk.title COLLATE "C"`

func taskListQuery(filter TaskFilter) (string, []any) {
	where, args := filter.where(2)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks tk
		INNER JOIN timetables t ON tk.timetable_id = t.id
		WHERE t.owner_id = $1` + where + `
		ORDER BY ` + taskOrder
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	return query, args
}

// List задачи пользователя по фильтру, отсортированные по сроку (без срока в конце)
func (r *TaskPostgresRepository) List(ctx context.Context, ownerID int64, filter TaskFilter) ([]*model.Task, error) {
	query, args := taskListQuery(filter)

	rows, err := r.Query(ctx, query, append([]any{ownerID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// Update сохраняет все изменяемые поля задачи
func (r *TaskPostgresRepository) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks
		SET lesson_id = $1, title = $2, text = $3, due = $4, priority = $5,
		    completed = $6, completed_at = $7, archived = $8
		WHERE id = $9
	`

	affected, err := r.ExecAffected(
		ctx, query,
		task.LessonID,
		task.Title,
		task.Text,
		task.Due,
		task.Priority,
		task.Completed,
		task.CompletedAt,
		task.Archived,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update task %s: %w", task.ID, ErrNotFound)
	}

	return nil
}

// Delete удаляет задачу (напоминания удалятся каскадом)
func (r *TaskPostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}

	return nil
}

func scanTask(row rowScanner) (*model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID,
		&t.TimetableID,
		&t.LessonID,
		&t.Title,
		&t.Text,
		&t.Due,
		&t.Priority,
		&t.Completed,
		&t.CompletedAt,
		&t.Archived,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
