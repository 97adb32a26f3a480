package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/google/uuid"
)

type NotificationPostgresRepository struct {
	*base.Repository
}

func NewNotificationRepository(db base.Querier) *NotificationPostgresRepository {
	return &NotificationPostgresRepository{Repository: base.NewRepository(db)}
}

// Create планирует напоминание
func (r *NotificationPostgresRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO task_notifications (task_id, notify_at)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.QueryRow(ctx, query, n.TaskID, n.NotifyAt).Scan(&n.ID); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// DeletePendingByTask снимает неотправленные напоминания задачи
func (r *NotificationPostgresRepository) DeletePendingByTask(ctx context.Context, taskID uuid.UUID) (int64, error) {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM task_notifications WHERE task_id = $1 AND sent_at IS NULL`, taskID)
	if err != nil {
		return 0, fmt.Errorf("delete task notifications: %w", err)
	}
	return affected, nil
}

// ListDue неотправленные напоминания с notify_at <= now по активным задачам
func (r *NotificationPostgresRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*model.Notification, error) {
	query := `
		SELECT n.id, n.task_id, n.notify_at, n.sent_at, u.chat_id, tk.title, tk.due
		FROM task_notifications n
		INNER JOIN tasks tk ON n.task_id = tk.id
		INNER JOIN timetables t ON tk.timetable_id = t.id
		INNER JOIN users u ON t.owner_id = u.id
		WHERE n.sent_at IS NULL AND n.notify_at <= $1
		  AND tk.completed = FALSE AND tk.archived = FALSE
		ORDER BY n.notify_at
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(&n.ID, &n.TaskID, &n.NotifyAt, &n.SentAt, &n.ChatID, &n.TaskTitle, &n.TaskDue)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkSent отмечает напоминание отправленным
func (r *NotificationPostgresRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	affected, err := r.ExecAffected(ctx, `UPDATE task_notifications SET sent_at = $1 WHERE id = $2`, sentAt, id)
	if err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark notification %d sent: %w", id, ErrNotFound)
	}
	return nil
}
