package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification запланированное напоминание о задаче
type Notification struct {
	ID       int64      `json:"id"`
	TaskID   uuid.UUID  `json:"task_id"`
	NotifyAt time.Time  `json:"notify_at"`
	SentAt   *time.Time `json:"sent_at"`

	// Для отправки (из JOIN)
	ChatID    int64      `json:"chat_id,omitempty"`
	TaskTitle string     `json:"task_title,omitempty"`
	TaskDue   *time.Time `json:"task_due,omitempty"`
}
