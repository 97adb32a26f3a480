package model

import (
	"time"

	"github.com/google/uuid"
)

// Timetable именованная группа предметов, уроков, задач и событий
type Timetable struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
