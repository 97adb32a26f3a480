package model

import (
	"time"

	"github.com/google/uuid"
)

// Event разовое событие календаря
type Event struct {
	ID          uuid.UUID `json:"id"`
	TimetableID uuid.UUID `json:"timetable_id"`
	UID         string    `json:"uid"` // UID из импортированного .ics, пусто для созданных в боте
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Note        string    `json:"note"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	CreatedAt   time.Time `json:"created_at"`
}
