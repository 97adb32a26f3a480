package model

import (
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
)

// Lesson еженедельное занятие по предмету
type Lesson struct {
	ID        uuid.UUID          `json:"id"`
	SubjectID uuid.UUID          `json:"subject_id"`
	Day       schedule.Weekday   `json:"day"` // 0 = понедельник, 6 = воскресенье
	Start     schedule.TimeOfDay `json:"start"`
	End       schedule.TimeOfDay `json:"end"`
	Note      string             `json:"note"`
	CreatedAt time.Time          `json:"created_at"`

	// Заполняется репозиторием через JOIN (не колонка lessons)
	Subject *Subject `json:"subject,omitempty"`
}

// Interval слот урока для расчётов расписания
func (l *Lesson) Interval() schedule.Interval {
	return schedule.Interval{Day: l.Day, Start: l.Start, End: l.End}
}

// Title название предмета или заглушка
func (l *Lesson) Title() string {
	if l.Subject != nil && l.Subject.Name != "" {
		return l.Subject.Name
	}
	return "Без названия"
}

// LessonEntries превращает уроки в записи расписания
func LessonEntries(lessons []*Lesson) []schedule.Entry[*Lesson] {
	entries := make([]schedule.Entry[*Lesson], 0, len(lessons))
	for _, l := range lessons {
		entries = append(entries, schedule.NewEntry(l.Interval(), l))
	}
	return entries
}
