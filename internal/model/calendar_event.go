package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type CalendarEventKind string

const (
	CalendarEventLesson CalendarEventKind = "lesson"
	CalendarEventEvent  CalendarEventKind = "event"
)

// CalendarEvent урок или событие, привязанное к конкретной дате
type CalendarEvent struct {
	Kind   CalendarEventKind `json:"kind"`
	ID     uuid.UUID         `json:"id"`
	Title  string            `json:"title"`
	Color  string            `json:"color"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	AllDay bool              `json:"all_day"`

	Lesson *Lesson `json:"-"`
	Event  *Event  `json:"-"`
}

// LessonCalendarEvent урок в день date
func LessonCalendarEvent(l *Lesson, date time.Time) *CalendarEvent {
	color := ""
	if l.Subject != nil {
		color = l.Subject.Color
	}
	return &CalendarEvent{
		Kind:   CalendarEventLesson,
		ID:     l.ID,
		Title:  l.Title(),
		Color:  color,
		Start:  l.Start.On(date),
		End:    l.End.On(date),
		Lesson: l,
	}
}

// EventCalendarEvent обёртка над событием
func EventCalendarEvent(e *Event) *CalendarEvent {
	return &CalendarEvent{
		Kind:   CalendarEventEvent,
		ID:     e.ID,
		Title:  e.Title,
		Start:  e.Start,
		End:    e.End,
		AllDay: e.AllDay,
		Event:  e,
	}
}

// SortCalendarEvents по началу, концу и названию
func SortCalendarEvents(events []*CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.Title < b.Title
	})
}

// CalendarDayEntry события одного дня
type CalendarDayEntry struct {
	Date    time.Time        `json:"date"`
	Entries []*CalendarEvent `json:"entries"`
}

// StartHour самый ранний час начала, -1 если день пуст
func (d *CalendarDayEntry) StartHour() int {
	if len(d.Entries) == 0 {
		return -1
	}
	hour := 23
	for _, e := range d.Entries {
		if h := e.Start.Hour(); h < hour {
			hour = h
		}
	}
	return hour
}

// EndHour самый поздний час окончания, -1 если день пуст
func (d *CalendarDayEntry) EndHour() int {
	if len(d.Entries) == 0 {
		return -1
	}
	hour := 0
	for _, e := range d.Entries {
		if h := e.End.Hour(); h > hour {
			hour = h
		}
	}
	return hour
}
