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
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

const weekEntriesKind = "entries"

// CalendarService события и календарные выборки (уроки + события на конкретные даты)
type CalendarService struct {
	repo   *repository.Repository
	cache  *WeekCache
	clock  schedule.Clock
	logger *zap.Logger
}

func NewCalendarService(repo *repository.Repository, cache *WeekCache, clock schedule.Clock, logger *zap.Logger) *CalendarService {
	if clock == nil {
		clock = time.Now
	}
	return &CalendarService{
		repo:   repo,
		cache:  cache,
		clock:  clock,
		logger: logger,
	}
}

// NewEvent параметры разового события
type NewEvent struct {
	TimetableID *uuid.UUID // nil - основное расписание
	UID         string
	Title       string
	Location    string
	Note        string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// AddEvent создаёт разовое событие
func (s *CalendarService) AddEvent(ctx context.Context, ownerID int64, in NewEvent) (*model.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: event title is empty", ErrInvalidInput)
	}
	if in.End.Before(in.Start) {
		return nil, fmt.Errorf("%w: event ends before it starts", ErrInvalidInput)
	}

	timetableID, err := s.eventTimetable(ctx, ownerID, in.TimetableID)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		ID:          uuid.New(),
		TimetableID: timetableID,
		UID:         in.UID,
		Title:       title,
		Location:    strings.TrimSpace(in.Location),
		Note:        strings.TrimSpace(in.Note),
		Start:       in.Start,
		End:         in.End,
		AllDay:      in.AllDay,
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.cache.Invalidate(ownerID)

	s.logger.Info("Event created",
		zap.Int64("owner_id", ownerID),
		zap.String("event_id", event.ID.String()),
		zap.Time("start", event.Start))

	return event, nil
}

func (s *CalendarService) eventTimetable(ctx context.Context, ownerID int64, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil {
		timetable, err := ownedTimetable(ctx, s.repo, ownerID, *id)
		if err != nil {
			return uuid.Nil, err
		}
		return timetable.ID, nil
	}

	timetables, err := s.repo.Timetable.GetByOwner(ctx, ownerID)
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

// DeleteEvent удаляет событие пользователя
func (s *CalendarService) DeleteEvent(ctx context.Context, ownerID int64, id uuid.UUID) error {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	if _, err := ownedTimetable(ctx, s.repo, ownerID, event.TimetableID); err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.cache.Invalidate(ownerID)

	s.logger.Info("Event deleted",
		zap.Int64("owner_id", ownerID),
		zap.String("event_id", id.String()))

	return nil
}

// EventsWithinDay события, начало или конец которых попадает в день date
func (s *CalendarService) EventsWithinDay(ctx context.Context, ownerID int64, date time.Time) ([]*model.Event, error) {
	events, err := s.repo.Event.ListTouching(ctx, ownerID, schedule.StartOfDay(date), schedule.EndOfDay(date))
	if err != nil {
		return nil, fmt.Errorf("list events for day: %w", err)
	}
	return events, nil
}

// EventsAt события, идущие в момент t
func (s *CalendarService) EventsAt(ctx context.Context, ownerID int64, t time.Time) ([]*model.Event, error) {
	events, err := s.repo.Event.ListAt(ctx, ownerID, t)
	if err != nil {
		return nil, fmt.Errorf("list events at: %w", err)
	}
	return events, nil
}

// CalendarEventsAt уроки и события, идущие в момент t
func (s *CalendarService) CalendarEventsAt(ctx context.Context, ownerID int64, t time.Time) ([]*model.CalendarEvent, error) {
	lessons, err := s.repo.Lesson.FetchActiveAt(ctx, ownerID, schedule.WeekdayFromTime(t), schedule.TimeOfDayFromTime(t))
	if err != nil {
		return nil, fmt.Errorf("fetch active lessons: %w", err)
	}
	events, err := s.EventsAt(ctx, ownerID, t)
	if err != nil {
		return nil, err
	}
	return mergeCalendarEvents(lessons, events, t), nil
}

// CalendarEventsForDay уроки дня недели date и события этого дня, привязанные к дате
func (s *CalendarService) CalendarEventsForDay(ctx context.Context, ownerID int64, date time.Time) ([]*model.CalendarEvent, error) {
	lessons, err := s.repo.Lesson.FetchForDay(ctx, ownerID, schedule.WeekdayFromTime(date))
	if err != nil {
		return nil, fmt.Errorf("fetch lessons for day: %w", err)
	}
	events, err := s.EventsWithinDay(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	return mergeCalendarEvents(lessons, events, date), nil
}

func mergeCalendarEvents(lessons []*model.Lesson, events []*model.Event, date time.Time) []*model.CalendarEvent {
	out := make([]*model.CalendarEvent, 0, len(lessons)+len(events))
	for _, l := range lessons {
		out = append(out, model.LessonCalendarEvent(l, date))
	}
	for _, e := range events {
		out = append(out, model.EventCalendarEvent(e))
	}
	model.SortCalendarEvents(out)
	return out
}

// DayEntry календарный день
func (s *CalendarService) DayEntry(ctx context.Context, ownerID int64, date time.Time) (*model.CalendarDayEntry, error) {
	entries, err := s.CalendarEventsForDay(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	return &model.CalendarDayEntry{Date: schedule.StartOfDay(date), Entries: entries}, nil
}

// WeekEntries семь дней недели, в которую попадает date, начиная с понедельника
func (s *CalendarService) WeekEntries(ctx context.Context, ownerID int64, date time.Time) ([]*model.CalendarDayEntry, error) {
	weekStart := schedule.StartOfWeek(date)
	if v, ok := s.cache.Get(weekEntriesKind, ownerID, weekStart); ok {
		if entries, ok := v.([]*model.CalendarDayEntry); ok {
			return entries, nil
		}
	}

	entries, err := s.WeekEntriesFrom(ctx, ownerID, weekStart)
	if err != nil {
		return nil, err
	}
	s.cache.Set(weekEntriesKind, ownerID, weekStart, entries)
	return entries, nil
}

// WeekEntriesFrom семь дней подряд начиная с date
func (s *CalendarService) WeekEntriesFrom(ctx context.Context, ownerID int64, date time.Time) ([]*model.CalendarDayEntry, error) {
	day := schedule.StartOfDay(date)
	entries := make([]*model.CalendarDayEntry, 0, schedule.DaysInWeek)
	for i := 0; i < schedule.DaysInWeek; i++ {
		entry, err := s.DayEntry(ctx, ownerID, day)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		day = day.AddDate(0, 0, 1)
	}
	return entries, nil
}

// NextDayEntry первый день с записями среди семи дней начиная с from.
// Если таких нет, пустой день через неделю после from.
func (s *CalendarService) NextDayEntry(ctx context.Context, ownerID int64, from time.Time) (*model.CalendarDayEntry, error) {
	day := schedule.StartOfDay(from)
	for i := 0; i < schedule.DaysInWeek; i++ {
		entry, err := s.DayEntry(ctx, ownerID, day)
		if err != nil {
			return nil, err
		}
		if len(entry.Entries) > 0 {
			return entry, nil
		}
		day = day.AddDate(0, 0, 1)
	}
	return &model.CalendarDayEntry{Date: day, Entries: []*model.CalendarEvent{}}, nil
}

// NextWeek дата на неделю позже
func NextWeek(date time.Time) time.Time {
	return date.AddDate(0, 0, schedule.DaysInWeek)
}

// PreviousWeek дата на неделю раньше
func PreviousWeek(date time.Time) time.Time {
	return date.AddDate(0, 0, -schedule.DaysInWeek)
}

var rruleWeekdays = [schedule.DaysInWeek]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// LessonRule еженедельное правило повторения урока, начиная с недели from
func LessonRule(lesson *model.Lesson, from time.Time) (*rrule.RRule, error) {
	dtstart := lesson.Start.On(schedule.DateFor(lesson.Day, from))
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   dtstart,
		Byweekday: []rrule.Weekday{rruleWeekdays[lesson.Day]},
	})
}

// LessonOccurrences даты начала урока в промежутке [from, to]
func LessonOccurrences(lesson *model.Lesson, from, to time.Time) ([]time.Time, error) {
	rule, err := LessonRule(lesson, from)
	if err != nil {
		return nil, fmt.Errorf("lesson rule: %w", err)
	}
	return rule.Between(from, to, true), nil
}
