package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

const (
	icsProductID = "-//timetable_bot//RU"
	icsUIDSuffix = "@timetable_bot"
)

// ImportResult итог импорта календаря
type ImportResult struct {
	Imported  int
	Duplicate int
	Skipped   int
}

// ExportService выгрузка расписания в iCalendar и загрузка событий из него
type ExportService struct {
	repo     *repository.Repository
	calendar *CalendarService
	loc      *time.Location
	clock    schedule.Clock
	logger   *zap.Logger
}

func NewExportService(repo *repository.Repository, calendar *CalendarService, loc *time.Location, clock schedule.Clock, logger *zap.Logger) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &ExportService{
		repo:     repo,
		calendar: calendar,
		loc:      loc,
		clock:    clock,
		logger:   logger,
	}
}

// ExportICS уроки как еженедельно повторяющиеся события начиная с текущей недели и все разовые события
func (s *ExportService) ExportICS(ctx context.Context, ownerID int64) (string, error) {
	lessons, err := s.repo.Lesson.FetchAll(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("fetch lessons: %w", err)
	}
	events, err := s.repo.Event.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("list events: %w", err)
	}

	now := s.clock().In(s.loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(DefaultTimetableName)

	for _, lesson := range sortedLessons(lessons) {
		rule, err := LessonRule(lesson, now)
		if err != nil {
			return "", fmt.Errorf("lesson %s rule: %w", lesson.ID, err)
		}
		start := rule.OrigOptions.Dtstart

		ev := cal.AddEvent(lesson.ID.String() + icsUIDSuffix)
		ev.SetDtStampTime(now)
		ev.SetSummary(lesson.Title())
		if lesson.Note != "" {
			ev.SetDescription(lesson.Note)
		}
		ev.SetStartAt(start)
		ev.SetEndAt(lesson.End.On(start))
		ev.AddProperty(ical.ComponentPropertyRrule, rule.OrigOptions.RRuleString())
	}

	for _, event := range events {
		uid := event.UID
		if uid == "" {
			uid = event.ID.String() + icsUIDSuffix
		}

		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetSummary(event.Title)
		if event.Location != "" {
			ev.SetLocation(event.Location)
		}
		if event.Note != "" {
			ev.SetDescription(event.Note)
		}
		if event.AllDay {
			ev.SetAllDayStartAt(event.Start)
			ev.SetAllDayEndAt(event.End.AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(event.Start)
			ev.SetEndAt(event.End)
		}
	}

	s.logger.Info("Calendar exported",
		zap.Int64("owner_id", ownerID),
		zap.Int("lessons", len(lessons)),
		zap.Int("events", len(events)))

	return cal.Serialize(), nil
}

// ImportICS создаёт события из VEVENT. Уже импортированные UID пропускаются.
// У повторяющихся событий берётся только первое вхождение.
func (s *ExportService) ImportICS(ctx context.Context, ownerID int64, body []byte) (*ImportResult, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty calendar", ErrInvalidInput)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse calendar: %v", ErrInvalidInput, err)
	}

	timetableID, err := s.calendar.eventTimetable(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, ve := range cal.Events() {
		in, err := s.parseVEvent(ve)
		if err != nil {
			s.logger.Warn("Skipping calendar event",
				zap.Int64("owner_id", ownerID),
				zap.Error(err))
			result.Skipped++
			continue
		}

		exists, err := s.repo.Event.ExistsUID(ctx, timetableID, in.UID)
		if err != nil {
			return nil, fmt.Errorf("check event uid: %w", err)
		}
		if exists {
			result.Duplicate++
			continue
		}

		in.TimetableID = &timetableID
		if _, err := s.calendar.AddEvent(ctx, ownerID, in); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("Calendar imported",
		zap.Int64("owner_id", ownerID),
		zap.Int("imported", result.Imported),
		zap.Int("duplicate", result.Duplicate),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func (s *ExportService) parseVEvent(ve *ical.VEvent) (NewEvent, error) {
	var out NewEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Note = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("event %s: missing DTSTART", out.UID)
	}

	if isDateValue(dtStart) {
		start, err := time.ParseInLocation("20060102", dtStart.Value, s.loc)
		if err != nil {
			return out, fmt.Errorf("event %s: %w", out.UID, err)
		}
		end := start
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			// DTEND у событий на весь день не входит в событие
			if t, err := time.ParseInLocation("20060102", dtEnd.Value, s.loc); err == nil && t.After(start) {
				end = t.AddDate(0, 0, -1)
			}
		}
		out.Start = start
		out.End = schedule.EndOfDay(end)
		out.AllDay = true
		return out, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("event %s: %w", out.UID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start
	}

	out.Start = start.In(s.loc)
	out.End = end.In(s.loc)
	return out, nil
}

func isDateValue(prop *ical.IANAProperty) bool {
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}
