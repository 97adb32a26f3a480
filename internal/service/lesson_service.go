package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LessonService уроки и расчёт "сейчас / следующий"
type LessonService struct {
	repo   *repository.Repository
	cache  *WeekCache
	clock  schedule.Clock
	logger *zap.Logger
}

func NewLessonService(repo *repository.Repository, cache *WeekCache, clock schedule.Clock, logger *zap.Logger) *LessonService {
	if clock == nil {
		clock = time.Now
	}
	return &LessonService{
		repo:   repo,
		cache:  cache,
		clock:  clock,
		logger: logger,
	}
}

// NewLesson параметры нового урока
type NewLesson struct {
	SubjectID uuid.UUID
	Day       schedule.Weekday
	Start     schedule.TimeOfDay
	End       schedule.TimeOfDay
	Note      string
}

// AddLesson добавляет урок по предмету пользователя
func (s *LessonService) AddLesson(ctx context.Context, ownerID int64, in NewLesson) (*model.Lesson, error) {
	interval, err := schedule.NewInterval(in.Day, in.Start, in.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	subject, err := ownedSubject(ctx, s.repo, ownerID, in.SubjectID)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		ID:        uuid.New(),
		SubjectID: subject.ID,
		Day:       interval.Day,
		Start:     interval.Start,
		End:       interval.End,
		Note:      strings.TrimSpace(in.Note),
		Subject:   subject,
	}

	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	s.cache.Invalidate(ownerID)

	s.logger.Info("Lesson created",
		zap.Int64("owner_id", ownerID),
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("subject", subject.Name),
		zap.Stringer("interval", interval))

	return lesson, nil
}

// GetLesson урок, принадлежащий пользователю
func (s *LessonService) GetLesson(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Lesson, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson %s: %w", id, ErrNotFound)
	}
	if _, err := ownedSubject(ctx, s.repo, ownerID, lesson.SubjectID); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson удаляет урок, привязанные задачи остаются без урока
func (s *LessonService) DeleteLesson(ctx context.Context, ownerID int64, id uuid.UUID) error {
	if _, err := s.GetLesson(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Lesson.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	s.cache.Invalidate(ownerID)

	s.logger.Info("Lesson deleted",
		zap.Int64("owner_id", ownerID),
		zap.String("lesson_id", id.String()))

	return nil
}

// Lessons все уроки пользователя
func (s *LessonService) Lessons(ctx context.Context, ownerID int64) ([]*model.Lesson, error) {
	lessons, err := s.repo.Lesson.FetchAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch lessons: %w", err)
	}
	return lessons, nil
}

// LessonsForDay уроки дня недели по времени начала
func (s *LessonService) LessonsForDay(ctx context.Context, ownerID int64, day schedule.Weekday) ([]*model.Lesson, error) {
	lessons, err := s.repo.Lesson.FetchForDay(ctx, ownerID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch lessons for day: %w", err)
	}
	return sortedLessons(lessons), nil
}

// LessonsAt уроки, идущие в момент t (день недели и время)
func (s *LessonService) LessonsAt(ctx context.Context, ownerID int64, t time.Time) ([]*model.Lesson, error) {
	lessons, err := s.repo.Lesson.FetchActiveAt(ctx, ownerID, schedule.WeekdayFromTime(t), schedule.TimeOfDayFromTime(t))
	if err != nil {
		return nil, fmt.Errorf("fetch active lessons: %w", err)
	}
	return sortedLessons(lessons), nil
}

// LessonsAtTime уроки любого дня, в интервал которых попадает время
func (s *LessonService) LessonsAtTime(ctx context.Context, ownerID int64, t schedule.TimeOfDay) ([]*model.Lesson, error) {
	lessons, err := s.repo.Lesson.FetchAtTime(ctx, ownerID, t)
	if err != nil {
		return nil, fmt.Errorf("fetch lessons at time: %w", err)
	}
	return sortedLessons(lessons), nil
}

// CurrentLessons уроки, идущие прямо сейчас
func (s *LessonService) CurrentLessons(ctx context.Context, ownerID int64) ([]*model.Lesson, error) {
	return s.LessonsAt(ctx, ownerID, s.clock())
}

// Week уроки пользователя, разложенные по дням с понедельника
func (s *LessonService) Week(ctx context.Context, ownerID int64) (schedule.Week[*model.Lesson], error) {
	lessons, err := s.Lessons(ctx, ownerID)
	if err != nil {
		return schedule.Week[*model.Lesson]{}, err
	}
	return schedule.GroupByDay(model.LessonEntries(lessons)), nil
}

// IsNow идёт ли урок прямо сейчас
func (s *LessonService) IsNow(lesson *model.Lesson) bool {
	return lesson.Interval().IsActiveAt(s.clock())
}

// NextLessons ближайшие уроки; несколько, если они начинаются одновременно
func (s *LessonService) NextLessons(ctx context.Context, ownerID int64) ([]*model.Lesson, error) {
	lessons, err := s.Lessons(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return NextLessonsIn(lessons, s.clock()), nil
}

// NextLessonsIn ближайшие уроки из уже загруженного списка
func NextLessonsIn(lessons []*model.Lesson, now time.Time) []*model.Lesson {
	return schedule.Payloads(schedule.NextOccurrence(model.LessonEntries(lessons), now))
}

// DateOfNext ближайший момент начала урока строго после текущего времени
func (s *LessonService) DateOfNext(lesson *model.Lesson) time.Time {
	return schedule.NextStart(lesson.Interval(), s.clock())
}

// Now текущее время часов сервиса
func (s *LessonService) Now() time.Time {
	return s.clock()
}

func sortedLessons(lessons []*model.Lesson) []*model.Lesson {
	return schedule.Payloads(schedule.SortEntries(model.LessonEntries(lessons)))
}

// IsNotFound ошибка сервиса означает отсутствие или чужую запись
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden)
}
