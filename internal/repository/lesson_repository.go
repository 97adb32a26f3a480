package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LessonPostgresRepository уроки хранятся как day_of_week (0 = понедельник) и минуты от полуночи
type LessonPostgresRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewLessonRepository(db base.Querier, logger *zap.Logger) *LessonPostgresRepository {
	return &LessonPostgresRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

const lessonSelect = `
	SELECT l.id, l.subject_id, l.day_of_week, l.start_minute, l.end_minute, l.note, l.created_at,
	       s.id, s.timetable_id, s.name, s.color, s.created_at
	FROM lessons l
	INNER JOIN subjects s ON l.subject_id = s.id
	INNER JOIN timetables t ON s.timetable_id = t.id
`

const lessonOrder = ` ORDER BY l.day_of_week, l.start_minute, l.end_minute`

// Create сохраняет урок, id генерируется если не задан
func (r *LessonPostgresRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	if err := lesson.Interval().Validate(); err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}

	query := `
		INSERT INTO lessons (id, subject_id, day_of_week, start_minute, end_minute, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		lesson.ID,
		lesson.SubjectID,
		lesson.Day.Index(),
		lesson.Start.Minutes(),
		lesson.End.Minutes(),
		lesson.Note,
	).Scan(&lesson.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert lesson",
			zap.String("subject_id", lesson.SubjectID.String()),
			zap.Stringer("interval", lesson.Interval()),
			zap.Error(err))
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает урок вместе с предметом
func (r *LessonPostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	lesson, err := scanLesson(r.QueryRow(ctx, lessonSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// FetchAll все уроки пользователя
func (r *LessonPostgresRepository) FetchAll(ctx context.Context, ownerID int64) ([]*model.Lesson, error) {
	return r.fetch(ctx, "fetch lessons", lessonSelect+` WHERE t.owner_id = $1`+lessonOrder, ownerID)
}

// FetchForDay уроки в заданный день недели
func (r *LessonPostgresRepository) FetchForDay(ctx context.Context, ownerID int64, day schedule.Weekday) ([]*model.Lesson, error) {
	query := lessonSelect + ` WHERE t.owner_id = $1 AND l.day_of_week = $2` + lessonOrder
	return r.fetch(ctx, "fetch lessons for day", query, ownerID, day.Index())
}

// FetchActiveAt уроки, идущие в день day во время t (границы включены)
func (r *LessonPostgresRepository) FetchActiveAt(ctx context.Context, ownerID int64, day schedule.Weekday, t schedule.TimeOfDay) ([]*model.Lesson, error) {
	query := lessonSelect + `
		WHERE t.owner_id = $1 AND l.day_of_week = $2 AND l.start_minute <= $3 AND $3 <= l.end_minute` + lessonOrder
	return r.fetch(ctx, "fetch active lessons", query, ownerID, day.Index(), t.Minutes())
}

// FetchAtTime уроки любого дня, в интервал которых попадает t
func (r *LessonPostgresRepository) FetchAtTime(ctx context.Context, ownerID int64, t schedule.TimeOfDay) ([]*model.Lesson, error) {
	query := lessonSelect + `
		WHERE t.owner_id = $1 AND l.start_minute <= $2 AND $2 <= l.end_minute` + lessonOrder
	return r.fetch(ctx, "fetch lessons at time", query, ownerID, t.Minutes())
}

// Delete удаляет урок (задачи отвязываются через ON DELETE SET NULL)
func (r *LessonPostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete lesson %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *LessonPostgresRepository) fetch(ctx context.Context, op, query string, args ...any) ([]*model.Lesson, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	lessons := make([]*model.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lessons, nil
}

func scanLesson(row rowScanner) (*model.Lesson, error) {
	var l model.Lesson
	var s model.Subject
	var day int16
	var startMinute, endMinute int32

	err := row.Scan(
		&l.ID, &l.SubjectID, &day, &startMinute, &endMinute, &l.Note, &l.CreatedAt,
		&s.ID, &s.TimetableID, &s.Name, &s.Color, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if l.Day, err = schedule.WeekdayFromIndex(int(day)); err != nil {
		return nil, err
	}
	if l.Start, err = schedule.TimeOfDayFromMinutes(int(startMinute)); err != nil {
		return nil, err
	}
	if l.End, err = schedule.TimeOfDayFromMinutes(int(endMinute)); err != nil {
		return nil, err
	}
	l.Subject = &s

	return &l, nil
}
