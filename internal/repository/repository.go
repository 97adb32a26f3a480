package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound обновление или удаление не затронуло ни одной строки
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type TimetableRepository interface {
	Create(ctx context.Context, timetable *model.Timetable) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Timetable, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*model.Timetable, error)
	Update(ctx context.Context, timetable *model.Timetable) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearDefault снимает флаг по умолчанию со всех расписаний владельца, кроме keep
	ClearDefault(ctx context.Context, ownerID int64, keep uuid.UUID) error
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LessonRepository хранилище еженедельных слотов
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error)
	FetchAll(ctx context.Context, ownerID int64) ([]*model.Lesson, error)
	FetchForDay(ctx context.Context, ownerID int64, day schedule.Weekday) ([]*model.Lesson, error)
	FetchActiveAt(ctx context.Context, ownerID int64, day schedule.Weekday, t schedule.TimeOfDay) ([]*model.Lesson, error)
	FetchAtTime(ctx context.Context, ownerID int64, t schedule.TimeOfDay) ([]*model.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, ownerID int64, filter TaskFilter) ([]*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	// ListTouching события, у которых начало или конец попадает в [from, to]
	ListTouching(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Event, error)
	// ListAt события, идущие в момент t
	ListAt(ctx context.Context, ownerID int64, t time.Time) ([]*model.Event, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Event, error)
	ExistsUID(ctx context.Context, timetableID uuid.UUID, uid string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	DeletePendingByTask(ctx context.Context, taskID uuid.UUID) (int64, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*model.Notification, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
}

// Repository набор репозиториев поверх одного соединения (пула или транзакции)
type Repository struct {
	User         UserRepository
	Timetable    TimetableRepository
	Subject      SubjectRepository
	Lesson       LessonRepository
	Task         TaskRepository
	Event        EventRepository
	Notification NotificationRepository
}

// NewPostgres собирает репозитории поверх db
func NewPostgres(db base.Querier, logger *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Timetable:    NewTimetableRepository(db, logger),
		Subject:      NewSubjectRepository(db, logger),
		Lesson:       NewLessonRepository(db, logger),
		Task:         NewTaskRepository(db, logger),
		Event:        NewEventRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
