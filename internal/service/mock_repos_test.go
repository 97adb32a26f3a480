package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore общее хранилище моков, повторяет связи и каскады схемы БД
type memStore struct {
	mu sync.Mutex

	seq           int64
	users         map[int64]*model.User
	timetables    map[uuid.UUID]*model.Timetable
	subjects      map[uuid.UUID]*model.Subject
	lessons       map[uuid.UUID]*model.Lesson
	tasks         map[uuid.UUID]*model.Task
	events        map[uuid.UUID]*model.Event
	notifications map[int64]*model.Notification
	created       map[uuid.UUID]int64 // порядок вставки для ORDER BY created_at
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[int64]*model.User),
		timetables:    make(map[uuid.UUID]*model.Timetable),
		subjects:      make(map[uuid.UUID]*model.Subject),
		lessons:       make(map[uuid.UUID]*model.Lesson),
		tasks:         make(map[uuid.UUID]*model.Task),
		events:        make(map[uuid.UUID]*model.Event),
		notifications: make(map[int64]*model.Notification),
		created:       make(map[uuid.UUID]int64),
	}
}

func (s *memStore) next() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:         &mockUserRepo{s},
		Timetable:    &mockTimetableRepo{s},
		Subject:      &mockSubjectRepo{s},
		Lesson:       &mockLessonRepo{s},
		Task:         &mockTaskRepo{s},
		Event:        &mockEventRepo{s},
		Notification: &mockNotificationRepo{s},
	}
}

func (s *memStore) ownerOfTimetable(id uuid.UUID) int64 {
	if t, ok := s.timetables[id]; ok {
		return t.OwnerID
	}
	return 0
}

func (s *memStore) ownerOfSubject(id uuid.UUID) int64 {
	if subj, ok := s.subjects[id]; ok {
		return s.ownerOfTimetable(subj.TimetableID)
	}
	return 0
}

// ── TxManager ──

// mockTxManager выполняет fn без транзакции поверх тех же моков
type mockTxManager struct {
	repo  *repository.Repository
	calls int
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos *repository.Repository) error) error {
	m.calls++
	return fn(ctx, m.repo)
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	user.ID = m.s.next()
	cp := *user
	m.s.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.TelegramID == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	m.s.users[user.ID] = &cp
	return nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct{ s *memStore }

func (m *mockTimetableRepo) Create(_ context.Context, timetable *model.Timetable) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.created[timetable.ID] = m.s.next()
	cp := *timetable
	m.s.timetables[timetable.ID] = &cp
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Timetable, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if t, ok := m.s.timetables[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m *mockTimetableRepo) GetByOwner(_ context.Context, ownerID int64) ([]*model.Timetable, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*model.Timetable
	for _, t := range m.s.timetables {
		if t.OwnerID == ownerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return m.s.created[out[i].ID] < m.s.created[out[j].ID]
	})
	return out, nil
}

func (m *mockTimetableRepo) Update(_ context.Context, timetable *model.Timetable) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.timetables[timetable.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *timetable
	m.s.timetables[timetable.ID] = &cp
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.timetables[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.s.timetables, id)

	for sid, subj := range m.s.subjects {
		if subj.TimetableID == id {
			delete(m.s.subjects, sid)
			for lid, l := range m.s.lessons {
				if l.SubjectID == sid {
					delete(m.s.lessons, lid)
				}
			}
		}
	}
	for tid, task := range m.s.tasks {
		if task.TimetableID == id {
			delete(m.s.tasks, tid)
			for nid, n := range m.s.notifications {
				if n.TaskID == tid {
					delete(m.s.notifications, nid)
				}
			}
		}
	}
	for eid, e := range m.s.events {
		if e.TimetableID == id {
			delete(m.s.events, eid)
		}
	}
	return nil
}

func (m *mockTimetableRepo) ClearDefault(_ context.Context, ownerID int64, keep uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for id, t := range m.s.timetables {
		if t.OwnerID == ownerID && id != keep {
			t.IsDefault = false
		}
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct{ s *memStore }

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.timetables[subject.TimetableID]; !ok {
		return fmt.Errorf("timetable %s does not exist", subject.TimetableID)
	}
	cp := *subject
	m.s.subjects[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Subject, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if subj, ok := m.s.subjects[id]; ok {
		cp := *subj
		return &cp, nil
	}
	return nil, nil
}

func (m *mockSubjectRepo) GetByOwner(_ context.Context, ownerID int64) ([]*model.Subject, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*model.Subject
	for _, subj := range m.s.subjects {
		if m.s.ownerOfTimetable(subj.TimetableID) == ownerID {
			cp := *subj
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.subjects[subject.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *subject
	m.s.subjects[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.subjects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.s.subjects, id)
	for lid, l := range m.s.lessons {
		if l.SubjectID == id {
			delete(m.s.lessons, lid)
			m.s.detachTasks(lid)
		}
	}
	return nil
}

func (s *memStore) detachTasks(lessonID uuid.UUID) {
	for _, task := range s.tasks {
		if task.LessonID != nil && *task.LessonID == lessonID {
			task.LessonID = nil
		}
	}
}

// ── Mock LessonRepository ──

type mockLessonRepo struct{ s *memStore }

func (m *mockLessonRepo) Create(_ context.Context, lesson *model.Lesson) error {
	if err := lesson.Interval().Validate(); err != nil {
		return err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.subjects[lesson.SubjectID]; !ok {
		return fmt.Errorf("subject %s does not exist", lesson.SubjectID)
	}
	cp := *lesson
	cp.Subject = nil
	m.s.lessons[lesson.ID] = &cp
	return nil
}

// withSubject копия урока с предметом, как после JOIN
func (s *memStore) withSubject(l *model.Lesson) *model.Lesson {
	cp := *l
	if subj, ok := s.subjects[l.SubjectID]; ok {
		sc := *subj
		cp.Subject = &sc
	}
	return &cp
}

func (m *mockLessonRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Lesson, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if l, ok := m.s.lessons[id]; ok {
		return m.s.withSubject(l), nil
	}
	return nil, nil
}

func (m *mockLessonRepo) filter(ownerID int64, keep func(l *model.Lesson) bool) []*model.Lesson {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*model.Lesson
	for _, l := range m.s.lessons {
		if m.s.ownerOfSubject(l.SubjectID) == ownerID && keep(l) {
			out = append(out, m.s.withSubject(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Interval().Less(out[j].Interval()) })
	return out
}

func (m *mockLessonRepo) FetchAll(_ context.Context, ownerID int64) ([]*model.Lesson, error) {
	return m.filter(ownerID, func(*model.Lesson) bool { return true }), nil
}

func (m *mockLessonRepo) FetchForDay(_ context.Context, ownerID int64, day schedule.Weekday) ([]*model.Lesson, error) {
	return m.filter(ownerID, func(l *model.Lesson) bool { return l.Day == day }), nil
}

func (m *mockLessonRepo) FetchActiveAt(_ context.Context, ownerID int64, day schedule.Weekday, t schedule.TimeOfDay) ([]*model.Lesson, error) {
	return m.filter(ownerID, func(l *model.Lesson) bool {
		return l.Day == day && schedule.IsWithin(t, l.Start, l.End)
	}), nil
}

func (m *mockLessonRepo) FetchAtTime(_ context.Context, ownerID int64, t schedule.TimeOfDay) ([]*model.Lesson, error) {
	return m.filter(ownerID, func(l *model.Lesson) bool {
		return schedule.IsWithin(t, l.Start, l.End)
	}), nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.lessons[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.s.lessons, id)
	m.s.detachTasks(id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct{ s *memStore }

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *task
	m.s.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if task, ok := m.s.tasks[id]; ok {
		cp := *task
		return &cp, nil
	}
	return nil, nil
}

func (m *mockTaskRepo) List(_ context.Context, ownerID int64, filter repository.TaskFilter) ([]*model.Task, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*model.Task
	for _, task := range m.s.tasks {
		if m.s.ownerOfTimetable(task.TimetableID) == ownerID && filter.Matches(task) {
			cp := *task
			out = append(out, &cp)
		}
	}
	model.SortTasks(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *task
	m.s.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.s.tasks, id)
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct{ s *memStore }

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *event
	m.s.events[event.ID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Event, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if e, ok := m.s.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *mockEventRepo) filter(ownerID int64, keep func(e *model.Event) bool) []*model.Event {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*model.Event
	for _, e := range m.s.events {
		if m.s.ownerOfTimetable(e.TimetableID) == ownerID && keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})
	return out
}

func between(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func (m *mockEventRepo) ListTouching(_ context.Context, ownerID int64, from, to time.Time) ([]*model.Event, error) {
	return m.filter(ownerID, func(e *model.Event) bool {
		return between(e.Start, from, to) || between(e.End, from, to)
	}), nil
}

func (m *mockEventRepo) ListAt(_ context.Context, ownerID int64, t time.Time) ([]*model.Event, error) {
	return m.filter(ownerID, func(e *model.Event) bool { return between(t, e.Start, e.End) }), nil
}

func (m *mockEventRepo) ListByOwner(_ context.Context, ownerID int64) ([]*model.Event, error) {
	return m.filter(ownerID, func(*model.Event) bool { return true }), nil
}

func (m *mockEventRepo) ExistsUID(_ context.Context, timetableID uuid.UUID, uid string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, e := range m.s.events {
		if e.TimetableID == timetableID && e.UID == uid {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.s.events, id)
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct{ s *memStore }

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	n.ID = m.s.next()
	cp := *n
	m.s.notifications[n.ID] = &cp
	return nil
}

func (m *mockNotificationRepo) DeletePendingByTask(_ context.Context, taskID uuid.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var affected int64
	for id, n := range m.s.notifications {
		if n.TaskID == taskID && n.SentAt == nil {
			delete(m.s.notifications, id)
			affected++
		}
	}
	return affected, nil
}

func (m *mockNotificationRepo) ListDue(_ context.Context, now time.Time, limit int) ([]*model.Notification, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*model.Notification
	for _, n := range m.s.notifications {
		if n.SentAt != nil || n.NotifyAt.After(now) {
			continue
		}
		task, ok := m.s.tasks[n.TaskID]
		if !ok || task.Completed || task.Archived {
			continue
		}
		cp := *n
		cp.TaskTitle = task.Title
		cp.TaskDue = task.Due
		if u, ok := m.s.users[m.s.ownerOfTimetable(task.TimetableID)]; ok {
			cp.ChatID = u.ChatID
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NotifyAt.Before(out[j].NotifyAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkSent(_ context.Context, id int64, sentAt time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	n, ok := m.s.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.SentAt = &sentAt
	return nil
}

// pending неотправленные напоминания задачи
func (s *memStore) pending(taskID uuid.UUID) []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.notifications {
		if n.TaskID == taskID && n.SentAt == nil {
			out = append(out, n)
		}
	}
	return out
}

// fixedClock часы, которые тесты могут двигать
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// ── Тестовое окружение ──

type testEnv struct {
	store *memStore
	repo  *repository.Repository
	tx    *mockTxManager
	clock *fixedClock
	cache *WeekCache

	timetables *TimetableService
	lessons    *LessonService
	tasks      *TaskService
	calendar   *CalendarService
	export     *ExportService

	ownerID int64
}

// 2024-09-09 понедельник
func at(day, hour, minute int) time.Time {
	return time.Date(2024, 9, 9+day, hour, minute, 0, 0, time.UTC)
}

func newTestEnv() *testEnv {
	store := newMemStore()
	repo := store.repository()
	tx := &mockTxManager{repo: repo}
	clock := &fixedClock{now: at(0, 8, 0)}
	cache := NewWeekCache(time.Minute, time.Minute)
	logger := zap.NewNop()

	calendar := NewCalendarService(repo, cache, clock.Now, logger)
	env := &testEnv{
		store:      store,
		repo:       repo,
		tx:         tx,
		clock:      clock,
		cache:      cache,
		timetables: NewTimetableService(repo, tx, cache, "", logger),
		lessons:    NewLessonService(repo, cache, clock.Now, logger),
		tasks:      NewTaskService(repo, tx, time.Hour, clock.Now, logger),
		calendar:   calendar,
		export:     NewExportService(repo, calendar, time.UTC, clock.Now, logger),
	}

	user := &model.User{TelegramID: 1001, ChatID: 5001, Username: "student"}
	_ = repo.User.Create(context.Background(), user)
	env.ownerID = user.ID

	return env
}

// otherUser второй пользователь для проверок владения
func (e *testEnv) otherUser() int64 {
	user := &model.User{TelegramID: 2002, ChatID: 6002}
	_ = e.repo.User.Create(context.Background(), user)
	return user.ID
}

// addLesson предмет (создаётся при необходимости) и урок по нему
func (e *testEnv) addLesson(t testing.TB, ownerID int64, subject string, day schedule.Weekday, start, end string) *model.Lesson {
	t.Helper()
	ctx := context.Background()

	subj, err := e.timetables.SubjectByName(ctx, ownerID, subject, true)
	require.NoError(t, err)

	lesson, err := e.lessons.AddLesson(ctx, ownerID, NewLesson{
		SubjectID: subj.ID,
		Day:       day,
		Start:     mustTime(t, start),
		End:       mustTime(t, end),
	})
	require.NoError(t, err)
	return lesson
}

func mustTime(t testing.TB, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}
