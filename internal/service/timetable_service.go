package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTimetableName  = "Расписание"
	DefaultTimetableColor = "red"
	DefaultSubjectColor   = "blue"
)

// TimetableService расписания и предметы пользователя
type TimetableService struct {
	repo         *repository.Repository
	tx           repository.TxManager
	cache        *WeekCache
	subjectColor string
	logger       *zap.Logger
}

func NewTimetableService(repo *repository.Repository, tx repository.TxManager, cache *WeekCache, subjectColor string, logger *zap.Logger) *TimetableService {
	if subjectColor == "" {
		subjectColor = DefaultSubjectColor
	}
	return &TimetableService{
		repo:         repo,
		tx:           tx,
		cache:        cache,
		subjectColor: subjectColor,
		logger:       logger,
	}
}

// CreateTimetable создаёт расписание. Новое расписание не становится основным.
func (s *TimetableService) CreateTimetable(ctx context.Context, ownerID int64, name, color string) (*model.Timetable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: timetable name is empty", ErrInvalidInput)
	}
	if color == "" {
		color = DefaultTimetableColor
	}

	timetable := &model.Timetable{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
		Color:   color,
	}

	if err := s.repo.Timetable.Create(ctx, timetable); err != nil {
		return nil, fmt.Errorf("create timetable: %w", err)
	}

	s.logger.Info("Timetable created",
		zap.Int64("owner_id", ownerID),
		zap.String("timetable_id", timetable.ID.String()),
		zap.String("name", name))

	return timetable, nil
}

// ListTimetables все расписания пользователя
func (s *TimetableService) ListTimetables(ctx context.Context, ownerID int64) ([]*model.Timetable, error) {
	timetables, err := s.repo.Timetable.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list timetables: %w", err)
	}
	return timetables, nil
}

// GetTimetable расписание, принадлежащее пользователю
func (s *TimetableService) GetTimetable(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Timetable, error) {
	return ownedTimetable(ctx, s.repo, ownerID, id)
}

// DefaultTimetable помеченное основным расписание, иначе первое созданное, иначе nil
func (s *TimetableService) DefaultTimetable(ctx context.Context, ownerID int64) (*model.Timetable, error) {
	timetables, err := s.ListTimetables(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for _, t := range timetables {
		if t.IsDefault {
			return t, nil
		}
	}
	if len(timetables) > 0 {
		return timetables[0], nil
	}
	return nil, nil
}

// EnsureDefaultTimetable как DefaultTimetable, но создаёт основное расписание если их нет
func (s *TimetableService) EnsureDefaultTimetable(ctx context.Context, ownerID int64) (*model.Timetable, error) {
	timetable, err := s.DefaultTimetable(ctx, ownerID)
	if err != nil || timetable != nil {
		return timetable, err
	}

	timetable = &model.Timetable{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      DefaultTimetableName,
		Color:     DefaultTimetableColor,
		IsDefault: true,
	}
	if err := s.repo.Timetable.Create(ctx, timetable); err != nil {
		return nil, fmt.Errorf("create default timetable: %w", err)
	}

	s.logger.Info("Default timetable created",
		zap.Int64("owner_id", ownerID),
		zap.String("timetable_id", timetable.ID.String()))

	return timetable, nil
}

// SetDefaultTimetable делает расписание основным, остальные перестают им быть
func (s *TimetableService) SetDefaultTimetable(ctx context.Context, ownerID int64, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repository.Repository) error {
		timetable, err := ownedTimetable(ctx, repos, ownerID, id)
		if err != nil {
			return err
		}

		timetable.IsDefault = true
		if err := repos.Timetable.Update(ctx, timetable); err != nil {
			return fmt.Errorf("update timetable: %w", err)
		}

		return repos.Timetable.ClearDefault(ctx, ownerID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Default timetable changed",
		zap.Int64("owner_id", ownerID),
		zap.String("timetable_id", id.String()))

	return nil
}

// RenameTimetable меняет название расписания
func (s *TimetableService) RenameTimetable(ctx context.Context, ownerID int64, id uuid.UUID, name string) (*model.Timetable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: timetable name is empty", ErrInvalidInput)
	}

	timetable, err := ownedTimetable(ctx, s.repo, ownerID, id)
	if err != nil {
		return nil, err
	}

	timetable.Name = name
	if err := s.repo.Timetable.Update(ctx, timetable); err != nil {
		return nil, fmt.Errorf("update timetable: %w", err)
	}

	return timetable, nil
}

// DeleteTimetable удаляет расписание вместе с предметами, уроками, задачами и событиями
func (s *TimetableService) DeleteTimetable(ctx context.Context, ownerID int64, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repository.Repository) error {
		if _, err := ownedTimetable(ctx, repos, ownerID, id); err != nil {
			return err
		}
		return repos.Timetable.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	s.cache.Invalidate(ownerID)

	s.logger.Info("Timetable deleted",
		zap.Int64("owner_id", ownerID),
		zap.String("timetable_id", id.String()))

	return nil
}

// AddSubject создаёт предмет в основном расписании пользователя
func (s *TimetableService) AddSubject(ctx context.Context, ownerID int64, name, color string) (*model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is empty", ErrInvalidInput)
	}
	if color == "" {
		color = s.subjectColor
	}

	timetable, err := s.EnsureDefaultTimetable(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	subject := &model.Subject{
		ID:          uuid.New(),
		TimetableID: timetable.ID,
		Name:        name,
		Color:       color,
	}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}

	s.logger.Info("Subject created",
		zap.Int64("owner_id", ownerID),
		zap.String("subject_id", subject.ID.String()),
		zap.String("name", name))

	return subject, nil
}

// ListSubjects все предметы пользователя по алфавиту
func (s *TimetableService) ListSubjects(ctx context.Context, ownerID int64) ([]*model.Subject, error) {
	subjects, err := s.repo.Subject.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// GetSubject предмет, принадлежащий пользователю
func (s *TimetableService) GetSubject(ctx context.Context, ownerID int64, id uuid.UUID) (*model.Subject, error) {
	return ownedSubject(ctx, s.repo, ownerID, id)
}

// SubjectByName ищет предмет по точному названию, при createIfMissing создаёт новый
func (s *TimetableService) SubjectByName(ctx context.Context, ownerID int64, name string, createIfMissing bool) (*model.Subject, error) {
	subjects, err := s.ListSubjects(ctx, ownerID)
	if err != nil {
		if !createIfMissing {
			return nil, err
		}
		s.logger.Warn("Subjects unavailable, creating new subject",
			zap.Int64("owner_id", ownerID),
			zap.Error(err))
	}

	for _, subject := range subjects {
		if subject.Name == name {
			return subject, nil
		}
	}

	if createIfMissing {
		return s.AddSubject(ctx, ownerID, name, s.subjectColor)
	}
	return nil, nil
}

// SubjectSuggestions все предметы по убыванию похожести названия на title
func (s *TimetableService) SubjectSuggestions(ctx context.Context, ownerID int64, title string) ([]*model.Subject, error) {
	subjects, err := s.ListSubjects(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	type scored struct {
		subject *model.Subject
		score   float64
	}

	values := make([]scored, 0, len(subjects))
	for _, subject := range subjects {
		values = append(values, scored{subject: subject, score: SimilarityScore(subject.Name, title)})
	}

	sort.SliceStable(values, func(i, j int) bool {
		if values[i].score != values[j].score {
			return values[i].score > values[j].score
		}
		return values[i].subject.Name < values[j].subject.Name
	})

	out := make([]*model.Subject, 0, len(values))
	for _, v := range values {
		out = append(out, v.subject)
	}
	return out, nil
}

// SimilarityScore 1 - расстояние Левенштейна / длина более длинной строки (без учёта регистра)
func SimilarityScore(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// DeleteSubject удаляет предмет вместе с уроками
func (s *TimetableService) DeleteSubject(ctx context.Context, ownerID int64, id uuid.UUID) error {
	if _, err := ownedSubject(ctx, s.repo, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	s.cache.Invalidate(ownerID)

	s.logger.Info("Subject deleted",
		zap.Int64("owner_id", ownerID),
		zap.String("subject_id", id.String()))

	return nil
}

func ownedTimetable(ctx context.Context, repos *repository.Repository, ownerID int64, id uuid.UUID) (*model.Timetable, error) {
	timetable, err := repos.Timetable.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	if timetable == nil {
		return nil, fmt.Errorf("timetable %s: %w", id, ErrNotFound)
	}
	if timetable.OwnerID != ownerID {
		return nil, fmt.Errorf("timetable %s: %w", id, ErrForbidden)
	}
	return timetable, nil
}

func ownedSubject(ctx context.Context, repos *repository.Repository, ownerID int64, id uuid.UUID) (*model.Subject, error) {
	subject, err := repos.Subject.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if subject == nil {
		return nil, fmt.Errorf("subject %s: %w", id, ErrNotFound)
	}
	if _, err := ownedTimetable(ctx, repos, ownerID, subject.TimetableID); err != nil {
		return nil, err
	}
	return subject, nil
}
