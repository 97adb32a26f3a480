package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubjectPostgresRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewSubjectRepository(db base.Querier, logger *zap.Logger) *SubjectPostgresRepository {
	return &SubjectPostgresRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

// Create создаёт новый предмет
func (r *SubjectPostgresRepository) Create(ctx context.Context, subject *model.Subject) error {
	r.logger.Info("SubjectRepository.Create called",
		zap.String("timetable_id", subject.TimetableID.String()),
		zap.String("name", subject.Name),
		zap.String("color", subject.Color))

	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}

	query := `
		INSERT INTO subjects (id, timetable_id, name, color)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, subject.ID, subject.TimetableID, subject.Name, subject.Color).
		Scan(&subject.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert subject into DB",
			zap.String("timetable_id", subject.TimetableID.String()),
			zap.String("name", subject.Name),
			zap.Error(err))
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectPostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	query := `
		SELECT id, timetable_id, name, color, created_at
		FROM subjects
		WHERE id = $1
	`

	subject, err := scanSubject(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return subject, nil
}

// GetByOwner все предметы из всех расписаний пользователя
func (r *SubjectPostgresRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*model.Subject, error) {
	query := `
		SELECT s.id, s.timetable_id, s.name, s.color, s.created_at
		FROM subjects s
		INNER JOIN timetables t ON s.timetable_id = t.id
		WHERE t.owner_id = $1
		ORDER BY s.name
	`

	rows, err := r.Query(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to query subjects",
			zap.Int64("owner_id", ownerID),
			zap.Error(err))
		return nil, fmt.Errorf("get subjects by owner: %w", err)
	}
	defer rows.Close()

	var subjects []*model.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

// Update обновляет предмет
func (r *SubjectPostgresRepository) Update(ctx context.Context, subject *model.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, color = $2, timetable_id = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, subject.Name, subject.Color, subject.TimetableID, subject.ID)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update subject %s: %w", subject.ID, ErrNotFound)
	}

	return nil
}

// Delete удаляет предмет (уроки удалятся каскадом)
func (r *SubjectPostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete subject %s: %w", id, ErrNotFound)
	}

	return nil
}

func scanSubject(row rowScanner) (*model.Subject, error) {
	var s model.Subject
	if err := row.Scan(&s.ID, &s.TimetableID, &s.Name, &s.Color, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
