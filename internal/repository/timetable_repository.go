package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TimetablePostgresRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewTimetableRepository(db base.Querier, logger *zap.Logger) *TimetablePostgresRepository {
	return &TimetablePostgresRepository{
		Repository: base.NewRepository(db),
		logger:     logger,
	}
}

const timetableColumns = `id, owner_id, name, color, is_default, created_at`

// Create создаёт расписание, id генерируется если не задан
func (r *TimetablePostgresRepository) Create(ctx context.Context, timetable *model.Timetable) error {
	if timetable.ID == uuid.Nil {
		timetable.ID = uuid.New()
	}

	query := `
		INSERT INTO timetables (id, owner_id, name, color, is_default)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		timetable.ID,
		timetable.OwnerID,
		timetable.Name,
		timetable.Color,
		timetable.IsDefault,
	).Scan(&timetable.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert timetable",
			zap.Int64("owner_id", timetable.OwnerID),
			zap.String("name", timetable.Name),
			zap.Error(err))
		return fmt.Errorf("create timetable: %w", err)
	}

	return nil
}

// GetByID получает расписание по ID
func (r *TimetablePostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Timetable, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE id = $1`

	timetable, err := scanTimetable(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get timetable by id: %w", err)
	}

	return timetable, nil
}

// GetByOwner все расписания пользователя в порядке создания
func (r *TimetablePostgresRepository) GetByOwner(ctx context.Context, ownerID int64) ([]*model.Timetable, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE owner_id = $1 ORDER BY created_at, name`

	rows, err := r.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get timetables by owner: %w", err)
	}
	defer rows.Close()

	var timetables []*model.Timetable
	for rows.Next() {
		timetable, err := scanTimetable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timetable: %w", err)
		}
		timetables = append(timetables, timetable)
	}

	return timetables, rows.Err()
}

// Update обновляет название, цвет и флаг по умолчанию
func (r *TimetablePostgresRepository) Update(ctx context.Context, timetable *model.Timetable) error {
	query := `
		UPDATE timetables
		SET name = $1, color = $2, is_default = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, timetable.Name, timetable.Color, timetable.IsDefault, timetable.ID)
	if err != nil {
		return fmt.Errorf("update timetable: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update timetable %s: %w", timetable.ID, ErrNotFound)
	}

	return nil
}

// Delete удаляет расписание (предметы, уроки, задачи и события удалятся каскадом)
func (r *TimetablePostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM timetables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete timetable %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *TimetablePostgresRepository) ClearDefault(ctx context.Context, ownerID int64, keep uuid.UUID) error {
	query := `UPDATE timetables SET is_default = FALSE WHERE owner_id = $1 AND id <> $2 AND is_default`

	affected, err := r.ExecAffected(ctx, query, ownerID, keep)
	if err != nil {
		return fmt.Errorf("clear default timetable: %w", err)
	}

	r.logger.Debug("Default flag cleared",
		zap.Int64("owner_id", ownerID),
		zap.String("keep", keep.String()),
		zap.Int64("affected", affected))

	return nil
}

func scanTimetable(row rowScanner) (*model.Timetable, error) {
	var t model.Timetable
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Color, &t.IsDefault, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
