package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/google/uuid"
)

type EventPostgresRepository struct {
	*base.Repository
}

func NewEventRepository(db base.Querier) *EventPostgresRepository {
	return &EventPostgresRepository{Repository: base.NewRepository(db)}
}

const eventSelect = `
	SELECT e.id, e.timetable_id, e.uid, e.title, e.location, e.note, e.start_at, e.end_at, e.all_day, e.created_at
	FROM events e
	INNER JOIN timetables t ON e.timetable_id = t.id
`

// Create сохраняет событие
func (r *EventPostgresRepository) Create(ctx context.Context, event *model.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
		INSERT INTO events (id, timetable_id, uid, title, location, note, start_at, end_at, all_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		event.ID,
		event.TimetableID,
		event.UID,
		event.Title,
		event.Location,
		event.Note,
		event.Start,
		event.End,
		event.AllDay,
	).Scan(&event.CreatedAt)

	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

// GetByID получает событие по ID
func (r *EventPostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := scanEvent(r.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}

	return event, nil
}

func (r *EventPostgresRepository) ListTouching(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Event, error) {
	query := eventSelect + `
		WHERE t.owner_id = $1
		  AND ((e.start_at BETWEEN $2 AND $3) OR (e.end_at BETWEEN $2 AND $3))
		ORDER BY e.start_at, e.end_at`
	return r.list(ctx, "list events in range", query, ownerID, from, to)
}

func (r *EventPostgresRepository) ListAt(ctx context.Context, ownerID int64, t time.Time) ([]*model.Event, error) {
	query := eventSelect + `
		WHERE t.owner_id = $1 AND e.start_at <= $2 AND $2 <= e.end_at
		ORDER BY e.start_at, e.end_at`
	return r.list(ctx, "list events at", query, ownerID, t)
}

func (r *EventPostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Event, error) {
	query := eventSelect + ` WHERE t.owner_id = $1 ORDER BY e.start_at, e.end_at`
	return r.list(ctx, "list events", query, ownerID)
}

// ExistsUID есть ли уже событие с таким UID (повторный импорт .ics)
func (r *EventPostgresRepository) ExistsUID(ctx context.Context, timetableID uuid.UUID, uid string) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE timetable_id = $1 AND uid = $2)`,
		timetableID, uid,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event uid: %w", err)
	}
	return exists, nil
}

// Delete удаляет событие
func (r *EventPostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete event %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *EventPostgresRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Event, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.TimetableID, &e.UID, &e.Title, &e.Location, &e.Note,
		&e.Start, &e.End, &e.AllDay, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
