package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, organizer_id, title, venue, description, requirements, date, budget,
	artist_slots, status, version, created_at, updated_at`

// EventRepository хранит мероприятие одной строкой, слоты лежат в JSONB,
// поэтому изменение лайнапа - одна атомарная запись.
type EventRepository struct {
	*base.Repository
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт мероприятие
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $12)
	`

	_, err := r.Pool().Exec(
		ctx, query,
		event.ID,
		event.OrganizerID,
		event.Title,
		event.Venue,
		event.Description,
		event.Requirements,
		event.Date,
		event.Budget,
		slotsOrEmpty(event.ArtistSlots),
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	event.Version = 1
	return nil
}

// GetByID получает мероприятие по ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}

	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date`)
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE organizer_id = $1 ORDER BY date`, organizerID)
}

// Update записывает мероприятие, если версия в базе совпадает с event.Version
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET title = $3, venue = $4, description = $5, requirements = $6, date = $7, budget = $8,
		    artist_slots = $9, status = $10, updated_at = $11, version = version + 1
		WHERE id = $1 AND version = $2
	`

	err := r.CompareAndSwap(
		ctx, query,
		func(ctx context.Context) (bool, error) { return r.Exists(ctx, "events", event.ID) },
		model.ErrEventNotFound,
		fmt.Errorf("event %s: %w", event.ID, model.ErrStaleWrite),
		event.ID,
		event.Version,
		event.Title,
		event.Venue,
		event.Description,
		event.Requirements,
		event.Date,
		event.Budget,
		slotsOrEmpty(event.ArtistSlots),
		event.Status,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	event.Version++
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	n, err := r.ExecAffected(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]*model.Event, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
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

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Venue,
		&event.Description,
		&event.Requirements,
		&event.Date,
		&event.Budget,
		&event.ArtistSlots,
		&event.Status,
		&event.Version,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// пустой лайнап пишем как [], а не null
func slotsOrEmpty(slots []model.ArtistSlot) []model.ArtistSlot {
	if slots == nil {
		return []model.ArtistSlot{}
	}
	return slots
}
