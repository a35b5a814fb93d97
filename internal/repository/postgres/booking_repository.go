package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, artist_id, event_id, organizer_id, role, status, status_history,
	start_time, end_time, payment, notes, version, created_at, updated_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новое бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13)
	`

	_, err := r.Pool().Exec(
		ctx, query,
		booking.ID,
		booking.ArtistID,
		booking.EventID,
		booking.OrganizerID,
		booking.Role,
		booking.Status,
		booking.StatusHistory,
		booking.StartTime,
		booking.EndTime,
		booking.Payment,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	booking.Version = 1
	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
}

func (r *BookingRepository) ListByArtist(ctx context.Context, artistID string) ([]*model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE artist_id = $1 ORDER BY created_at DESC`, artistID)
}

func (r *BookingRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE organizer_id = $1 ORDER BY created_at DESC`, organizerID)
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE event_id = $1 ORDER BY created_at DESC`, eventID)
}

// ListActiveByArtist получает бронирования артиста, занимающие его время
func (r *BookingRepository) ListActiveByArtist(ctx context.Context, artistID string) ([]*model.Booking, error) {
	statuses := make([]string, len(model.ActiveBookingStatuses))
	for i, s := range model.ActiveBookingStatuses {
		statuses[i] = string(s)
	}

	return r.list(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE artist_id = $1 AND status = ANY($2)
		ORDER BY start_time NULLS LAST
	`, artistID, statuses)
}

// Update записывает бронирование, если версия в базе совпадает с booking.Version
func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET status = $3, status_history = $4, start_time = $5, end_time = $6, payment = $7,
		    notes = $8, updated_at = $9, version = version + 1
		WHERE id = $1 AND version = $2
	`

	err := r.CompareAndSwap(
		ctx, query,
		func(ctx context.Context) (bool, error) { return r.Exists(ctx, "bookings", booking.ID) },
		model.ErrBookingNotFound,
		fmt.Errorf("booking %s: %w", booking.ID, model.ErrStaleWrite),
		booking.ID,
		booking.Version,
		booking.Status,
		booking.StatusHistory,
		booking.StartTime,
		booking.EndTime,
		booking.Payment,
		booking.Notes,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	booking.Version++
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	n, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n == 0 {
		return model.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ArtistID,
		&booking.EventID,
		&booking.OrganizerID,
		&booking.Role,
		&booking.Status,
		&booking.StatusHistory,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Payment,
		&booking.Notes,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
