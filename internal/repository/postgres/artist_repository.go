package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const artistColumns = `id, user_id, name, genres, description, status, pricing, availability, created_at, updated_at`

type ArtistRepository struct {
	*base.Repository
}

func NewArtistRepository(pool *pgxpool.Pool) *ArtistRepository {
	return &ArtistRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт профиль артиста
func (r *ArtistRepository) Create(ctx context.Context, artist *model.Artist) error {
	query := `
		INSERT INTO artists (` + artistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.Pool().Exec(
		ctx, query,
		artist.ID,
		artist.UserID,
		artist.Name,
		artist.Genres,
		artist.Description,
		artist.Status,
		artist.Pricing,
		availabilityOrEmpty(artist.Availability),
		artist.CreatedAt,
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create artist: %w", err)
	}

	return nil
}

// FindByID получает артиста по ID
func (r *ArtistRepository) FindByID(ctx context.Context, id string) (*model.Artist, error) {
	return r.findOne(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = $1`, id)
}

// FindByUserID получает профиль артиста по пользователю
func (r *ArtistRepository) FindByUserID(ctx context.Context, userID string) (*model.Artist, error) {
	return r.findOne(ctx, `SELECT `+artistColumns+` FROM artists WHERE user_id = $1`, userID)
}

func (r *ArtistRepository) List(ctx context.Context) ([]*model.Artist, error) {
	rows, err := r.Query(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]*model.Artist, 0)
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	return artists, rows.Err()
}

func (r *ArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	query := `
		UPDATE artists
		SET name = $2, genres = $3, description = $4, status = $5, pricing = $6,
		    availability = $7, updated_at = $8
		WHERE id = $1
	`

	n, err := r.ExecAffected(
		ctx, query,
		artist.ID,
		artist.Name,
		artist.Genres,
		artist.Description,
		artist.Status,
		artist.Pricing,
		availabilityOrEmpty(artist.Availability),
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if n == 0 {
		return model.ErrArtistNotFound
	}

	return nil
}

func (r *ArtistRepository) findOne(ctx context.Context, query string, arg string) (*model.Artist, error) {
	artist, err := scanArtist(r.QueryRow(ctx, query, arg))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, model.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return artist, nil
}

func scanArtist(row pgx.Row) (*model.Artist, error) {
	var artist model.Artist
	err := row.Scan(
		&artist.ID,
		&artist.UserID,
		&artist.Name,
		&artist.Genres,
		&artist.Description,
		&artist.Status,
		&artist.Pricing,
		&artist.Availability,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func availabilityOrEmpty(entries []model.AvailabilityEntry) []model.AvailabilityEntry {
	if entries == nil {
		return []model.AvailabilityEntry{}
	}
	return entries
}
