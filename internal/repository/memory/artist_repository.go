package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

type ArtistRepository struct {
	mu      sync.RWMutex
	artists map[string]*model.Artist
}

func NewArtistRepository() *ArtistRepository {
	return &ArtistRepository{artists: make(map[string]*model.Artist)}
}

func (r *ArtistRepository) Create(_ context.Context, artist *model.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.artists[artist.ID]; ok {
		return fmt.Errorf("create artist %s: already exists", artist.ID)
	}
	r.artists[artist.ID] = cloneArtist(artist)
	return nil
}

func (r *ArtistRepository) FindByID(_ context.Context, id string) (*model.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.artists[id]
	if !ok {
		return nil, model.ErrArtistNotFound
	}
	return cloneArtist(a), nil
}

func (r *ArtistRepository) FindByUserID(_ context.Context, userID string) (*model.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.artists {
		if a.UserID == userID {
			return cloneArtist(a), nil
		}
	}
	return nil, model.ErrArtistNotFound
}

func (r *ArtistRepository) List(_ context.Context) ([]*model.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*model.Artist, 0, len(r.artists))
	for _, a := range r.artists {
		res = append(res, cloneArtist(a))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (r *ArtistRepository) Update(_ context.Context, artist *model.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.artists[artist.ID]; !ok {
		return model.ErrArtistNotFound
	}
	r.artists[artist.ID] = cloneArtist(artist)
	return nil
}

func cloneArtist(a *model.Artist) *model.Artist {
	c := *a
	c.Genres = append([]string(nil), a.Genres...)
	c.Availability = append([]model.AvailabilityEntry(nil), a.Availability...)
	return &c
}
