package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ArtistRepository struct {
	coll *mongo.Collection
}

func NewArtistRepository(db *mongo.Database) *ArtistRepository {
	return &ArtistRepository{coll: db.Collection(artistsCollection)}
}

func (r *ArtistRepository) Create(ctx context.Context, artist *model.Artist) error {
	if _, err := r.coll.InsertOne(ctx, artist); err != nil {
		return fmt.Errorf("create artist: %w", err)
	}
	return nil
}

func (r *ArtistRepository) FindByID(ctx context.Context, id string) (*model.Artist, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ArtistRepository) FindByUserID(ctx context.Context, userID string) (*model.Artist, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ArtistRepository) List(ctx context.Context) ([]*model.Artist, error) {
	artists, err := findAll[model.Artist](ctx, r.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (r *ArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": artist.ID}, artist)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrArtistNotFound
	}
	return nil
}

func (r *ArtistRepository) findOne(ctx context.Context, filter bson.M) (*model.Artist, error) {
	var artist model.Artist
	err := r.coll.FindOne(ctx, filter).Decode(&artist)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return &artist, nil
}
