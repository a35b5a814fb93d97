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

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	booking.Version = 1
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookingRepository) ListByArtist(ctx context.Context, artistID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"artist_id": artistID})
}

func (r *BookingRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"organizer_id": organizerID})
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"event_id": eventID})
}

func (r *BookingRepository) ListActiveByArtist(ctx context.Context, artistID string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{
		"artist_id": artistID,
		"status":    bson.M{"$in": model.ActiveBookingStatuses},
	})
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	next := booking.Clone()
	next.Version = booking.Version + 1

	err := replaceVersioned(ctx, r.coll, booking.ID, booking.Version, next, model.ErrBookingNotFound)
	if err != nil {
		if errors.Is(err, errStale) {
			return fmt.Errorf("booking %s: %w", booking.ID, model.ErrStaleWrite)
		}
		return fmt.Errorf("update booking: %w", err)
	}

	booking.Version = next.Version
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	bookings, err := findAll[model.Booking](ctx, r.coll, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
