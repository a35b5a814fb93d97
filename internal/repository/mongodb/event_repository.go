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

// EventRepository хранит мероприятие одним документом вместе со слотами
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	event.Version = 1
	if event.ArtistSlots == nil {
		event.ArtistSlots = []model.ArtistSlot{}
	}

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	return r.find(ctx, bson.M{})
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error) {
	return r.find(ctx, bson.M{"organizer_id": organizerID})
}

// Update заменяет документ целиком при совпадении версии
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	next := event.Clone()
	next.Version = event.Version + 1

	err := replaceVersioned(ctx, r.coll, event.ID, event.Version, next, model.ErrEventNotFound)
	if err != nil {
		if errors.Is(err, errStale) {
			return fmt.Errorf("event %s: %w", event.ID, model.ErrStaleWrite)
		}
		return fmt.Errorf("update event: %w", err)
	}

	event.Version = next.Version
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) find(ctx context.Context, filter bson.M) ([]*model.Event, error) {
	events, err := findAll[model.Event](ctx, r.coll, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
