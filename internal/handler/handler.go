package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/artist_booking/internal/handler/dto"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventSvc interface {
	CreateEvent(ctx context.Context, input service.CreateEventInput, actor model.Actor) (*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error)
	ResolveSlots(ctx context.Context, event *model.Event) ([]model.ResolvedSlot, error)
	UpdateEvent(ctx context.Context, id string, input service.UpdateEventInput, actor model.Actor) (*model.Event, error)
	UpdateEventStatus(ctx context.Context, id string, status model.EventStatus, actor model.Actor) (*model.Event, error)
	RemoveEvent(ctx context.Context, id string, actor model.Actor) (*model.Event, error)

	AddSlot(ctx context.Context, eventID string, input service.SlotInput, actor model.Actor) (*model.Event, error)
	AddSlots(ctx context.Context, eventID string, inputs []service.SlotInput, actor model.Actor) (*model.Event, error)
	UpdateSlot(ctx context.Context, eventID string, index int, update service.SlotUpdate, actor model.Actor) (*model.Event, error)
	RemoveSlot(ctx context.Context, eventID string, index int, actor model.Actor) (*model.Event, error)
}

type BookingSvc interface {
	Create(ctx context.Context, input service.CreateBookingInput, actor model.Actor) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByArtist(ctx context.Context, artistID string) ([]*model.Booking, error)
	ListMine(ctx context.Context, actor model.Actor) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, input service.UpdateStatusInput, actor model.Actor) (*model.Booking, error)
	Update(ctx context.Context, id string, input service.UpdateBookingInput, actor model.Actor) (*model.Booking, error)
	Remove(ctx context.Context, id string, actor model.Actor) (*model.Booking, error)
}

type ArtistSvc interface {
	CreateProfile(ctx context.Context, input service.CreateArtistInput, actor model.Actor) (*model.Artist, error)
	List(ctx context.Context) ([]*model.Artist, error)
	GetByID(ctx context.Context, id string) (*model.Artist, error)
	GetByUserID(ctx context.Context, userID string) (*model.Artist, error)
	UpdateStatus(ctx context.Context, id string, status model.ArtistStatus, actor model.Actor) (*model.Artist, error)
	UpdateAvailability(ctx context.Context, id string, updates []model.AvailabilityEntry, actor model.Actor) (*model.Artist, error)
}

type UserSvc interface {
	RegisterUser(ctx context.Context, actor model.Actor, name, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	LinkTelegram(ctx context.Context, actor model.Actor, chatID int64) (*model.User, error)
}

type Handler struct {
	events   EventSvc
	bookings BookingSvc
	artists  ArtistSvc
	users    UserSvc
	logger   *zap.Logger
}

func NewHandler(events EventSvc, bookings BookingSvc, artists ArtistSvc, users UserSvc, logger *zap.Logger) *Handler {
	return &Handler{
		events:   events,
		bookings: bookings,
		artists:  artists,
		users:    users,
		logger:   logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondEvent отвечает мероприятием с разрешёнными артистами слотов
func (h *Handler) respondEvent(c *gin.Context, status int, event *model.Event) {
	slots, err := h.events.ResolveSlots(c.Request.Context(), event)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(status, dto.ToEventResponse(event, slots))
}

func slotIndex(c *gin.Context) (int, error) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("%w: slot index must be a non-negative integer", model.ErrBadRequest)
	}
	return idx, nil
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}
