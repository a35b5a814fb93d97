package model

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

type SlotRole string

const (
	SlotRoleHeadliner SlotRole = "headliner"
	SlotRoleSupport   SlotRole = "support"
	SlotRoleOpener    SlotRole = "opener"
)

func (r SlotRole) Valid() bool {
	switch r {
	case SlotRoleHeadliner, SlotRoleSupport, SlotRoleOpener:
		return true
	}
	return false
}

type SlotStatus string

const (
	SlotStatusUnfilled  SlotStatus = "unfilled"
	SlotStatusPending   SlotStatus = "pending"
	SlotStatusConfirmed SlotStatus = "confirmed"
	SlotStatusCancelled SlotStatus = "cancelled"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusUnfilled, SlotStatusPending, SlotStatusConfirmed, SlotStatusCancelled:
		return true
	}
	return false
}

// ArtistSlot - место в лайнапе мероприятия.
// ID стабилен, позиция в Event.ArtistSlots сдвигается при удалении.
type ArtistSlot struct {
	ID       string     `json:"id" bson:"id"`
	Role     SlotRole   `json:"role" bson:"role"`
	ArtistID string     `json:"artist_id,omitempty" bson:"artist_id,omitempty"`
	Status   SlotStatus `json:"status" bson:"status"`

	// последнее состояние бронирования, перенесённое на слот
	SyncedBookingID     string        `json:"synced_booking_id,omitempty" bson:"synced_booking_id,omitempty"`
	SyncedBookingStatus BookingStatus `json:"synced_booking_status,omitempty" bson:"synced_booking_status,omitempty"`
}

func (s ArtistSlot) HasArtist() bool {
	return s.ArtistID != ""
}

// Reflects сообщает, что слот уже учёл текущее состояние бронирования.
// Статус, выставленный организатором после этого, не считается расхождением.
func (s ArtistSlot) Reflects(b *Booking) bool {
	return s.SyncedBookingID == b.ID && s.SyncedBookingStatus == b.Status
}

// MarkSynced запоминает бронирование, состояние которого отражает слот
func (s *ArtistSlot) MarkSynced(b *Booking) {
	s.SyncedBookingID = b.ID
	s.SyncedBookingStatus = b.Status
}

type Event struct {
	ID           string       `json:"id" bson:"_id"`
	OrganizerID  string       `json:"organizer_id" bson:"organizer_id"`
	Title        string       `json:"title" bson:"title"`
	Venue        string       `json:"venue" bson:"venue"`
	Description  string       `json:"description" bson:"description"`
	Requirements string       `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Date         time.Time    `json:"date" bson:"date"`
	Budget       float64      `json:"budget" bson:"budget"`
	ArtistSlots  []ArtistSlot `json:"artist_slots" bson:"artist_slots"`
	Status       EventStatus  `json:"status" bson:"status"`
	Version      int64        `json:"version" bson:"version"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

func (e *Event) IsOwnedBy(actor Actor) bool {
	return actor.IsAdmin() || e.OrganizerID == actor.ID
}

// SlotIndexByID возвращает текущую позицию слота или -1
func (e *Event) SlotIndexByID(slotID string) int {
	for i, s := range e.ArtistSlots {
		if s.ID == slotID {
			return i
		}
	}
	return -1
}

// SlotIndexByArtist возвращает позицию слота с артистом или -1
func (e *Event) SlotIndexByArtist(artistID string) int {
	for i, s := range e.ArtistSlots {
		if s.ArtistID != "" && s.ArtistID == artistID {
			return i
		}
	}
	return -1
}

// Clone делает копию, не разделяющую слайс слотов с оригиналом
func (e *Event) Clone() *Event {
	c := *e
	c.ArtistSlots = append([]ArtistSlot(nil), e.ArtistSlots...)
	return &c
}

// ResolvedSlot - слот с явно разрешённой ссылкой на артиста
type ResolvedSlot struct {
	Index  int        `json:"index"`
	ID     string     `json:"id"`
	Role   SlotRole   `json:"role"`
	Status SlotStatus `json:"status"`
	Artist ArtistRef  `json:"-"`
}
