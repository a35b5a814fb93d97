package dto

import (
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/service"
)

type SlotRequest struct {
	Role     string `json:"role" binding:"required"`
	ArtistID string `json:"artist_id"`
	Status   string `json:"status"`
}

func (r SlotRequest) ToInput() service.SlotInput {
	return service.SlotInput{
		Role:     model.SlotRole(r.Role),
		ArtistID: r.ArtistID,
		Status:   model.SlotStatus(r.Status),
	}
}

type AddSlotsRequest struct {
	Slots []SlotRequest `json:"slots" binding:"required,dive"`
}

type UpdateSlotRequest struct {
	ArtistID *string `json:"artist_id"`
	Status   *string `json:"status"`
}

func (r UpdateSlotRequest) ToUpdate() service.SlotUpdate {
	upd := service.SlotUpdate{ArtistID: r.ArtistID}
	if r.Status != nil {
		st := model.SlotStatus(*r.Status)
		upd.Status = &st
	}
	return upd
}

type CreateEventRequest struct {
	Title        string        `json:"title" binding:"required"`
	Venue        string        `json:"venue"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements"`
	Date         time.Time     `json:"date" binding:"required"`
	Budget       float64       `json:"budget" binding:"gte=0"`
	Status       string        `json:"status"`
	ArtistSlots  []SlotRequest `json:"artist_slots" binding:"dive"`
}

func (r CreateEventRequest) ToInput() service.CreateEventInput {
	slots := make([]service.SlotInput, 0, len(r.ArtistSlots))
	for _, s := range r.ArtistSlots {
		slots = append(slots, s.ToInput())
	}

	return service.CreateEventInput{
		Title:        r.Title,
		Venue:        r.Venue,
		Description:  r.Description,
		Requirements: r.Requirements,
		Date:         r.Date,
		Budget:       r.Budget,
		Status:       model.EventStatus(r.Status),
		ArtistSlots:  slots,
	}
}

type UpdateEventRequest struct {
	Title        *string    `json:"title"`
	Venue        *string    `json:"venue"`
	Description  *string    `json:"description"`
	Requirements *string    `json:"requirements"`
	Date         *time.Time `json:"date"`
	Budget       *float64   `json:"budget"`
}

func (r UpdateEventRequest) ToInput() service.UpdateEventInput {
	return service.UpdateEventInput{
		Title:        r.Title,
		Venue:        r.Venue,
		Description:  r.Description,
		Requirements: r.Requirements,
		Date:         r.Date,
		Budget:       r.Budget,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type PaymentRequest struct {
	Amount        float64 `json:"amount" binding:"gte=0"`
	TransactionID string  `json:"transaction_id"`
}

func (r *PaymentRequest) ToModel() *model.Payment {
	if r == nil {
		return nil
	}
	return &model.Payment{Amount: r.Amount, TransactionID: r.TransactionID}
}

type CreateBookingRequest struct {
	ArtistID  string          `json:"artist_id" binding:"required"`
	EventID   string          `json:"event_id" binding:"required"`
	Role      string          `json:"role"`
	StartTime *time.Time      `json:"start_time"`
	EndTime   *time.Time      `json:"end_time"`
	Payment   *PaymentRequest `json:"payment"`
	Notes     string          `json:"notes"`
	Status    string          `json:"status"`
}

func (r CreateBookingRequest) ToInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		ArtistID:  r.ArtistID,
		EventID:   r.EventID,
		Role:      model.SlotRole(r.Role),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Payment:   r.Payment.ToModel(),
		Notes:     r.Notes,
		Status:    model.BookingStatus(r.Status),
	}
}

type UpdateBookingRequest struct {
	StartTime *time.Time      `json:"start_time"`
	EndTime   *time.Time      `json:"end_time"`
	Payment   *PaymentRequest `json:"payment"`
	Notes     *string         `json:"notes"`
}

func (r UpdateBookingRequest) ToInput() service.UpdateBookingInput {
	return service.UpdateBookingInput{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Payment:   r.Payment.ToModel(),
		Notes:     r.Notes,
	}
}

type CreateArtistRequest struct {
	Name         string                `json:"name" binding:"required"`
	Genres       []string              `json:"genres"`
	Description  string                `json:"description"`
	Pricing      model.Pricing         `json:"pricing"`
	Availability []AvailabilityRequest `json:"availability" binding:"dive"`
}

func (r CreateArtistRequest) ToInput() service.CreateArtistInput {
	return service.CreateArtistInput{
		Name:         r.Name,
		Genres:       r.Genres,
		Description:  r.Description,
		Pricing:      r.Pricing,
		Availability: toAvailability(r.Availability),
	}
}

type AvailabilityRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	IsAvailable bool      `json:"is_available"`
}

type UpdateAvailabilityRequest struct {
	Availability []AvailabilityRequest `json:"availability" binding:"required,dive"`
}

func (r UpdateAvailabilityRequest) ToEntries() []model.AvailabilityEntry {
	return toAvailability(r.Availability)
}

type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LinkTelegramRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
}

func toAvailability(reqs []AvailabilityRequest) []model.AvailabilityEntry {
	entries := make([]model.AvailabilityEntry, 0, len(reqs))
	for _, a := range reqs {
		entries = append(entries, model.AvailabilityEntry{Date: a.Date, IsAvailable: a.IsAvailable})
	}
	return entries
}
