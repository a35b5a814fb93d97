package dto

import (
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type BudgetErrorResponse struct {
	Error     string             `json:"error"`
	Allocated float64            `json:"allocated"`
	Budget    float64            `json:"budget"`
	Breakdown []model.ArtistCost `json:"breakdown"`
}

type ConflictErrorResponse struct {
	Error      string   `json:"error"`
	BookingIDs []string `json:"conflicting_booking_ids"`
}

type ArtistSummary struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Status model.ArtistStatus `json:"status"`
	Cost   float64            `json:"cost"`
}

type SlotResponse struct {
	Index    int              `json:"index"`
	ID       string           `json:"id"`
	Role     model.SlotRole   `json:"role"`
	Status   model.SlotStatus `json:"status"`
	ArtistID string           `json:"artist_id,omitempty"`
	Artist   *ArtistSummary   `json:"artist,omitempty"`
}

type EventResponse struct {
	ID           string            `json:"id"`
	OrganizerID  string            `json:"organizer_id"`
	Title        string            `json:"title"`
	Venue        string            `json:"venue"`
	Description  string            `json:"description"`
	Requirements string            `json:"requirements,omitempty"`
	Date         string            `json:"date"`
	Budget       float64           `json:"budget"`
	Status       model.EventStatus `json:"status"`
	ArtistSlots  []SlotResponse    `json:"artist_slots"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	ArtistID      string               `json:"artist_id"`
	EventID       string               `json:"event_id"`
	OrganizerID   string               `json:"organizer_id"`
	Role          model.SlotRole       `json:"role,omitempty"`
	Status        model.BookingStatus  `json:"status"`
	StatusHistory []model.StatusChange `json:"status_history"`
	StartTime     *time.Time           `json:"start_time,omitempty"`
	EndTime       *time.Time           `json:"end_time,omitempty"`
	Payment       *model.Payment       `json:"payment,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
}

// ToEventResponse собирает ответ по мероприятию. slots - уже разрешённые слоты,
// nil означает, что артисты не загружались.
func ToEventResponse(e *model.Event, slots []model.ResolvedSlot) EventResponse {
	resp := EventResponse{
		ID:           e.ID,
		OrganizerID:  e.OrganizerID,
		Title:        e.Title,
		Venue:        e.Venue,
		Description:  e.Description,
		Requirements: e.Requirements,
		Date:         e.Date.Format(time.RFC3339),
		Budget:       e.Budget,
		Status:       e.Status,
		ArtistSlots:  make([]SlotResponse, 0, len(e.ArtistSlots)),
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}

	if slots != nil {
		for _, s := range slots {
			resp.ArtistSlots = append(resp.ArtistSlots, toResolvedSlotResponse(s))
		}
		return resp
	}

	for i, s := range e.ArtistSlots {
		resp.ArtistSlots = append(resp.ArtistSlots, SlotResponse{
			Index:    i,
			ID:       s.ID,
			Role:     s.Role,
			Status:   s.Status,
			ArtistID: s.ArtistID,
		})
	}
	return resp
}

func toResolvedSlotResponse(s model.ResolvedSlot) SlotResponse {
	resp := SlotResponse{
		Index:    s.Index,
		ID:       s.ID,
		Role:     s.Role,
		Status:   s.Status,
		ArtistID: s.Artist.ID(),
	}
	if a, ok := s.Artist.Artist(); ok {
		resp.Artist = &ArtistSummary{
			ID:     a.ID,
			Name:   a.Name,
			Status: a.Status,
			Cost:   a.Cost(),
		}
	}
	return resp
}

func ToBookingResponse(b *model.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ArtistID:      b.ArtistID,
		EventID:       b.EventID,
		OrganizerID:   b.OrganizerID,
		Role:          b.Role,
		Status:        b.Status,
		StatusHistory: b.StatusHistory,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Payment:       b.Payment,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

func ToBookingResponses(bookings []*model.Booking) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, ToBookingResponse(b))
	}
	return resp
}
