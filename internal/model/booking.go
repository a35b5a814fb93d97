package model

import "time"

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusInReview  BookingStatus = "in_review"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses - статусы, занимающие время артиста
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusRequested,
	BookingStatusInReview,
	BookingStatusAccepted,
	BookingStatusPaid,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusRequested, BookingStatusInReview, BookingStatusAccepted,
		BookingStatusRejected, BookingStatusPaid, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) IsActive() bool {
	for _, a := range ActiveBookingStatuses {
		if s == a {
			return true
		}
	}
	return false
}

type StatusChange struct {
	Status    BookingStatus `json:"status" bson:"status"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	ChangedBy string        `json:"changed_by" bson:"changed_by"`
}

type Payment struct {
	Amount        float64    `json:"amount" bson:"amount"`
	IsPaid        bool       `json:"is_paid" bson:"is_paid"`
	PaidDate      *time.Time `json:"paid_date,omitempty" bson:"paid_date,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
}

type Booking struct {
	ID            string         `json:"id" bson:"_id"`
	ArtistID      string         `json:"artist_id" bson:"artist_id"`
	EventID       string         `json:"event_id" bson:"event_id"`
	OrganizerID   string         `json:"organizer_id" bson:"organizer_id"`
	Role          SlotRole       `json:"role,omitempty" bson:"role,omitempty"`
	Status        BookingStatus  `json:"status" bson:"status"`
	StatusHistory []StatusChange `json:"status_history" bson:"status_history"` // только добавление
	StartTime     *time.Time     `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime       *time.Time     `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Payment       *Payment       `json:"payment,omitempty" bson:"payment,omitempty"`
	Notes         string         `json:"notes,omitempty" bson:"notes,omitempty"`
	Version       int64          `json:"version" bson:"version"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}

// RecordStatus переводит бронирование в новый статус и дописывает историю
func (b *Booking) RecordStatus(status BookingStatus, changedBy string, at time.Time) {
	b.Status = status
	b.StatusHistory = append(b.StatusHistory, StatusChange{
		Status:    status,
		Timestamp: at,
		ChangedBy: changedBy,
	})
}

// Overlaps проверяет пересечение полуоткрытых интервалов [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	if b.StartTime == nil || b.EndTime == nil {
		return false
	}
	return start.Before(*b.EndTime) && end.After(*b.StartTime)
}

// Clone делает глубокую копию для хранилищ в памяти
func (b *Booking) Clone() *Booking {
	c := *b
	c.StatusHistory = append([]StatusChange(nil), b.StatusHistory...)
	if b.StartTime != nil {
		t := *b.StartTime
		c.StartTime = &t
	}
	if b.EndTime != nil {
		t := *b.EndTime
		c.EndTime = &t
	}
	if b.Payment != nil {
		p := *b.Payment
		c.Payment = &p
	}
	return &c
}
