package model

import "time"

type ArtistStatus string

const (
	ArtistStatusActive        ArtistStatus = "active"
	ArtistStatusInactive      ArtistStatus = "inactive"
	ArtistStatusPendingReview ArtistStatus = "pending_review"
)

func (s ArtistStatus) Valid() bool {
	switch s {
	case ArtistStatusActive, ArtistStatusInactive, ArtistStatusPendingReview:
		return true
	}
	return false
}

type Pricing struct {
	HourlyRate   float64 `json:"hourly_rate" bson:"hourly_rate"`
	MinimumHours float64 `json:"minimum_hours" bson:"minimum_hours"`
	TravelFees   float64 `json:"travel_fees,omitempty" bson:"travel_fees,omitempty"`
}

// AvailabilityEntry - доступность артиста на календарный день
type AvailabilityEntry struct {
	Date        time.Time `json:"date" bson:"date"`
	IsAvailable bool      `json:"is_available" bson:"is_available"`
}

type Artist struct {
	ID           string              `json:"id" bson:"_id"`
	UserID       string              `json:"user_id" bson:"user_id"`
	Name         string              `json:"name" bson:"name"`
	Genres       []string            `json:"genres,omitempty" bson:"genres,omitempty"`
	Description  string              `json:"description,omitempty" bson:"description,omitempty"`
	Status       ArtistStatus        `json:"status" bson:"status"`
	Pricing      Pricing             `json:"pricing" bson:"pricing"`
	Availability []AvailabilityEntry `json:"availability,omitempty" bson:"availability,omitempty"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

// Cost возвращает стоимость артиста для бюджета мероприятия
func (a *Artist) Cost() float64 {
	return a.Pricing.HourlyRate*a.Pricing.MinimumHours + a.Pricing.TravelFees
}

func (a *Artist) IsActive() bool {
	return a.Status == ArtistStatusActive
}

// SetAvailability применяет обновления по дням: запись за тот же день заменяет предыдущую
func (a *Artist) SetAvailability(updates []AvailabilityEntry) {
	for _, u := range updates {
		u.Date = DateOnly(u.Date)
		replaced := false
		for i := range a.Availability {
			if DateOnly(a.Availability[i].Date).Equal(u.Date) {
				a.Availability[i] = u
				replaced = true
				break
			}
		}
		if !replaced {
			a.Availability = append(a.Availability, u)
		}
	}
}

// DateOnly обрезает время до начала дня в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ArtistRef ссылается на артиста либо по ID, либо уже загруженной записью.
// Нулевое значение означает отсутствие артиста.
type ArtistRef struct {
	id     string
	artist *Artist
}

func Unresolved(id string) ArtistRef {
	return ArtistRef{id: id}
}

func Resolved(a *Artist) ArtistRef {
	return ArtistRef{id: a.ID, artist: a}
}

func (r ArtistRef) ID() string {
	return r.id
}

func (r ArtistRef) IsEmpty() bool {
	return r.id == ""
}

// Artist возвращает загруженную запись, если ссылка разрешена
func (r ArtistRef) Artist() (*Artist, bool) {
	return r.artist, r.artist != nil
}
