package model

import "time"

type Role string

const (
	RoleArtist    Role = "artist"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleArtist, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	Role           Role      `json:"role" bson:"role"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty" bson:"telegram_chat_id,omitempty"` // nil - уведомления не отправляются
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Actor - пользователь, от имени которого выполняется операция
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
