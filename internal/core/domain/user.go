package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestIDPrefix starts every guest session id.
const GuestIDPrefix = "user-"

// UserSession identifies whoever is calling, signed in or not. Guests get a
// generated id of the form "user-<random>".
type UserSession struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

func NewGuestSession() UserSession {
	return UserSession{
		ID:      GuestIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", ""),
		IsGuest: true,
	}
}

// Alias is the display name of the session: the user's name, or
// "guest-" followed by the first four characters of the guest id.
func (s UserSession) Alias() string {
	if !s.IsGuest {
		return s.Name
	}
	id := strings.TrimPrefix(s.ID, GuestIDPrefix)
	if len(id) > 4 {
		id = id[:4]
	}
	return "guest-" + id
}
