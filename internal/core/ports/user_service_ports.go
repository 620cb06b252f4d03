package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

type Profile struct {
	Session domain.UserSession `json:"session"`
	Alias   string             `json:"alias"`
	User    *domain.User       `json:"user,omitempty"`
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Me(ctx context.Context, session domain.UserSession) (*Profile, error)
}
