package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Me describes the calling session. Guests have no user record.
func (s *UserService) Me(ctx context.Context, session domain.UserSession) (*ports.Profile, error) {
	profile := &ports.Profile{Session: session}
	if !session.IsGuest {
		id, err := uuid.Parse(session.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in session: %w", err)
		}
		if profile.User, err = s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		if profile.User != nil {
			profile.Session.Name = profile.User.Name
		}
	}
	profile.Alias = profile.Session.Alias()
	return profile, nil
}
