package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

type ParticipantRepository interface {
	Add(ctx context.Context, participant *domain.Participant) error
	Update(ctx context.Context, participant *domain.Participant) error
	Delete(ctx context.Context, pollID, id uuid.UUID) error
	GetByID(ctx context.Context, pollID, id uuid.UUID) (*domain.Participant, error)
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Participant, error)
}

// ParticipantInput carries a participant form. Votes are positional, one
// per poll option; unset entries are stored as no.
type ParticipantInput struct {
	PollID        string
	ParticipantID string
	Session       domain.UserSession
	Name          string
	Votes         []domain.VoteType
}

type ParticipantService interface {
	Add(ctx context.Context, input ParticipantInput) (*domain.Participant, error)
	Update(ctx context.Context, input ParticipantInput) (*domain.Participant, error)
	Delete(ctx context.Context, input ParticipantInput) error
}
