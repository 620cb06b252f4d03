package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/datepoll/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error)
	// ReplaceOptions stores options as the poll's new option list. Options
	// whose id already exists are kept along with their votes.
	ReplaceOptions(ctx context.Context, pollID uuid.UUID, options []domain.PollOption) error
}

type CreatePollInput struct {
	Title       string
	Description string
	Location    string
	TimeZone    string
	UserID      string
	Options     []domain.DateTimeOption
}

type ListPollsInput struct {
	Page  int
	Query string
}

type UpdateOptionsInput struct {
	PollID  string
	Session domain.UserSession
	Options []domain.DateTimeOption
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	UpdateOptions(ctx context.Context, input UpdateOptionsInput) (*domain.Poll, error)
	Results(ctx context.Context, id string) (map[uuid.UUID]domain.PollOptionStats, error)
}
