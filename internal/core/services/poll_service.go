package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vncsmyrnk/datepoll/internal/core/domain"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

const pageSize = 20

type pollService struct {
	repo       ports.PollRepository
	resultRepo ports.PollResultRepository
}

func NewPollService(repo ports.PollRepository, resultRepo ports.PollResultRepository) ports.PollService {
	return &pollService{
		repo:       repo,
		resultRepo: resultRepo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}

	now := time.Now()
	poll := &domain.Poll{
		ID:          uuid.New(),
		Title:       title,
		Description: input.Description,
		Location:    input.Location,
		UserID:      input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// All-day polls have no time of day to convert, so they never carry a zone.
	if domain.IsTimed(input.Options) {
		poll.TimeZone = input.TimeZone
		if _, err := poll.Zone(); err != nil {
			return nil, err
		}
	}

	options, err := buildOptions(poll.ID, input.Options, nil, now)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	log.Info().Str("poll_id", poll.ID.String()).Int("options", len(poll.Options)).Msg("poll created")
	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	return getPoll(ctx, s.repo, id)
}

func getPoll(ctx context.Context, repo ports.PollRepository, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	if q := strings.TrimSpace(input.Query); q != "" {
		return s.repo.Search(ctx, pageSize, offset, q)
	}
	return s.repo.List(ctx, pageSize, offset)
}

// UpdateOptions replaces the options of a poll. Options equal to an
// existing one keep its id, and with it the votes cast on it.
func (s *pollService) UpdateOptions(ctx context.Context, input ports.UpdateOptionsInput) (*domain.Poll, error) {
	poll, err := s.GetPoll(ctx, input.PollID)
	if err != nil {
		return nil, err
	}
	if poll.UserID == "" || poll.UserID != input.Session.ID {
		return nil, domain.ErrForbidden
	}
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}

	now := time.Now()
	options, err := buildOptions(poll.ID, input.Options, poll.Options, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceOptions(ctx, poll.ID, options); err != nil {
		return nil, err
	}

	poll.Options = options
	poll.UpdatedAt = now
	return poll, nil
}

func (s *pollService) Results(ctx context.Context, id string) (map[uuid.UUID]domain.PollOptionStats, error) {
	poll, err := s.GetPoll(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.resultRepo.GetPollOptionStats(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll results: %w", err)
	}
	return stats, nil
}

func validateOptions(options []domain.DateTimeOption) error {
	if len(options) == 0 {
		return domain.ErrNoOptions
	}
	return domain.ValidateOptions(options)
}

func buildOptions(pollID uuid.UUID, options []domain.DateTimeOption, existing []domain.PollOption, now time.Time) ([]domain.PollOption, error) {
	reuse := make(map[domain.OptionValue]domain.PollOption, len(existing))
	for _, opt := range existing {
		reuse[opt.Value] = opt
	}

	out := make([]domain.PollOption, 0, len(options))
	for _, o := range options {
		value, err := domain.OptionValueFrom(o)
		if err != nil {
			return nil, err
		}
		if opt, ok := reuse[value]; ok {
			delete(reuse, value)
			out = append(out, opt)
			continue
		}
		out = append(out, domain.PollOption{
			ID:        uuid.New(),
			PollID:    pollID,
			Value:     value,
			CreatedAt: now,
		})
	}
	return out, nil
}
