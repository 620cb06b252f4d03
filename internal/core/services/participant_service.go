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

type participantService struct {
	pollRepo ports.PollRepository
	repo     ports.ParticipantRepository
}

func NewParticipantService(pollRepo ports.PollRepository, repo ports.ParticipantRepository) ports.ParticipantService {
	return &participantService{
		pollRepo: pollRepo,
		repo:     repo,
	}
}

func (s *participantService) Add(ctx context.Context, input ports.ParticipantInput) (*domain.Participant, error) {
	poll, err := getPoll(ctx, s.pollRepo, input.PollID)
	if err != nil {
		return nil, err
	}

	p := &domain.Participant{
		ID:        uuid.New(),
		PollID:    poll.ID,
		UserID:    input.Session.ID,
		CreatedAt: time.Now(),
	}
	if err := fillForm(p, poll, input); err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("poll_id", poll.ID.String()).Str("participant_id", p.ID.String()).Msg("participant added")
	return p, nil
}

func (s *participantService) Update(ctx context.Context, input ports.ParticipantInput) (*domain.Participant, error) {
	poll, p, err := s.editable(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := fillForm(p, poll, input); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *participantService) Delete(ctx context.Context, input ports.ParticipantInput) error {
	poll, p, err := s.editable(ctx, input)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, poll.ID, p.ID); err != nil {
		return err
	}

	log.Info().Str("poll_id", poll.ID.String()).Str("participant_id", p.ID.String()).Msg("participant deleted")
	return nil
}

// editable loads a participant the session may change: its own entry, or
// any entry when the session owns the poll.
func (s *participantService) editable(ctx context.Context, input ports.ParticipantInput) (*domain.Poll, *domain.Participant, error) {
	poll, err := getPoll(ctx, s.pollRepo, input.PollID)
	if err != nil {
		return nil, nil, err
	}
	participantID, err := uuid.Parse(input.ParticipantID)
	if err != nil {
		return nil, nil, domain.ErrInvalidParticipantID
	}

	p, err := s.repo.GetByID(ctx, poll.ID, participantID)
	if err != nil {
		return nil, nil, err
	}

	admin := poll.UserID != "" && poll.UserID == input.Session.ID
	you := p.UserID != "" && p.UserID == input.Session.ID
	if !admin && !you {
		return nil, nil, domain.ErrForbidden
	}
	return poll, p, nil
}

// fillForm copies name and votes onto p. Votes line up with poll options
// and unset entries become no.
func fillForm(p *domain.Participant, poll *domain.Poll, input ports.ParticipantInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(input.Votes) != len(poll.Options) {
		return fmt.Errorf("%w: got %d, want %d", domain.ErrVoteCountMismatch, len(input.Votes), len(poll.Options))
	}

	p.Name = name
	p.Votes = make([]domain.Vote, len(poll.Options))
	for i, opt := range poll.Options {
		vote := input.Votes[i].OrNo()
		if !vote.Valid() {
			return fmt.Errorf("%w: %q", domain.ErrInvalidVoteType, vote)
		}
		p.Votes[i] = domain.Vote{
			ID:            uuid.New(),
			PollID:        poll.ID,
			ParticipantID: p.ID,
			OptionID:      opt.ID,
			Type:          vote,
			CreatedAt:     time.Now(),
		}
	}
	return nil
}
