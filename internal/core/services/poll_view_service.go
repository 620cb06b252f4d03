package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/datepoll/internal/core/pollview"
	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type pollViewService struct {
	pollRepo        ports.PollRepository
	participantRepo ports.ParticipantRepository
}

func NewPollViewService(pollRepo ports.PollRepository, participantRepo ports.ParticipantRepository) ports.PollViewService {
	return &pollViewService{
		pollRepo:        pollRepo,
		participantRepo: participantRepo,
	}
}

func (s *pollViewService) View(ctx context.Context, input ports.PollViewInput) (*pollview.PollData, error) {
	poll, err := getPoll(ctx, s.pollRepo, input.PollID)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByPoll(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	viewer := pollview.Viewer{
		UserID: input.Session.ID,
		Admin:  poll.UserID != "" && poll.UserID == input.Session.ID,
	}
	opts := pollview.Options{
		TargetTimeZone: input.TargetTimeZone,
		WideScreen:     input.WideScreen,
		PreferredView:  input.PreferredView,
	}
	// An unparseable id is treated like an unknown one: no selection.
	if id, err := uuid.Parse(input.ActiveParticipantID); err == nil {
		opts.ActiveParticipantID = &id
	}

	return pollview.Build(poll, participants, viewer, opts)
}
