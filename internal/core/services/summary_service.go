package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vncsmyrnk/datepoll/internal/core/ports"
)

type summaryService struct {
	pollRepo       ports.PollRepository
	pollResultRepo ports.PollResultRepository
}

func NewSummaryService(pollRepo ports.PollRepository, pollResultRepo ports.PollResultRepository) ports.SummaryService {
	return &summaryService{
		pollRepo:       pollRepo,
		pollResultRepo: pollResultRepo,
	}
}

// SummarizeAllVotes recomputes the stored per-option vote counts of every
// poll, one goroutine per poll.
func (s *summaryService) SummarizeAllVotes(ctx context.Context) error {
	polls, err := s.pollRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch all polls: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(polls))

	for _, poll := range polls {
		wg.Add(1)
		go func(pollID uuid.UUID) {
			defer wg.Done()
			if err := s.pollResultRepo.SummarizeVotes(ctx, pollID); err != nil {
				errChan <- fmt.Errorf("failed to summarize poll %s: %w", pollID, err)
				return
			}
			log.Debug().Str("poll_id", pollID.String()).Msg("poll summarized")
		}(poll.ID)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	log.Info().Int("polls", len(polls)).Int("failed", len(errs)).Msg("vote summarization finished")
	return errors.Join(errs...)
}
