package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/ports"
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

// RecountAllVotes rebuilds the option vote counters of every poll from the
// votes table. Polls are processed concurrently; all failures are reported.
func (s *summaryService) RecountAllVotes(ctx context.Context) error {
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
			if err := s.pollResultRepo.RecountVotes(ctx, pollID); err != nil {
				errChan <- fmt.Errorf("failed to recount poll %s: %w", pollID, err)
			}
		}(poll.ID)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
