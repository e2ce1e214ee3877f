package ports

import (
	"context"

	"github.com/google/uuid"
)

type PollResultRepository interface {
	// CountVotes tallies votes per option straight from the votes table.
	CountVotes(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
	// RecountVotes rewrites the denormalised vote_count of every option of the poll.
	RecountVotes(ctx context.Context, pollID uuid.UUID) error
}

type SummaryService interface {
	RecountAllVotes(ctx context.Context) error
}
