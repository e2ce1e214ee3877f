package ports

import (
	"context"

	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type VoteRepository interface {
	// SaveVote stores the vote and bumps the option counter atomically.
	// It returns domain.ErrOptionNotFound when the option no longer belongs to the poll.
	SaveVote(ctx context.Context, vote *domain.Vote) error
	GetAll(ctx context.Context) ([]*domain.Vote, error)
}

type VoteInput struct {
	PollID   string
	OptionID string
	// BodyPollID is the optional poll reference sent in the payload.
	BodyPollID *string
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (*domain.Vote, error)
	ListVotes(ctx context.Context) ([]*domain.Vote, error)
}
