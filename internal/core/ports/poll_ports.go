package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	Search(ctx context.Context, query string) ([]*domain.Poll, error)
	Update(ctx context.Context, poll *domain.Poll) error
	// Delete removes the poll together with its options and votes.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PollInput carries a raw poll payload. Nil fields were absent from the request.
type PollInput struct {
	QuestionText *string
	PubDate      *string
	// Options are initial option texts, only honoured on create.
	Options []string
}

type ListPollsInput struct {
	Query string
}

type PollService interface {
	Create(ctx context.Context, input PollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	Update(ctx context.Context, id string, input PollInput) (*domain.Poll, error)
	Delete(ctx context.Context, id string) error
	Results(ctx context.Context, id string) (*domain.PollResult, error)
}
