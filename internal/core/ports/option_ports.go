package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type OptionRepository interface {
	Save(ctx context.Context, option *domain.Option) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Option, error)
	GetAll(ctx context.Context) ([]*domain.Option, error)
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Option, error)
	UpdateText(ctx context.Context, id uuid.UUID, text string) error
	// Delete removes the option together with its votes.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OptionInput carries a raw option payload. Nil fields were absent from the request.
type OptionInput struct {
	PollID     *string
	OptionText *string
}

type ListOptionsInput struct {
	// PollID scopes the listing to one poll when non-empty.
	PollID string
}

type OptionService interface {
	Create(ctx context.Context, input OptionInput) (*domain.Option, error)
	GetOption(ctx context.Context, id string) (*domain.Option, error)
	ListOptions(ctx context.Context, input ListOptionsInput) ([]*domain.Option, error)
	Update(ctx context.Context, id string, input OptionInput) (*domain.Option, error)
	Delete(ctx context.Context, id string) error
}
