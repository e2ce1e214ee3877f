package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type voteService struct {
	pollRepo   ports.PollRepository
	optionRepo ports.OptionRepository
	voteRepo   ports.VoteRepository
}

func NewVoteService(pollRepo ports.PollRepository, optionRepo ports.OptionRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
		voteRepo:   voteRepo,
	}
}

// Vote records a vote for an option of the poll addressed by input.PollID.
// A missing poll is domain.ErrPollNotFound; every problem with the payload,
// including an unknown option, is a *domain.ValidationError.
func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.Vote, error) {
	pollID, ok := parseID(input.PollID)
	if !ok {
		return nil, domain.ErrPollNotFound
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	fe := domain.FieldErrors{}
	if input.BodyPollID != nil {
		if bodyPollID, ok := parseID(*input.BodyPollID); !ok || bodyPollID != poll.ID {
			fe.Add("poll", domain.MsgPollPathMismatch)
		}
	}

	rawOptionID := strings.TrimSpace(input.OptionID)
	if rawOptionID == "" {
		fe.Add("option_id", domain.MsgRequired)
		return nil, fe.Err()
	}

	optionID, ok := parseID(rawOptionID)
	if !ok {
		fe.Add("option_id", domain.MsgOptionNotExist)
		return nil, fe.Err()
	}

	option, err := s.optionRepo.GetByID(ctx, optionID)
	switch {
	case errors.Is(err, domain.ErrOptionNotFound):
		fe.Add("option_id", domain.MsgOptionNotExist)
	case err != nil:
		return nil, err
	case option.PollID != poll.ID:
		fe.Add("option_id", domain.MsgOptionMismatch)
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	vote := &domain.Vote{
		ID:        newID(),
		PollID:    poll.ID,
		OptionID:  option.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrOptionNotFound) {
			return nil, domain.NewValidationError("option_id", domain.MsgOptionNotExist)
		}
		return nil, err
	}

	return vote, nil
}

func (s *voteService) ListVotes(ctx context.Context) ([]*domain.Vote, error) {
	return s.voteRepo.GetAll(ctx)
}
