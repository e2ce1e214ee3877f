package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type optionService struct {
	pollRepo   ports.PollRepository
	optionRepo ports.OptionRepository
}

func NewOptionService(pollRepo ports.PollRepository, optionRepo ports.OptionRepository) ports.OptionService {
	return &optionService{
		pollRepo:   pollRepo,
		optionRepo: optionRepo,
	}
}

func (s *optionService) Create(ctx context.Context, input ports.OptionInput) (*domain.Option, error) {
	fe := domain.FieldErrors{}
	text := validateText(fe, "option_text", input.OptionText)

	pollID, err := s.resolvePoll(ctx, fe, input.PollID)
	if err != nil {
		return nil, err
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	option := &domain.Option{
		ID:         newID(),
		PollID:     pollID,
		OptionText: text,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.optionRepo.Save(ctx, option); err != nil {
		return nil, err
	}

	return option, nil
}

// resolvePoll checks the poll referenced by an option payload. Problems with
// the reference are recorded in fe; only storage failures are returned.
func (s *optionService) resolvePoll(ctx context.Context, fe domain.FieldErrors, raw *string) (uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		fe.Add("poll", domain.MsgRequired)
		return uuid.Nil, nil
	}

	pollID, ok := parseID(*raw)
	if !ok {
		fe.Add("poll", domain.MsgPollNotExist)
		return uuid.Nil, nil
	}

	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			fe.Add("poll", domain.MsgPollNotExist)
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}

	return pollID, nil
}

func (s *optionService) GetOption(ctx context.Context, id string) (*domain.Option, error) {
	optionID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrOptionNotFound
	}

	return s.optionRepo.GetByID(ctx, optionID)
}

func (s *optionService) ListOptions(ctx context.Context, input ports.ListOptionsInput) ([]*domain.Option, error) {
	if input.PollID == "" {
		return s.optionRepo.GetAll(ctx)
	}

	pollID, ok := parseID(input.PollID)
	if !ok {
		return []*domain.Option{}, nil
	}
	return s.optionRepo.ListByPoll(ctx, pollID)
}

func (s *optionService) Update(ctx context.Context, id string, input ports.OptionInput) (*domain.Option, error) {
	option, err := s.GetOption(ctx, id)
	if err != nil {
		return nil, err
	}

	fe := domain.FieldErrors{}
	text := validateText(fe, "option_text", input.OptionText)

	// The parent poll is fixed at creation; it may be echoed back but not changed.
	if input.PollID != nil {
		pollID, ok := parseID(*input.PollID)
		switch {
		case !ok:
			fe.Add("poll", domain.MsgPollNotExist)
		case pollID != option.PollID:
			fe.Add("poll", domain.MsgPollImmutable)
		}
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	if err := s.optionRepo.UpdateText(ctx, option.ID, text); err != nil {
		return nil, err
	}
	option.OptionText = text

	return option, nil
}

func (s *optionService) Delete(ctx context.Context, id string) error {
	optionID, ok := parseID(id)
	if !ok {
		return domain.ErrOptionNotFound
	}

	return s.optionRepo.Delete(ctx, optionID)
}
