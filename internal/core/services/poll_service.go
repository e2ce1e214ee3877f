package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type pollService struct {
	repo       ports.PollRepository
	resultRepo ports.PollResultRepository
	now        func() time.Time
}

func NewPollService(repo ports.PollRepository, resultRepo ports.PollResultRepository) ports.PollService {
	return &pollService{
		repo:       repo,
		resultRepo: resultRepo,
		now:        time.Now,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.PollInput) (*domain.Poll, error) {
	now := s.now()
	fe := domain.FieldErrors{}
	question, pubDate := validatePoll(fe, input, now, nil)

	texts := make([]string, 0, len(input.Options))
	for i := range input.Options {
		texts = append(texts, validateText(fe, fmt.Sprintf("options.%d", i), &input.Options[i]))
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	poll := &domain.Poll{
		ID:           newID(),
		QuestionText: question,
		PubDate:      pubDate,
		Options:      make([]domain.Option, 0, len(texts)),
		CreatedAt:    now.UTC(),
	}
	for _, text := range texts {
		poll.Options = append(poll.Options, domain.Option{
			ID:         newID(),
			PollID:     poll.ID,
			OptionText: text,
			CreatedAt:  poll.CreatedAt,
		})
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrPollNotFound
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	query := strings.TrimSpace(input.Query)
	if query != "" {
		return s.repo.Search(ctx, query)
	}
	return s.repo.GetAll(ctx)
}

func (s *pollService) Update(ctx context.Context, id string, input ports.PollInput) (*domain.Poll, error) {
	poll, err := s.GetPoll(ctx, id)
	if err != nil {
		return nil, err
	}

	fe := domain.FieldErrors{}
	question, pubDate := validatePoll(fe, input, s.now(), &poll.PubDate)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	poll.QuestionText = question
	poll.PubDate = pubDate
	if err := s.repo.Update(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) Delete(ctx context.Context, id string) error {
	pollID, ok := parseID(id)
	if !ok {
		return domain.ErrPollNotFound
	}

	return s.repo.Delete(ctx, pollID)
}

func (s *pollService) Results(ctx context.Context, id string) (*domain.PollResult, error) {
	poll, err := s.GetPoll(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.resultRepo.CountVotes(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	result := &domain.PollResult{
		PollID:  poll.ID,
		Options: make([]domain.OptionResult, 0, len(poll.Options)),
	}
	for _, opt := range poll.Options {
		result.TotalVotes += counts[opt.ID]
	}

	for _, opt := range poll.Options {
		count := counts[opt.ID]
		percentage := 0.0
		if result.TotalVotes > 0 {
			percentage = (float64(count) / float64(result.TotalVotes)) * 100
		}

		result.Options = append(result.Options, domain.OptionResult{
			OptionID:   opt.ID,
			OptionText: opt.OptionText,
			VoteCount:  count,
			Percentage: percentage,
		})
	}

	return result, nil
}
