package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
)

// memStore backs the in-memory repositories used by the service tests.
type memStore struct {
	mu      sync.Mutex
	polls   map[uuid.UUID]domain.Poll
	options map[uuid.UUID]domain.Option
	votes   []domain.Vote

	recountErr map[uuid.UUID]error
	recounted  []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		polls:      make(map[uuid.UUID]domain.Poll),
		options:    make(map[uuid.UUID]domain.Option),
		recountErr: make(map[uuid.UUID]error),
	}
}

func (m *memStore) optionsOf(pollID uuid.UUID) []domain.Option {
	res := make([]domain.Option, 0)
	for _, opt := range m.options {
		if opt.PollID == pollID {
			res = append(res, opt)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID.String() < res[j].ID.String() })
	return res
}

type memPollRepo struct{ *memStore }

func (r memPollRepo) Save(_ context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *poll
	p.Options = nil
	r.polls[p.ID] = p
	for _, opt := range poll.Options {
		r.options[opt.ID] = opt
	}
	return nil
}

func (r memPollRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	p.Options = r.optionsOf(id)
	return &p, nil
}

func (r memPollRepo) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	return r.Search(ctx, "")
}

func (r memPollRepo) Search(_ context.Context, query string) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.Poll, 0)
	for _, p := range r.polls {
		if !strings.Contains(strings.ToLower(p.QuestionText), strings.ToLower(query)) {
			continue
		}
		p.Options = r.optionsOf(p.ID)
		res = append(res, &p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID.String() < res[j].ID.String() })
	return res, nil
}

func (r memPollRepo) Update(_ context.Context, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[poll.ID]
	if !ok {
		return domain.ErrPollNotFound
	}
	p.QuestionText = poll.QuestionText
	p.PubDate = poll.PubDate
	r.polls[p.ID] = p
	return nil
}

func (r memPollRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.polls[id]; !ok {
		return domain.ErrPollNotFound
	}
	delete(r.polls, id)
	for optID, opt := range r.options {
		if opt.PollID == id {
			delete(r.options, optID)
		}
	}
	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.PollID != id {
			kept = append(kept, v)
		}
	}
	r.votes = kept
	return nil
}

type memOptionRepo struct{ *memStore }

func (r memOptionRepo) Save(_ context.Context, option *domain.Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[option.ID] = *option
	return nil
}

func (r memOptionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	opt, ok := r.options[id]
	if !ok {
		return nil, domain.ErrOptionNotFound
	}
	return &opt, nil
}

func (r memOptionRepo) GetAll(_ context.Context) ([]*domain.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.Option, 0)
	for _, opt := range r.options {
		res = append(res, &opt)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID.String() < res[j].ID.String() })
	return res, nil
}

func (r memOptionRepo) ListByPoll(_ context.Context, pollID uuid.UUID) ([]*domain.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.Option, 0)
	for _, opt := range r.optionsOf(pollID) {
		res = append(res, &opt)
	}
	return res, nil
}

func (r memOptionRepo) UpdateText(_ context.Context, id uuid.UUID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	opt, ok := r.options[id]
	if !ok {
		return domain.ErrOptionNotFound
	}
	opt.OptionText = text
	r.options[id] = opt
	return nil
}

func (r memOptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.options[id]; !ok {
		return domain.ErrOptionNotFound
	}
	delete(r.options, id)
	return nil
}

type memVoteRepo struct{ *memStore }

func (r memVoteRepo) SaveVote(_ context.Context, vote *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	opt, ok := r.options[vote.OptionID]
	if !ok || opt.PollID != vote.PollID {
		return domain.ErrOptionNotFound
	}
	opt.VoteCount++
	r.options[opt.ID] = opt
	r.votes = append(r.votes, *vote)
	return nil
}

func (r memVoteRepo) GetAll(_ context.Context) ([]*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*domain.Vote, 0, len(r.votes))
	for _, v := range r.votes {
		res = append(res, &v)
	}
	return res, nil
}

type memResultRepo struct{ *memStore }

func (r memResultRepo) CountVotes(_ context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for _, v := range r.votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}

func (r memResultRepo) RecountVotes(_ context.Context, pollID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.recountErr[pollID]; err != nil {
		return err
	}
	r.recounted = append(r.recounted, pollID)
	for id, opt := range r.options {
		if opt.PollID != pollID {
			continue
		}
		opt.VoteCount = 0
		for _, v := range r.votes {
			if v.OptionID == id {
				opt.VoteCount++
			}
		}
		r.options[id] = opt
	}
	return nil
}
