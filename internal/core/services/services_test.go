package services

import (
	"time"

	"github.com/vncsmyrnk/polls/internal/core/ports"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store   *memStore
	polls   *pollService
	options ports.OptionService
	votes   ports.VoteService
	summary ports.SummaryService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	pollRepo := memPollRepo{store}

	polls := NewPollService(pollRepo, memResultRepo{store}).(*pollService)
	polls.now = func() time.Time { return testNow }

	return &testEnv{
		store:   store,
		polls:   polls,
		options: NewOptionService(pollRepo, memOptionRepo{store}),
		votes:   NewVoteService(pollRepo, memOptionRepo{store}, memVoteRepo{store}),
		summary: NewSummaryService(pollRepo, memResultRepo{store}),
	}
}

func ptr(s string) *string {
	return &s
}

func future() *string {
	return ptr(testNow.Add(24 * time.Hour).Format(time.RFC3339))
}
