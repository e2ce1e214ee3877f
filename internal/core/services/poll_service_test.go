package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

func TestCreatePoll(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	poll, err := env.polls.Create(ctx, ports.PollInput{
		QuestionText: ptr("  Best language?  "),
		PubDate:      future(),
		Options:      []string{"Go", " Rust "},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, poll.ID)
	assert.Equal(t, "Best language?", poll.QuestionText)
	assert.Equal(t, testNow.Add(24*time.Hour), poll.PubDate)
	require.Len(t, poll.Options, 2)
	assert.Equal(t, "Go", poll.Options[0].OptionText)
	assert.Equal(t, "Rust", poll.Options[1].OptionText)
	for _, opt := range poll.Options {
		assert.Equal(t, poll.ID, opt.PollID)
		assert.Zero(t, opt.VoteCount)
	}

	stored, err := env.polls.GetPoll(ctx, poll.ID.String())
	require.NoError(t, err)
	assert.Equal(t, poll.QuestionText, stored.QuestionText)
	assert.Len(t, stored.Options, 2)
}

func TestCreatePollValidation(t *testing.T) {
	tests := []struct {
		name   string
		input  ports.PollInput
		fields map[string]string
	}{
		{
			name:  "missing fields",
			input: ports.PollInput{},
			fields: map[string]string{
				"question_text": domain.MsgRequired,
				"pub_date":      domain.MsgRequired,
			},
		},
		{
			name:   "blank question",
			input:  ports.PollInput{QuestionText: ptr("   "), PubDate: future()},
			fields: map[string]string{"question_text": domain.MsgBlank},
		},
		{
			name:   "question too long",
			input:  ports.PollInput{QuestionText: ptr(strings.Repeat("a", 201)), PubDate: future()},
			fields: map[string]string{"question_text": domain.MsgTooLong},
		},
		{
			name:   "pub date in the past",
			input:  ports.PollInput{QuestionText: ptr("Q?"), PubDate: ptr("2020-01-01T00:00:00Z")},
			fields: map[string]string{"pub_date": domain.MsgPubDateInPast},
		},
		{
			name:   "pub date wrong format",
			input:  ports.PollInput{QuestionText: ptr("Q?"), PubDate: ptr("tomorrow")},
			fields: map[string]string{"pub_date": domain.MsgPubDateFormat},
		},
		{
			name:   "blank initial option",
			input:  ports.PollInput{QuestionText: ptr("Q?"), PubDate: future(), Options: []string{"ok", " "}},
			fields: map[string]string{"options.1": domain.MsgBlank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			_, err := env.polls.Create(context.Background(), tt.input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, domain.FieldErrors(tt.fields), ve.Fields)
			assert.Empty(t, env.store.polls)
		})
	}
}

func TestCreatePollLengthCountsCharacters(t *testing.T) {
	env := newTestEnv()

	poll, err := env.polls.Create(context.Background(), ports.PollInput{
		QuestionText: ptr(strings.Repeat("é", 200)),
		PubDate:      future(),
	})
	require.NoError(t, err)
	assert.Equal(t, 200, len([]rune(poll.QuestionText)))
}

func TestCreatePollAcceptsNow(t *testing.T) {
	env := newTestEnv()

	_, err := env.polls.Create(context.Background(), ports.PollInput{
		QuestionText: ptr("Q?"),
		PubDate:      ptr(testNow.Format(time.RFC3339)),
	})
	require.NoError(t, err)
}

func TestGetPollNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.polls.GetPoll(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)

	_, err = env.polls.GetPoll(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestListPolls(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.polls.Create(ctx, ports.PollInput{QuestionText: ptr("Favourite colour?"), PubDate: future()})
	require.NoError(t, err)
	second, err := env.polls.Create(ctx, ports.PollInput{QuestionText: ptr("Favourite food?"), PubDate: future()})
	require.NoError(t, err)

	all, err := env.polls.ListPolls(ctx, ports.ListPollsInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	found, err := env.polls.ListPolls(ctx, ports.ListPollsInput{Query: "FOOD"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, second.ID, found[0].ID)
}

func TestUpdatePoll(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	poll, err := env.polls.Create(ctx, ports.PollInput{QuestionText: ptr("Old?"), PubDate: future()})
	require.NoError(t, err)

	// Once the publish date has passed, the poll can still be saved unchanged.
	env.polls.now = func() time.Time { return testNow.Add(48 * time.Hour) }
	pubDate := poll.PubDate.Format(time.RFC3339Nano)

	updated, err := env.polls.Update(ctx, poll.ID.String(), ports.PollInput{
		QuestionText: ptr(" New? "),
		PubDate:      &pubDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "New?", updated.QuestionText)

	_, err = env.polls.Update(ctx, poll.ID.String(), ports.PollInput{
		QuestionText: ptr("New?"),
		PubDate:      ptr(testNow.Add(time.Hour).Format(time.RFC3339)),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.MsgPubDateInPast, ve.Fields["pub_date"])

	_, err = env.polls.Update(ctx, uuid.NewString(), ports.PollInput{QuestionText: ptr("x"), PubDate: future()})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestDeletePoll(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	poll, err := env.polls.Create(ctx, ports.PollInput{
		QuestionText: ptr("Q?"),
		PubDate:      future(),
		Options:      []string{"a", "b"},
	})
	require.NoError(t, err)

	require.NoError(t, env.polls.Delete(ctx, poll.ID.String()))
	assert.Empty(t, env.store.options)

	assert.ErrorIs(t, env.polls.Delete(ctx, poll.ID.String()), domain.ErrPollNotFound)
	assert.ErrorIs(t, env.polls.Delete(ctx, "bad"), domain.ErrPollNotFound)
}

func TestPollResults(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	poll, err := env.polls.Create(ctx, ports.PollInput{
		QuestionText: ptr("Q?"),
		PubDate:      future(),
		Options:      []string{"a", "b", "c"},
	})
	require.NoError(t, err)

	for _, i := range []int{0, 0, 0, 1} {
		_, err := env.votes.Vote(ctx, ports.VoteInput{
			PollID:   poll.ID.String(),
			OptionID: poll.Options[i].ID.String(),
		})
		require.NoError(t, err)
	}

	result, err := env.polls.Results(ctx, poll.ID.String())
	require.NoError(t, err)

	assert.Equal(t, poll.ID, result.PollID)
	assert.Equal(t, int64(4), result.TotalVotes)
	require.Len(t, result.Options, 3)
	assert.Equal(t, int64(3), result.Options[0].VoteCount)
	assert.InDelta(t, 75.0, result.Options[0].Percentage, 0.001)
	assert.InDelta(t, 25.0, result.Options[1].Percentage, 0.001)
	assert.Zero(t, result.Options[2].VoteCount)
	assert.Zero(t, result.Options[2].Percentage)
}

func TestPollResultsWithoutVotes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	poll, err := env.polls.Create(ctx, ports.PollInput{QuestionText: ptr("Q?"), PubDate: future(), Options: []string{"a"}})
	require.NoError(t, err)

	result, err := env.polls.Results(ctx, poll.ID.String())
	require.NoError(t, err)
	assert.Zero(t, result.TotalVotes)
	assert.Zero(t, result.Options[0].Percentage)

	_, err = env.polls.Results(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}
