package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

// validateText trims raw and records a field error when it is missing, blank
// or longer than domain.MaxTextLength characters. The trimmed text is returned.
func validateText(fe domain.FieldErrors, field string, raw *string) string {
	if raw == nil {
		fe.Add(field, domain.MsgRequired)
		return ""
	}

	text := strings.TrimSpace(*raw)
	switch {
	case text == "":
		fe.Add(field, domain.MsgBlank)
	case utf8.RuneCountInString(text) > domain.MaxTextLength:
		fe.Add(field, domain.MsgTooLong)
	}
	return text
}

// validatePoll normalises a poll payload. previous holds the stored publish
// date when updating; the past-date rule only applies to a new or changed date.
func validatePoll(fe domain.FieldErrors, input ports.PollInput, now time.Time, previous *time.Time) (string, time.Time) {
	question := validateText(fe, "question_text", input.QuestionText)

	var pubDate time.Time
	if input.PubDate == nil {
		fe.Add("pub_date", domain.MsgRequired)
	} else if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*input.PubDate)); err != nil {
		fe.Add("pub_date", domain.MsgPubDateFormat)
	} else {
		pubDate = t.UTC().Truncate(time.Microsecond)
		changed := previous == nil || !previous.Equal(pubDate)
		if changed && pubDate.Before(now) {
			fe.Add("pub_date", domain.MsgPubDateInPast)
		}
	}

	return question, pubDate
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// newID returns a time-ordered id so that id order follows insertion order.
func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
