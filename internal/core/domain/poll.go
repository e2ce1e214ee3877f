package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTextLength is the limit, in characters, for question and option texts.
const MaxTextLength = 200

type Poll struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Options      []Option  `json:"options"`
	CreatedAt    time.Time `json:"-"`
}

type Option struct {
	ID         uuid.UUID `json:"id"`
	PollID     uuid.UUID `json:"poll"`
	OptionText string    `json:"option_text"`
	VoteCount  int64     `json:"vote_count"`
	CreatedAt  time.Time `json:"-"`
}
