package domain

import "github.com/google/uuid"

// PollResult is the tally of a poll computed from its votes.
type PollResult struct {
	PollID     uuid.UUID      `json:"poll"`
	TotalVotes int64          `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

type OptionResult struct {
	OptionID   uuid.UUID `json:"option_id"`
	OptionText string    `json:"option_text"`
	VoteCount  int64     `json:"vote_count"`
	Percentage float64   `json:"percentage"`
}
