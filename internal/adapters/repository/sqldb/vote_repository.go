package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveVote increments the option counter and inserts the vote in one
// transaction. The increment is a single UPDATE, so concurrent votes on the
// same option cannot lose updates, and it takes the option row lock before the
// vote row is written.
func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE options SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, vote.OptionID, vote.PollID)
	if err != nil {
		return fmt.Errorf("failed to increment vote count: %w", err)
	}
	if err := expectAffected(res, domain.ErrOptionNotFound); err != nil {
		return err
	}

	query := `
		INSERT INTO votes (id, poll_id, option_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, query, vote.ID, vote.PollID, vote.OptionID, vote.CreatedAt); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *voteRepository) GetAll(ctx context.Context) ([]*domain.Vote, error) {
	query := `SELECT id, poll_id, option_id, created_at FROM votes ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := make([]*domain.Vote, 0)
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.PollID, &vote.OptionID, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		vote.CreatedAt = vote.CreatedAt.UTC()
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}
