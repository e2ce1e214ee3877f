package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, question_text, pub_date, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, queryPoll, poll.ID, poll.QuestionText, poll.PubDate, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	if len(poll.Options) > 0 {
		queryOption := `
			INSERT INTO options (id, poll_id, option_text, vote_count, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		stmt, err := tx.PrepareContext(ctx, queryOption)
		if err != nil {
			return fmt.Errorf("failed to prepare option statement: %w", err)
		}
		defer stmt.Close()

		for _, opt := range poll.Options {
			_, err = stmt.ExecContext(ctx, opt.ID, opt.PollID, opt.OptionText, opt.VoteCount, opt.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert option: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	queryPoll := `
		SELECT id, question_text, pub_date, created_at
		FROM polls
		WHERE id = $1
	`

	var poll domain.Poll
	err := r.db.QueryRowContext(ctx, queryPoll, id).Scan(
		&poll.ID, &poll.QuestionText, &poll.PubDate, &poll.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	normalizePoll(&poll)

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, question_text, pub_date, created_at
		FROM polls
		ORDER BY id
	`
	return r.queryPolls(ctx, query)
}

func (r *pollRepository) Search(ctx context.Context, q string) ([]*domain.Poll, error) {
	query := `
		SELECT id, question_text, pub_date, created_at
		FROM polls
		WHERE LOWER(question_text) LIKE $1 ESCAPE '\'
		ORDER BY id
	`
	return r.queryPolls(ctx, query, "%"+escapeLike(strings.ToLower(q))+"%")
}

func (r *pollRepository) Update(ctx context.Context, poll *domain.Poll) error {
	query := `UPDATE polls SET question_text = $2, pub_date = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, poll.ID, poll.QuestionText, poll.PubDate)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}

	return expectAffected(res, domain.ErrPollNotFound)
}

func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete poll votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete poll options: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if err := expectAffected(res, domain.ErrPollNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// queryPolls reads every poll row before loading options, so it never holds
// two connections at once.
func (r *pollRepository) queryPolls(ctx context.Context, query string, args ...any) ([]*domain.Poll, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := make([]*domain.Poll, 0)
	for rows.Next() {
		var poll domain.Poll
		if err := rows.Scan(&poll.ID, &poll.QuestionText, &poll.PubDate, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		normalizePoll(&poll)
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	rows.Close()

	for _, poll := range polls {
		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options
	}

	return polls, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.Option, error) {
	queryOptions := `
		SELECT id, poll_id, option_text, vote_count, created_at
		FROM options
		WHERE poll_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	options := make([]domain.Option, 0)
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, *opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

// normalizePoll drops the session time zone drivers attach to timestamps.
func normalizePoll(poll *domain.Poll) {
	poll.PubDate = poll.PubDate.UTC()
	poll.CreatedAt = poll.CreatedAt.UTC()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// expectAffected turns an update or delete that matched no row into notFound.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
