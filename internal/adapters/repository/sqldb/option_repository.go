package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

const optionColumns = `id, poll_id, option_text, vote_count, created_at`

type optionRepository struct {
	db *sql.DB
}

func NewOptionRepository(db *sql.DB) ports.OptionRepository {
	return &optionRepository{
		db: db,
	}
}

func (r *optionRepository) Save(ctx context.Context, option *domain.Option) error {
	query := `
		INSERT INTO options (id, poll_id, option_text, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, option.ID, option.PollID, option.OptionText, option.VoteCount, option.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert option: %w", err)
	}
	return nil
}

func (r *optionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM options WHERE id = $1`
	option, err := scanOption(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOptionNotFound
		}
		return nil, err
	}
	return option, nil
}

func (r *optionRepository) GetAll(ctx context.Context) ([]*domain.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM options ORDER BY id`
	return r.queryOptions(ctx, query)
}

func (r *optionRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM options WHERE poll_id = $1 ORDER BY id`
	return r.queryOptions(ctx, query, pollID)
}

func (r *optionRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE options SET option_text = $2 WHERE id = $1`, id, text)
	if err != nil {
		return fmt.Errorf("failed to update option: %w", err)
	}

	return expectAffected(res, domain.ErrOptionNotFound)
}

func (r *optionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE option_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete option votes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete option: %w", err)
	}
	if err := expectAffected(res, domain.ErrOptionNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *optionRepository) queryOptions(ctx context.Context, query string, args ...any) ([]*domain.Option, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	defer rows.Close()

	options := make([]*domain.Option, 0)
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

func scanOption(row scanner) (*domain.Option, error) {
	var opt domain.Option
	err := row.Scan(&opt.ID, &opt.PollID, &opt.OptionText, &opt.VoteCount, &opt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan option: %w", err)
	}
	opt.CreatedAt = opt.CreatedAt.UTC()
	return &opt, nil
}
