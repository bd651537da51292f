package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

type commentRepo struct {
	pool *pgxpool.Pool
}

func scanComment(row pgx.Row) (*board.Comment, error) {
	c := &board.Comment{}
	err := row.Scan(&c.ID, &c.Anchor.TaskID, &c.Anchor.Day, &c.Text, &c.At, &c.Author, &c.Pinned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scanning comment: %w", err)
	}
	return c, nil
}

func collectComments(rows pgx.Rows) ([]*board.Comment, error) {
	defer rows.Close()
	comments := []*board.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepo) Create(ctx context.Context, c *board.Comment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments (task_id, day, text, at, author, pinned)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.Anchor.TaskID, c.Anchor.Day, c.Text, c.At, c.Author, c.Pinned,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting comment: %w", err)
	}
	return id, nil
}

func (r *commentRepo) Put(ctx context.Context, c *board.Comment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comments (id, task_id, day, text, at, author, pinned)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			task_id = EXCLUDED.task_id,
			day = EXCLUDED.day,
			text = EXCLUDED.text,
			at = EXCLUDED.at,
			author = EXCLUDED.author,
			pinned = EXCLUDED.pinned`,
		c.ID, c.Anchor.TaskID, c.Anchor.Day, c.Text, c.At, c.Author, c.Pinned,
	)
	if err != nil {
		return fmt.Errorf("upserting comment: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('comments','id'), (SELECT GREATEST(MAX(id), 1) FROM comments))`)
	if err != nil {
		return fmt.Errorf("bumping comment sequence: %w", err)
	}
	return nil
}

func (r *commentRepo) Update(ctx context.Context, c *board.Comment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE comments SET text = $1, at = $2, author = $3, pinned = $4 WHERE id = $5`,
		c.Text, c.At, c.Author, c.Pinned, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*board.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx,
		`SELECT id, task_id, day, text, at, author, pinned FROM comments WHERE id = $1`, id))
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *commentRepo) List(ctx context.Context) ([]*board.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, task_id, day, text, at, author, pinned FROM comments`)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return collectComments(rows)
}

func (r *commentRepo) ListByTask(ctx context.Context, taskID int64) ([]*board.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, task_id, day, text, at, author, pinned FROM comments WHERE task_id = $1`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return collectComments(rows)
}

func (r *commentRepo) ListByDay(ctx context.Context, day string) ([]*board.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, task_id, day, text, at, author, pinned FROM comments WHERE day = $1`, day)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return collectComments(rows)
}

func (r *commentRepo) DeleteByTask(ctx context.Context, taskID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE task_id = $1 AND day = ''`, taskID); err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	return nil
}
