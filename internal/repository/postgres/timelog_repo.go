package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/models/board"
)

type timeLogRepo struct {
	pool *pgxpool.Pool
}

func collectTimeLogs(rows pgx.Rows) ([]*board.TimeLog, error) {
	defer rows.Close()
	logs := []*board.TimeLog{}
	for rows.Next() {
		l := &board.TimeLog{}
		if err := rows.Scan(&l.ID, &l.TaskID, &l.Start, &l.End); err != nil {
			return nil, fmt.Errorf("scanning time log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time logs: %w", err)
	}
	return logs, nil
}

func (r *timeLogRepo) Create(ctx context.Context, l *board.TimeLog) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO time_logs (task_id, start_at, end_at) VALUES ($1, $2, $3) RETURNING id`,
		l.TaskID, l.Start, l.End,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting time log: %w", err)
	}
	return id, nil
}

func (r *timeLogRepo) Put(ctx context.Context, l *board.TimeLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO time_logs (id, task_id, start_at, end_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			task_id = EXCLUDED.task_id,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at`,
		l.ID, l.TaskID, l.Start, l.End,
	)
	if err != nil {
		return fmt.Errorf("upserting time log: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('time_logs','id'), (SELECT GREATEST(MAX(id), 1) FROM time_logs))`)
	if err != nil {
		return fmt.Errorf("bumping time log sequence: %w", err)
	}
	return nil
}

func (r *timeLogRepo) Update(ctx context.Context, l *board.TimeLog) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE time_logs SET task_id = $1, start_at = $2, end_at = $3 WHERE id = $4`,
		l.TaskID, l.Start, l.End, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time log: %w", err)
	}
	return nil
}

func (r *timeLogRepo) List(ctx context.Context) ([]*board.TimeLog, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, task_id, start_at, end_at FROM time_logs`)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	return collectTimeLogs(rows)
}

func (r *timeLogRepo) ListByTask(ctx context.Context, taskID int64) ([]*board.TimeLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, task_id, start_at, end_at FROM time_logs WHERE task_id = $1`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	return collectTimeLogs(rows)
}

func (r *timeLogRepo) ListOpenByTask(ctx context.Context, taskID int64) ([]*board.TimeLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, task_id, start_at, end_at FROM time_logs WHERE task_id = $1 AND end_at IS NULL`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing open time logs: %w", err)
	}
	return collectTimeLogs(rows)
}

func (r *timeLogRepo) DeleteByTask(ctx context.Context, taskID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM time_logs WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("deleting time logs: %w", err)
	}
	return nil
}
