package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

const taskColumns = `id, title, description, status, color, priority, labels,
	checklist, sort_order, project_id, due_at, remind_at, last_reminded_at,
	today_date, status_history, created_at, updated_at`

type taskRepo struct {
	pool *pgxpool.Pool
}

func scanTask(row pgx.Row) (*board.Task, error) {
	t := &board.Task{}
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Color,
		&t.Priority,
		&t.Labels,
		&t.Checklist,
		&t.Order,
		&t.ProjectID,
		&t.DueAt,
		&t.RemindAt,
		&t.LastRemindedAt,
		&t.TodayDate,
		&t.StatusHistory,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

func collectTasks(rows pgx.Rows) ([]*board.Task, error) {
	defer rows.Close()
	tasks := []*board.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepo) Create(ctx context.Context, t *board.Task) (int64, error) {
	query := `INSERT INTO tasks
		(title, description, status, color, priority, labels, checklist,
		 sort_order, project_id, due_at, remind_at, last_reminded_at,
		 today_date, status_history, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		t.Title, t.Description, t.Status, t.Color, t.Priority,
		t.Labels, t.Checklist, t.Order, t.ProjectID,
		t.DueAt, t.RemindAt, t.LastRemindedAt,
		t.TodayDate, t.StatusHistory, t.CreatedAt, t.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting task: %w", err)
	}
	return id, nil
}

// Put upserts the record keeping the caller's id, then bumps the sequence so
// later inserts cannot collide with imported ids.
func (r *taskRepo) Put(ctx context.Context, t *board.Task) error {
	query := `INSERT INTO tasks
		(id, title, description, status, color, priority, labels, checklist,
		 sort_order, project_id, due_at, remind_at, last_reminded_at,
		 today_date, status_history, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			color = EXCLUDED.color,
			priority = EXCLUDED.priority,
			labels = EXCLUDED.labels,
			checklist = EXCLUDED.checklist,
			sort_order = EXCLUDED.sort_order,
			project_id = EXCLUDED.project_id,
			due_at = EXCLUDED.due_at,
			remind_at = EXCLUDED.remind_at,
			last_reminded_at = EXCLUDED.last_reminded_at,
			today_date = EXCLUDED.today_date,
			status_history = EXCLUDED.status_history,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.Status, t.Color, t.Priority,
		t.Labels, t.Checklist, t.Order, t.ProjectID,
		t.DueAt, t.RemindAt, t.LastRemindedAt,
		t.TodayDate, t.StatusHistory, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting task: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('tasks','id'), (SELECT GREATEST(MAX(id), 1) FROM tasks))`)
	if err != nil {
		return fmt.Errorf("bumping task sequence: %w", err)
	}
	return nil
}

func (r *taskRepo) Update(ctx context.Context, t *board.Task) error {
	query := `UPDATE tasks SET
			title = $1,
			description = $2,
			status = $3,
			color = $4,
			priority = $5,
			labels = $6,
			checklist = $7,
			sort_order = $8,
			project_id = $9,
			due_at = $10,
			remind_at = $11,
			last_reminded_at = $12,
			today_date = $13,
			status_history = $14,
			updated_at = $15
		WHERE id = $16`

	tag, err := r.pool.Exec(ctx, query,
		t.Title, t.Description, t.Status, t.Color, t.Priority,
		t.Labels, t.Checklist, t.Order, t.ProjectID,
		t.DueAt, t.RemindAt, t.LastRemindedAt,
		t.TodayDate, t.StatusHistory, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id int64) (*board.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *taskRepo) List(ctx context.Context) ([]*board.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return collectTasks(rows)
}

func (r *taskRepo) ListByColumn(ctx context.Context, projectID, statusKey string) ([]*board.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = $1 AND status = $2
		ORDER BY sort_order, id`
	rows, err := r.pool.Query(ctx, query, projectID, statusKey)
	if err != nil {
		return nil, fmt.Errorf("listing column: %w", err)
	}
	return collectTasks(rows)
}

func (r *taskRepo) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]*board.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE remind_at IS NOT NULL
		  AND remind_at <= $1
		  AND (last_reminded_at IS NULL OR last_reminded_at < remind_at)
		ORDER BY remind_at
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("listing due reminders: %w", err)
	}
	return collectTasks(rows)
}
