package repository

import (
	"context"
	"taskflow/internal/models/board"
	"time"
)

// TaskRepository is the task collection of the record store. Create assigns
// the id; Put keeps the id of the given record (import path). List results
// carry no ordering guarantee; ListByColumn is ordered by the fractional sort
// key ascending with ties broken by id.
type TaskRepository interface {
	Create(ctx context.Context, t *board.Task) (int64, error)
	Put(ctx context.Context, t *board.Task) error
	Update(ctx context.Context, t *board.Task) error
	GetByID(ctx context.Context, id int64) (*board.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*board.Task, error)
	ListByColumn(ctx context.Context, projectID, statusKey string) ([]*board.Task, error)
	ListDueReminders(ctx context.Context, now time.Time, limit int) ([]*board.Task, error)
}

type TimeLogRepository interface {
	Create(ctx context.Context, l *board.TimeLog) (int64, error)
	Put(ctx context.Context, l *board.TimeLog) error
	Update(ctx context.Context, l *board.TimeLog) error
	List(ctx context.Context) ([]*board.TimeLog, error)
	ListByTask(ctx context.Context, taskID int64) ([]*board.TimeLog, error)
	ListOpenByTask(ctx context.Context, taskID int64) ([]*board.TimeLog, error)
	DeleteByTask(ctx context.Context, taskID int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *board.Comment) (int64, error)
	Put(ctx context.Context, c *board.Comment) error
	Update(ctx context.Context, c *board.Comment) error
	GetByID(ctx context.Context, id int64) (*board.Comment, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*board.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]*board.Comment, error)
	ListByDay(ctx context.Context, day string) ([]*board.Comment, error)
	DeleteByTask(ctx context.Context, taskID int64) error
}

type SettingRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	List(ctx context.Context) ([]board.SettingRecord, error)
}

// Store bundles the four collections the core operates on.
type Store struct {
	Tasks    TaskRepository
	TimeLogs TimeLogRepository
	Comments CommentRepository
	Settings SettingRepository
}
