package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

// Timer operations keep the one invariant of the timelog collection: a task
// has at most one open interval. They silently no-op on unknown task ids;
// callers have already validated existence against the store.

// StartTimer closes whatever open intervals the task still has (defensive,
// the invariant should leave at most one) and opens a fresh one.
func (s *TaskService) StartTimer(ctx context.Context, taskID int64) error {
	if !s.taskExists(ctx, taskID) {
		return nil
	}
	now := s.now()
	if _, err := s.closeOpenLogs(ctx, taskID, now); err != nil {
		return fmt.Errorf("closing open logs: %w", err)
	}
	l := &board.TimeLog{TaskID: taskID, Start: now}
	if _, err := s.store.TimeLogs.Create(ctx, l); err != nil {
		return fmt.Errorf("creating time log: %w", err)
	}
	logger.Info("Service: timer started", zap.Int64("task_id", taskID))
	return nil
}

// StopTimer closes every open interval of the task. Idempotent: stopping an
// already idle task does nothing.
func (s *TaskService) StopTimer(ctx context.Context, taskID int64) error {
	if !s.taskExists(ctx, taskID) {
		return nil
	}
	closed, err := s.closeOpenLogs(ctx, taskID, s.now())
	if err != nil {
		return fmt.Errorf("closing open logs: %w", err)
	}
	if closed > 0 {
		logger.Info("Service: timer stopped", zap.Int64("task_id", taskID), zap.Int("closed", closed))
	}
	return nil
}

// ToggleTimer starts the timer when idle and stops it when running.
func (s *TaskService) ToggleTimer(ctx context.Context, taskID int64) error {
	open, err := s.store.TimeLogs.ListOpenByTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("listing open logs: %w", err)
	}
	if len(open) > 0 {
		return s.StopTimer(ctx, taskID)
	}
	return s.StartTimer(ctx, taskID)
}

func (s *TaskService) closeOpenLogs(ctx context.Context, taskID int64, now time.Time) (int, error) {
	open, err := s.store.TimeLogs.ListOpenByTask(ctx, taskID)
	if err != nil {
		return 0, fmt.Errorf("listing open logs: %w", err)
	}
	for _, l := range open {
		end := now
		l.End = &end
		if err := s.store.TimeLogs.Update(ctx, l); err != nil {
			return 0, fmt.Errorf("closing log %d: %w", l.ID, err)
		}
	}
	return len(open), nil
}

func (s *TaskService) taskExists(ctx context.Context, taskID int64) bool {
	_, err := s.store.Tasks.GetByID(ctx, taskID)
	if err == nil {
		return true
	}
	if errors.Is(err, repository.ErrNotFound) {
		logger.Info("Service: timer operation on missing task ignored", zap.Int64("task_id", taskID))
	} else {
		logger.Warn("Service: task lookup failed", zap.Int64("task_id", taskID), zap.Error(err))
	}
	return false
}

// Elapsed returns the task's total tracked time evaluated at the current
// instant, plus whether a timer is running. An open interval keeps growing
// between calls; that is what drives a ticking display.
func (s *TaskService) Elapsed(ctx context.Context, taskID int64) (time.Duration, bool, error) {
	logs, err := s.store.TimeLogs.ListByTask(ctx, taskID)
	if err != nil {
		return 0, false, fmt.Errorf("listing time logs: %w", err)
	}
	running := false
	for _, l := range logs {
		if l.IsOpen() {
			running = true
			break
		}
	}
	return TotalElapsed(taskID, logs, s.now()), running, nil
}

// TotalElapsed sums (end ?? now) - start over the task's logs.
func TotalElapsed(taskID int64, logs []*board.TimeLog, now time.Time) time.Duration {
	var total time.Duration
	for _, l := range logs {
		if l.TaskID != taskID {
			continue
		}
		end := now
		if l.End != nil {
			end = *l.End
		}
		total += end.Sub(l.Start)
	}
	return total
}

// ElapsedOnDay clips one log's interval to [dayStart, dayEnd). Open logs are
// evaluated against now.
func ElapsedOnDay(l *board.TimeLog, dayStart, dayEnd, now time.Time) time.Duration {
	start := l.Start
	if start.Before(dayStart) {
		start = dayStart
	}
	end := now
	if l.End != nil {
		end = *l.End
	}
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
