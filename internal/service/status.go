package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

// Transition moves a task to another column without changing its position
// key. Any status may follow any other; there is no workflow graph. Moving
// into the today queue is not recorded in the status history and stamps
// TodayDate instead. Entering the terminal status or leaving the today queue
// stops the task's timer.
func (s *TaskService) Transition(ctx context.Context, snap board.Snapshot, taskID int64, target board.Column) error {
	return s.applyMove(ctx, snap, taskID, target, nil)
}

// AdvanceStatus moves the task to the next status of the configured list; a
// task already at the last status stays there.
func (s *TaskService) AdvanceStatus(ctx context.Context, snap board.Snapshot, taskID int64) error {
	t, err := s.store.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("getting task: %w", err)
	}
	next := snap.NextStatus(t.Status)
	if next == t.Status {
		return nil
	}
	return s.Transition(ctx, snap, taskID, board.StatusColumn(next))
}

// Move drops a task relative to a target sibling in the destination column:
// the column change, the new sort key, the history entry and UpdatedAt land
// in one task update. targetTaskID == 0 appends to the end of the column.
func (s *TaskService) Move(ctx context.Context, snap board.Snapshot, taskID int64, target board.Column, targetTaskID int64) error {
	return s.applyMove(ctx, snap, taskID, target, &targetTaskID)
}

func (s *TaskService) applyMove(ctx context.Context, snap board.Snapshot, taskID int64, target board.Column, targetTaskID *int64) error {
	t, err := s.store.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: move of missing task ignored", zap.Int64("task_id", taskID))
			return nil
		}
		return fmt.Errorf("getting task: %w", err)
	}

	now := s.now()
	from := t.Column()

	if targetTaskID != nil {
		siblings, err := s.store.Tasks.ListByColumn(ctx, t.ProjectID, target.Key())
		if err != nil {
			return fmt.Errorf("listing column: %w", err)
		}
		if *targetTaskID == 0 {
			t.Order = AppendOrder(siblings, now)
		} else {
			srcIdx, tgtIdx := -1, -1
			for i, sib := range siblings {
				if sib.ID == t.ID {
					srcIdx = i
				}
				if sib.ID == *targetTaskID {
					tgtIdx = i
				}
			}
			if tgtIdx == -1 {
				// Target vanished between read and drop; fall back to append.
				t.Order = AppendOrder(siblings, now)
			} else {
				t.Order = ComputeInsertionOrder(siblings, tgtIdx, placeAfterFor(srcIdx, tgtIdx))
			}
		}
	}

	changed := !from.Equal(target)
	if changed && !target.Today {
		t.StatusHistory = append(t.StatusHistory, board.StatusChange{Status: target.Key(), At: now})
	}
	t.Status = target.Key()
	if target.Today {
		t.TodayDate = dayKey(now)
	}
	t.UpdatedAt = now

	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	if stopsWork(snap, from, target) {
		if _, err := s.closeOpenLogs(ctx, taskID, now); err != nil {
			return fmt.Errorf("closing timers: %w", err)
		}
	}
	logger.Info("Service: task moved",
		zap.Int64("task_id", taskID),
		zap.String("from", from.Key()),
		zap.String("to", target.Key()))
	return nil
}

// stopsWork reports whether a column change ends active work: completion, or
// leaving the today queue for anywhere else.
func stopsWork(snap board.Snapshot, from, to board.Column) bool {
	if !to.Today && to.Status == snap.TerminalStatus() {
		return true
	}
	return from.Today && !to.Today
}
