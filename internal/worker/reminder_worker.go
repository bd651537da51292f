package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

// Notifier delivers a due reminder to the user. Implementations must not
// block for long; the worker fires notifications inline.
type Notifier interface {
	Notify(ctx context.Context, t *board.Task) error
}

// ReminderWorker polls for tasks whose remind time has passed and fires each
// reminder at most once per configured remind time. Stamping LastRemindedAt
// is what suppresses repeats; changing RemindAt re-arms the task.
type ReminderWorker struct {
	repo      repository.TaskRepository
	notifier  Notifier
	interval  time.Duration
	batchSize int

	warnedNilNotifier bool
}

func NewReminderWorker(repo repository.TaskRepository, notifier Notifier, interval time.Duration, batchSize int) *ReminderWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ReminderWorker{
		repo:      repo,
		notifier:  notifier,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: reminder check stopping")
			return
		}
	}
}

// Check fires every due reminder once. Each task is stamped before moving on,
// so a failing notifier does not re-fire the whole batch next tick.
func (w *ReminderWorker) Check(ctx context.Context) {
	start := time.Now()

	due, err := w.repo.ListDueReminders(ctx, start, w.batchSize)
	if err != nil {
		logger.Warn("Worker: listing due reminders failed", zap.Error(err))
		return
	}

	fired := 0
	for _, t := range due {
		if err := w.fire(ctx, t, start); err != nil {
			logger.Warn("Worker: firing reminder failed",
				zap.Int64("task_id", t.ID), zap.Error(err))
			continue
		}
		fired++
	}

	if fired > 0 {
		logger.Info(
			"Worker: reminder check finished",
			zap.Duration("ms", time.Since(start)),
			zap.Int("due", len(due)),
			zap.Int("fired", fired),
		)
	}
}

func (w *ReminderWorker) fire(ctx context.Context, t *board.Task, now time.Time) error {
	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, t); err != nil {
			return fmt.Errorf("notifying: %w", err)
		}
	} else if !w.warnedNilNotifier {
		// Without a delivery channel the worker still stamps tasks so the
		// queue drains instead of growing.
		logger.Warn("Worker: no notifier configured, reminders are stamped but not delivered")
		w.warnedNilNotifier = true
	}

	stamp := now
	t.LastRemindedAt = &stamp
	if err := w.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("stamping reminder: %w", err)
	}
	logger.Info("Worker: reminder fired",
		zap.Int64("task_id", t.ID), zap.String("title", t.Title))
	return nil
}
