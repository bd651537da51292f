package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

// ElapsedTicker periodically recomputes the total tracked time of every task
// with an open timer. It is read only; the cached map backs the live elapsed
// endpoint without hitting the store per request.
type ElapsedTicker struct {
	repo     repository.TimeLogRepository
	interval time.Duration

	mtx     sync.RWMutex
	elapsed map[int64]time.Duration
}

func NewElapsedTicker(repo repository.TimeLogRepository, interval time.Duration) *ElapsedTicker {
	if interval <= 0 {
		interval = time.Second
	}
	return &ElapsedTicker{
		repo:     repo,
		interval: interval,
		elapsed:  map[int64]time.Duration{},
	}
}

func (w *ElapsedTicker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			logger.Info("Worker: elapsed ticker stopping")
			return
		}
	}
}

func (w *ElapsedTicker) refresh(ctx context.Context) {
	logs, err := w.repo.List(ctx)
	if err != nil {
		logger.Warn("Worker: listing time logs failed", zap.Error(err))
		return
	}
	now := time.Now()

	// Only tasks with a running timer need a live total.
	running := map[int64]bool{}
	for _, l := range logs {
		if l.IsOpen() {
			running[l.TaskID] = true
		}
	}
	next := make(map[int64]time.Duration, len(running))
	for taskID := range running {
		next[taskID] = service.TotalElapsed(taskID, logs, now)
	}

	w.mtx.Lock()
	w.elapsed = next
	w.mtx.Unlock()
}

// Snapshot returns the last computed totals, keyed by task id. Only tasks
// with a running timer appear.
func (w *ElapsedTicker) Snapshot() map[int64]time.Duration {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	out := make(map[int64]time.Duration, len(w.elapsed))
	for k, v := range w.elapsed {
		out[k] = v
	}
	return out
}
