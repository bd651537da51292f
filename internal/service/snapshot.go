package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models/board"
)

// Export collects all four collections into a single portable document.
func (s *TaskService) Export(ctx context.Context) (*board.Export, error) {
	tasks, err := s.store.Tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	logs, err := s.store.TimeLogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	comments, err := s.store.Comments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	settings, err := s.store.Settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	return &board.Export{
		Tasks:    tasks,
		TimeLogs: logs,
		Comments: comments,
		Settings: settings,
	}, nil
}

// Import parses first and writes second, so a malformed document leaves the
// store untouched. Records are upserted by id, which makes importing the same
// document twice idempotent.
func (s *TaskService) Import(ctx context.Context, data []byte) error {
	var doc board.Export
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewValidationError("file", "invalid file")
	}

	for _, t := range doc.Tasks {
		if err := s.store.Tasks.Put(ctx, t); err != nil {
			return fmt.Errorf("importing task %d: %w", t.ID, err)
		}
	}
	for _, l := range doc.TimeLogs {
		if err := s.store.TimeLogs.Put(ctx, l); err != nil {
			return fmt.Errorf("importing time log %d: %w", l.ID, err)
		}
	}
	for _, c := range doc.Comments {
		if err := s.store.Comments.Put(ctx, c); err != nil {
			return fmt.Errorf("importing comment %d: %w", c.ID, err)
		}
	}
	for _, rec := range doc.Settings {
		if err := s.store.Settings.Put(ctx, rec.Key, rec.Value); err != nil {
			return fmt.Errorf("importing setting %s: %w", rec.Key, err)
		}
	}
	logger.Info("Service: snapshot imported",
		zap.Int("tasks", len(doc.Tasks)),
		zap.Int("timelogs", len(doc.TimeLogs)),
		zap.Int("comments", len(doc.Comments)),
		zap.Int("settings", len(doc.Settings)))
	return nil
}
