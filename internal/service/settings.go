package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

// Snapshot assembles the current board configuration from the settings
// collection. Missing keys fall back to defaults, so a fresh database is
// usable before EnsureDefaults ran.
func (s *TaskService) Snapshot(ctx context.Context) (board.Snapshot, error) {
	snap := board.Snapshot{
		Statuses:      board.DefaultStatuses(),
		Projects:      board.DefaultProjects(),
		HiddenColumns: []string{},
		ShowToday:     true,
	}

	if err := s.loadSetting(ctx, board.SettingStatuses, &snap.Statuses); err != nil {
		return snap, err
	}
	if err := s.loadSetting(ctx, board.SettingProjects, &snap.Projects); err != nil {
		return snap, err
	}
	if err := s.loadSetting(ctx, board.SettingHiddenColumns, &snap.HiddenColumns); err != nil {
		return snap, err
	}
	if err := s.loadSetting(ctx, board.SettingShowToday, &snap.ShowToday); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *TaskService) loadSetting(ctx context.Context, key string, dst any) error {
	raw, err := s.store.Settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("reading setting %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A corrupt setting falls back to the default rather than taking the
		// whole board down.
		logger.Warn("Service: ignoring malformed setting", zap.String("key", key))
		return nil
	}
	return nil
}

func (s *TaskService) saveSetting(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding setting %s: %w", key, err)
	}
	if err := s.store.Settings.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

func (s *TaskService) SaveStatuses(ctx context.Context, statuses []board.StatusDef) error {
	kept := make([]board.StatusDef, 0, len(statuses))
	for _, def := range statuses {
		if def.Key != "" {
			kept = append(kept, def)
		}
	}
	return s.saveSetting(ctx, board.SettingStatuses, kept)
}

func (s *TaskService) SaveProjects(ctx context.Context, projects []board.Project) error {
	return s.saveSetting(ctx, board.SettingProjects, projects)
}

func (s *TaskService) SaveHiddenColumns(ctx context.Context, hidden []string) error {
	return s.saveSetting(ctx, board.SettingHiddenColumns, hidden)
}

func (s *TaskService) SaveShowToday(ctx context.Context, show bool) error {
	return s.saveSetting(ctx, board.SettingShowToday, show)
}

// EnsureDefaults seeds the settings collection on first run. Existing values
// are left untouched.
func (s *TaskService) EnsureDefaults(ctx context.Context) error {
	seed := func(key string, v any) error {
		_, err := s.store.Settings.Get(ctx, key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("reading setting %s: %w", key, err)
		}
		return s.saveSetting(ctx, key, v)
	}

	if err := seed(board.SettingStatuses, board.DefaultStatuses()); err != nil {
		return err
	}
	if err := seed(board.SettingProjects, board.DefaultProjects()); err != nil {
		return err
	}
	if err := seed(board.SettingHiddenColumns, []string{}); err != nil {
		return err
	}
	if err := seed(board.SettingShowToday, true); err != nil {
		return err
	}
	logger.Info("Service: default settings ensured")
	return nil
}
