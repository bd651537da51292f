package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"taskflow/internal/models/board"
)

// Sort modes for filtered task listings. The fractional sort key always
// breaks ties so listings stay stable.
const (
	SortDueAsc       = "dueAsc"
	SortUpdatedDesc  = "updatedDesc"
	SortPriorityDesc = "priorityDesc"
)

// TaskFilter narrows a task listing; zero values match everything. Query is a
// case-insensitive substring search over title and description.
type TaskFilter struct {
	ProjectID string
	Status    string
	Priority  board.Priority
	Label     string
	Query     string
}

func (f TaskFilter) matches(t *board.Task) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Label != "" {
		found := false
		for _, l := range t.Labels {
			if l == f.Label {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

// ListFiltered returns the tasks matching the filter, ordered by the given
// sort mode. An unknown or empty mode sorts by the board position key.
func (s *TaskService) ListFiltered(ctx context.Context, filter TaskFilter, sortMode string) ([]*board.Task, error) {
	all, err := s.store.Tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	tasks := make([]*board.Task, 0, len(all))
	for _, t := range all {
		if filter.matches(t) {
			tasks = append(tasks, t)
		}
	}
	SortTasks(tasks, sortMode)
	return tasks, nil
}

// SortTasks orders tasks in place for the given mode.
func SortTasks(tasks []*board.Task, mode string) {
	byOrder := func(a, b *board.Task) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	}
	var less func(a, b *board.Task) bool
	switch mode {
	case SortDueAsc:
		// Tasks without a due date sink to the end.
		less = func(a, b *board.Task) bool {
			switch {
			case a.DueAt == nil && b.DueAt == nil:
				return byOrder(a, b)
			case a.DueAt == nil:
				return false
			case b.DueAt == nil:
				return true
			case !a.DueAt.Equal(*b.DueAt):
				return a.DueAt.Before(*b.DueAt)
			}
			return byOrder(a, b)
		}
	case SortUpdatedDesc:
		less = func(a, b *board.Task) bool {
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return byOrder(a, b)
		}
	case SortPriorityDesc:
		less = func(a, b *board.Task) bool {
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() > b.Priority.Rank()
			}
			return byOrder(a, b)
		}
	default:
		less = byOrder
	}
	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
}

// BoardColumn is one rendered column of the board view.
type BoardColumn struct {
	Column board.Column  `json:"column"`
	Tasks  []*board.Task `json:"tasks"`
}

// Board assembles the visible columns in configured order. Tasks land in the
// column their status key names; a hidden column's tasks are simply not shown.
func (s *TaskService) Board(ctx context.Context, snap board.Snapshot, filter TaskFilter) ([]BoardColumn, error) {
	tasks, err := s.ListFiltered(ctx, filter, "")
	if err != nil {
		return nil, err
	}
	cols := snap.ActiveColumns()
	out := make([]BoardColumn, len(cols))
	for i, col := range cols {
		out[i] = BoardColumn{Column: col, Tasks: []*board.Task{}}
	}
	for _, t := range tasks {
		for i, col := range cols {
			if col.Equal(t.Column()) {
				out[i].Tasks = append(out[i].Tasks, t)
				break
			}
		}
	}
	return out, nil
}
