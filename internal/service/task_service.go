package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/logger"
	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

// TaskService owns every mutation of the board: task lifecycle, ordering,
// status transitions, timers, checklists and comments. Reads and writes go
// through the record store; multi-record mutations are applied record by
// record (a crash in between is an accepted, recoverable inconsistency).
type TaskService struct {
	store *repository.Store
	now   func() time.Time
}

func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{
		store: store,
		now:   time.Now,
	}
}

// CreateTask carries the caller-supplied fields of a new task; everything
// else gets a default.
type CreateTask struct {
	Title          string
	Description    string
	ProjectID      string
	Column         *board.Column
	DueAt          *time.Time
	Priority       board.Priority
	Color          string
	AutoStartTimer bool
}

func (s *TaskService) Create(ctx context.Context, snap board.Snapshot, in CreateTask) (*board.Task, error) {
	now := s.now()

	col := board.StatusColumn(snap.FirstStatus())
	if in.Column != nil {
		col = *in.Column
	}

	t := &board.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      col.Key(),
		Color:       in.Color,
		Priority:    in.Priority,
		Labels:      []string{},
		Checklist:   []*board.ChecklistItem{},
		Order:       float64(now.UnixMilli()),
		ProjectID:   in.ProjectID,
		DueAt:       in.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Priority == "" {
		t.Priority = board.PriorityNormal
	}
	if t.ProjectID == "" {
		t.ProjectID = board.DefaultProjectID
	}
	if t.Color == "" {
		t.Color = snap.StatusColor(col.Key())
	}
	if col.Today {
		// The today queue is a transient marker, not a workflow state: it is
		// stamped with the calendar day and kept out of the status history.
		t.TodayDate = dayKey(now)
		t.StatusHistory = []board.StatusChange{}
	} else {
		t.StatusHistory = []board.StatusChange{{Status: col.Key(), At: now}}
	}

	id, err := s.store.Tasks.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	t.ID = id

	if in.AutoStartTimer {
		if err := s.StartTimer(ctx, id); err != nil {
			return nil, fmt.Errorf("starting timer for new task: %w", err)
		}
	}
	logger.Info("Service: task created", zap.Int64("task_id", id), zap.String("column", t.Status))
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*board.Task, error) {
	t, err := s.store.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("task", id)
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, options ...TaskOption) (*board.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		opt(t)
	}
	t.UpdatedAt = s.now()
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return t, nil
}

// Delete removes the task together with its time logs and comments. The
// cascade is owned here, not by the store. Deleting an absent task is a
// no-op.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.store.TimeLogs.DeleteByTask(ctx, id); err != nil {
		return fmt.Errorf("deleting time logs: %w", err)
	}
	if err := s.store.Comments.DeleteByTask(ctx, id); err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	if err := s.store.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: delete of missing task ignored", zap.Int64("task_id", id))
			return nil
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	logger.Info("Service: task deleted with cascade", zap.Int64("task_id", id))
	return nil
}

func (s *TaskService) AddLabel(ctx context.Context, id int64, label string) (*board.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, l := range t.Labels {
		if l == label {
			return t, nil
		}
	}
	t.Labels = append(t.Labels, label)
	t.UpdatedAt = s.now()
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating labels: %w", err)
	}
	return t, nil
}

func (s *TaskService) RemoveLabel(ctx context.Context, id int64, label string) (*board.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := t.Labels[:0]
	for _, l := range t.Labels {
		if l != label {
			kept = append(kept, l)
		}
	}
	t.Labels = kept
	t.UpdatedAt = s.now()
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating labels: %w", err)
	}
	return t, nil
}

// ----- checklist operations -----

func (s *TaskService) AddChecklistItem(ctx context.Context, taskID, parentID int64, text string) (*board.ChecklistItem, error) {
	t, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	item := &board.ChecklistItem{
		ID:        nextChecklistID(t.Checklist, now),
		Text:      text,
		CreatedAt: now,
	}
	if parentID == 0 {
		t.Checklist = append(t.Checklist, item)
	} else if !InsertChecklistChild(t.Checklist, parentID, item) {
		return nil, NewNotFound("checklist item", parentID)
	}
	t.UpdatedAt = now
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating checklist: %w", err)
	}
	return item, nil
}

func (s *TaskService) ToggleChecklistItem(ctx context.Context, taskID, itemID int64, done bool) error {
	t, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if !ToggleChecklistItem(t.Checklist, itemID, done) {
		// Nothing matched, nothing to persist.
		return nil
	}
	t.UpdatedAt = s.now()
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}
	return nil
}

func (s *TaskService) RemoveChecklistItem(ctx context.Context, taskID, itemID int64) error {
	t, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}
	items, ok := RemoveChecklistItem(t.Checklist, itemID)
	if !ok {
		return nil
	}
	t.Checklist = items
	t.UpdatedAt = s.now()
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return fmt.Errorf("updating checklist: %w", err)
	}
	return nil
}

// ----- comments -----

func (s *TaskService) AddComment(ctx context.Context, anchor board.CommentAnchor, text, author string) (*board.Comment, error) {
	now := s.now()
	c := &board.Comment{
		Anchor: anchor,
		Text:   text,
		At:     now,
		Author: author,
	}
	id, err := s.store.Comments.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	c.ID = id

	if !anchor.IsDay() {
		// A new comment counts as task activity.
		if t, err := s.store.Tasks.GetByID(ctx, anchor.TaskID); err == nil {
			t.UpdatedAt = now
			if err := s.store.Tasks.Update(ctx, t); err != nil {
				logger.Warn("Service: bumping task after comment failed", zap.Error(err))
			}
		}
	}
	return c, nil
}

func (s *TaskService) EditComment(ctx context.Context, id int64, text string) (*board.Comment, error) {
	c, err := s.store.Comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("comment", id)
		}
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	c.Text = text
	c.At = s.now()
	if err := s.store.Comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return c, nil
}

func (s *TaskService) SetCommentPinned(ctx context.Context, id int64, pinned bool) (*board.Comment, error) {
	c, err := s.store.Comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("comment", id)
		}
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	c.Pinned = pinned
	if err := s.store.Comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return c, nil
}

func (s *TaskService) DeleteComment(ctx context.Context, id int64) error {
	if err := s.store.Comments.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

// ListComments returns comments for the anchor, pinned first, then newest
// first.
func (s *TaskService) ListComments(ctx context.Context, anchor board.CommentAnchor) ([]*board.Comment, error) {
	var comments []*board.Comment
	var err error
	if anchor.IsDay() {
		comments, err = s.store.Comments.ListByDay(ctx, anchor.Day)
	} else {
		comments, err = s.store.Comments.ListByTask(ctx, anchor.TaskID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].Pinned != comments[j].Pinned {
			return comments[i].Pinned
		}
		return comments[i].At.After(comments[j].At)
	})
	return comments, nil
}
