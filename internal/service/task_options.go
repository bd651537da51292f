package service

import (
	"time"

	"taskflow/internal/models/board"
)

// TaskOption mutates a fetched task before it is written back. UpdatedAt is
// stamped by the service, not by the options.
type TaskOption func(*board.Task)

func WithTitle(title string) TaskOption {
	return func(t *board.Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(t *board.Task) {
		t.Description = description
	}
}

func WithColor(color string) TaskOption {
	return func(t *board.Task) {
		t.Color = color
	}
}

func WithPriority(p board.Priority) TaskOption {
	return func(t *board.Task) {
		t.Priority = p
	}
}

func WithProjectID(projectID string) TaskOption {
	return func(t *board.Task) {
		t.ProjectID = projectID
	}
}

func WithDueAt(dueAt *time.Time) TaskOption {
	return func(t *board.Task) {
		t.DueAt = dueAt
	}
}

// WithRemindAt also clears LastRemindedAt so the new reminder fires even when
// an older one already did.
func WithRemindAt(remindAt *time.Time) TaskOption {
	return func(t *board.Task) {
		t.RemindAt = remindAt
		t.LastRemindedAt = nil
	}
}

func WithLabels(labels []string) TaskOption {
	return func(t *board.Task) {
		t.Labels = labels
	}
}
