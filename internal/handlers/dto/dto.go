package dto

import (
	"time"

	"taskflow/internal/models/board"
	"taskflow/internal/service"
)

// ColumnRef is the wire form of a board column: {"today": true} or
// {"status": "Todo"}.
type ColumnRef struct {
	Today  bool   `json:"today,omitempty"`
	Status string `json:"status,omitempty"`
}

func (c ColumnRef) ToColumn() board.Column {
	if c.Today {
		return board.TodayColumn()
	}
	return board.StatusColumn(c.Status)
}

func FromColumn(c board.Column) ColumnRef {
	if c.Today {
		return ColumnRef{Today: true}
	}
	return ColumnRef{Status: c.Status}
}

type CreateTaskRequest struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	ProjectID      string         `json:"project_id"`
	Column         *ColumnRef     `json:"column,omitempty"`
	DueAt          *time.Time     `json:"due_at,omitempty"`
	Priority       board.Priority `json:"priority,omitempty"`
	Color          string         `json:"color,omitempty"`
	AutoStartTimer bool           `json:"auto_start_timer,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Priority    *board.Priority `json:"priority,omitempty"`
	ProjectID   *string         `json:"project_id,omitempty"`
	DueAt       *time.Time      `json:"due_at,omitempty"`
	ClearDueAt  bool            `json:"clear_due_at,omitempty"`
	RemindAt    *time.Time      `json:"remind_at,omitempty"`
	ClearRemind bool            `json:"clear_remind,omitempty"`
	Labels      *[]string       `json:"labels,omitempty"`
}

type MoveTaskRequest struct {
	Column       ColumnRef `json:"column"`
	TargetTaskID int64     `json:"target_task_id,omitempty"`
}

type TaskResponse struct {
	ID             int64                  `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Column         ColumnRef              `json:"column"`
	Color          string                 `json:"color"`
	Priority       board.Priority         `json:"priority"`
	Labels         []string               `json:"labels"`
	Checklist      []*board.ChecklistItem `json:"checklist"`
	Order          float64                `json:"order"`
	ProjectID      string                 `json:"project_id"`
	DueAt          *time.Time             `json:"due_at,omitempty"`
	RemindAt       *time.Time             `json:"remind_at,omitempty"`
	TodayDate      string                 `json:"today_date,omitempty"`
	StatusHistory  []board.StatusChange   `json:"status_history"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	ChecklistTotal int                    `json:"checklist_total"`
	ChecklistDone  int                    `json:"checklist_done"`
}

func FromTask(t *board.Task) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Column:         FromColumn(t.Column()),
		Color:          t.Color,
		Priority:       t.Priority,
		Labels:         t.Labels,
		Checklist:      t.Checklist,
		Order:          t.Order,
		ProjectID:      t.ProjectID,
		DueAt:          t.DueAt,
		RemindAt:       t.RemindAt,
		TodayDate:      t.TodayDate,
		StatusHistory:  t.StatusHistory,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		ChecklistTotal: service.CountChecklistTotal(t.Checklist),
		ChecklistDone:  service.CountChecklistDone(t.Checklist),
	}
}

func FromTaskList(tasks []*board.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type CommentRequest struct {
	TaskID int64  `json:"task_id,omitempty"`
	Day    string `json:"day,omitempty"`
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

type ChecklistItemRequest struct {
	ParentID int64  `json:"parent_id,omitempty"`
	Text     string `json:"text"`
}

type ToggleChecklistRequest struct {
	Done bool `json:"done"`
}

type SettingsRequest struct {
	Statuses      *[]board.StatusDef `json:"statuses,omitempty"`
	Projects      *[]board.Project   `json:"projects,omitempty"`
	HiddenColumns *[]string          `json:"hidden_columns,omitempty"`
	ShowToday     *bool              `json:"show_today,omitempty"`
}
