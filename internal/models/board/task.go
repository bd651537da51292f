package board

import (
	"time"
)

type Priority string

const PriorityLow Priority = "Low"
const PriorityNormal Priority = "Normal"
const PriorityHigh Priority = "High"
const PriorityCritical Priority = "Critical"

var priorityRank = map[Priority]int{
	PriorityLow:      0,
	PriorityNormal:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

// Rank returns the position of the priority in the Low < Normal < High < Critical
// order. Unknown values rank as Normal.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return priorityRank[PriorityNormal]
}

// StatusChange is one entry of a task's append-only status history.
type StatusChange struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type Task struct {
	ID             int64           `json:"id" db:"id"`
	Title          string          `json:"title" db:"title"`
	Description    string          `json:"description" db:"description"`
	Status         string          `json:"status" db:"status"`
	Color          string          `json:"color" db:"color"`
	Priority       Priority        `json:"priority" db:"priority"`
	Labels         []string        `json:"labels" db:"labels"`
	Checklist      []*ChecklistItem `json:"checklist" db:"checklist"`
	Order          float64         `json:"order" db:"sort_order"`
	ProjectID      string          `json:"projectId" db:"project_id"`
	DueAt          *time.Time      `json:"dueAt,omitempty" db:"due_at"`
	RemindAt       *time.Time      `json:"remindAt,omitempty" db:"remind_at"`
	LastRemindedAt *time.Time      `json:"lastRemindedAt,omitempty" db:"last_reminded_at"`
	TodayDate      string          `json:"todayDate,omitempty" db:"today_date"`
	StatusHistory  []StatusChange  `json:"statusHistory" db:"status_history"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// Column returns the task's position in the board as a tagged value.
func (t *Task) Column() Column {
	return ColumnFromKey(t.Status)
}

// InTodayQueue reports whether the task sits in the today queue for the given
// calendar day. A task can keep the today marker with a stale TodayDate from a
// prior day; both must match.
func (t *Task) InTodayQueue(day string) bool {
	return t.Column().Today && t.TodayDate == day
}

// Clone returns a deep copy. The record store hands out clones so callers can
// mutate freely and persist with an explicit update.
func (t *Task) Clone() *Task {
	c := *t
	if t.Labels != nil {
		c.Labels = append([]string(nil), t.Labels...)
	}
	if t.StatusHistory != nil {
		c.StatusHistory = append([]StatusChange(nil), t.StatusHistory...)
	}
	if t.DueAt != nil {
		v := *t.DueAt
		c.DueAt = &v
	}
	if t.RemindAt != nil {
		v := *t.RemindAt
		c.RemindAt = &v
	}
	if t.LastRemindedAt != nil {
		v := *t.LastRemindedAt
		c.LastRemindedAt = &v
	}
	c.Checklist = cloneChecklist(t.Checklist)
	return &c
}
