package board

import "time"

// ChecklistItem is a node of a task's checklist forest. Item ids are unique
// across the whole forest of a single task.
type ChecklistItem struct {
	ID        int64            `json:"id"`
	Text      string           `json:"text"`
	Done      bool             `json:"done"`
	Children  []*ChecklistItem `json:"children,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (it *ChecklistItem) Clone() *ChecklistItem {
	c := *it
	c.Children = cloneChecklist(it.Children)
	return &c
}

func cloneChecklist(items []*ChecklistItem) []*ChecklistItem {
	if items == nil {
		return nil
	}
	out := make([]*ChecklistItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
