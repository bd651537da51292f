package service

import (
	"time"

	"taskflow/internal/models/board"
)

// Checklist trees are mutated in place. Search is depth-first and the first
// id match wins; ids are unique across a task's whole forest.

// ToggleChecklistItem sets done on the matched item, cascades the value to
// all of its descendants, then recomputes every parent's done state from its
// children (all done -> done, none done -> not done, mixed -> unchanged).
// Returns false when no item matched, so the caller can skip persisting.
func ToggleChecklistItem(items []*board.ChecklistItem, id int64, done bool) bool {
	found := toggleIn(items, id, done)
	if found {
		fixParents(items)
	}
	return found
}

func toggleIn(items []*board.ChecklistItem, id int64, done bool) bool {
	for _, it := range items {
		if it.ID == id {
			it.Done = done
			cascadeDone(it.Children, done)
			return true
		}
		if toggleIn(it.Children, id, done) {
			return true
		}
	}
	return false
}

func cascadeDone(items []*board.ChecklistItem, done bool) {
	for _, it := range items {
		it.Done = done
		cascadeDone(it.Children, done)
	}
}

func fixParents(items []*board.ChecklistItem) {
	for _, it := range items {
		if len(it.Children) == 0 {
			continue
		}
		fixParents(it.Children)
		all, none := true, true
		for _, ch := range it.Children {
			if ch.Done {
				none = false
			} else {
				all = false
			}
		}
		if all {
			it.Done = true
		} else if none {
			it.Done = false
		}
	}
}

// InsertChecklistChild appends child under the item with parentID. Returns
// false when the parent is not in the tree.
func InsertChecklistChild(items []*board.ChecklistItem, parentID int64, child *board.ChecklistItem) bool {
	for _, it := range items {
		if it.ID == parentID {
			it.Children = append(it.Children, child)
			return true
		}
		if InsertChecklistChild(it.Children, parentID, child) {
			return true
		}
	}
	return false
}

// RemoveChecklistItem deletes the item (and its subtree) from the forest and
// returns the possibly shortened root slice.
func RemoveChecklistItem(items []*board.ChecklistItem, id int64) ([]*board.ChecklistItem, bool) {
	for i, it := range items {
		if it.ID == id {
			return append(items[:i], items[i+1:]...), true
		}
		if children, ok := RemoveChecklistItem(it.Children, id); ok {
			it.Children = children
			return items, true
		}
	}
	return items, false
}

func CountChecklistTotal(items []*board.ChecklistItem) int {
	n := 0
	for _, it := range items {
		n++
		n += CountChecklistTotal(it.Children)
	}
	return n
}

func CountChecklistDone(items []*board.ChecklistItem) int {
	n := 0
	for _, it := range items {
		if it.Done {
			n++
		}
		n += CountChecklistDone(it.Children)
	}
	return n
}

// nextChecklistID derives an id from the creation time, bumped past any
// existing id so that two items created within the same millisecond stay
// distinct. Millisecond ids survive a JSON number round trip unchanged.
func nextChecklistID(items []*board.ChecklistItem, now time.Time) int64 {
	id := now.UnixMilli()
	if max := maxChecklistID(items); max >= id {
		id = max + 1
	}
	return id
}

func maxChecklistID(items []*board.ChecklistItem) int64 {
	var max int64
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
		if m := maxChecklistID(it.Children); m > max {
			max = m
		}
	}
	return max
}

// ChecklistProgress is the done/total ratio over the whole forest, 0 for an
// empty checklist.
func ChecklistProgress(items []*board.ChecklistItem) float64 {
	total := CountChecklistTotal(items)
	if total == 0 {
		return 0
	}
	return float64(CountChecklistDone(items)) / float64(total)
}
