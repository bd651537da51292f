package service

import (
	"time"

	"taskflow/internal/models/board"
)

// Fractional ordering: a task's position inside a column is a float sort key,
// and inserting between two neighbours takes their midpoint. Keys are never
// rebalanced, so repeated insertions into the same gap can in principle
// exhaust float64 precision. Known limitation, left as is.

// ComputeInsertionOrder returns the sort key for a task dropped relative to
// siblings[targetIdx]. placeAfter selects the side of the target.
func ComputeInsertionOrder(siblings []*board.Task, targetIdx int, placeAfter bool) float64 {
	target := siblings[targetIdx]
	if placeAfter {
		if targetIdx+1 < len(siblings) {
			return (target.Order + siblings[targetIdx+1].Order) / 2
		}
		return target.Order + 1
	}
	if targetIdx > 0 {
		return (siblings[targetIdx-1].Order + target.Order) / 2
	}
	return target.Order - 1
}

// AppendOrder returns the sort key for a task dropped onto a column
// background: after the last sibling, or the current timestamp when the
// column is empty.
func AppendOrder(siblings []*board.Task, now time.Time) float64 {
	if len(siblings) == 0 {
		return float64(now.UnixMilli())
	}
	return siblings[len(siblings)-1].Order + 1
}

// placeAfterFor resolves the drop side for a move. Dragging upward inside the
// same column (target sits before the source) means "insert above the
// target"; every other drop lands after it. srcIdx is -1 when the task comes
// from another column.
func placeAfterFor(srcIdx, tgtIdx int) bool {
	return !(srcIdx != -1 && tgtIdx < srcIdx)
}
