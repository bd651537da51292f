package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskflow/internal/models/board"
)

func col(orders ...float64) []*board.Task {
	tasks := make([]*board.Task, len(orders))
	for i, o := range orders {
		tasks[i] = &board.Task{ID: int64(i + 1), Order: o}
	}
	return tasks
}

func TestComputeInsertionOrder_Midpoint(t *testing.T) {
	siblings := col(10, 20)

	// Dropping after the first sibling lands between 10 and 20.
	got := ComputeInsertionOrder(siblings, 0, true)
	assert.Equal(t, 15.0, got)

	// Dropping before the second sibling lands in the same gap.
	got = ComputeInsertionOrder(siblings, 1, false)
	assert.Equal(t, 15.0, got)
}

func TestComputeInsertionOrder_Edges(t *testing.T) {
	siblings := col(10, 20, 30)

	assert.Equal(t, 9.0, ComputeInsertionOrder(siblings, 0, false))
	assert.Equal(t, 31.0, ComputeInsertionOrder(siblings, 2, true))
}

func TestComputeInsertionOrder_RepeatedMidpoints(t *testing.T) {
	siblings := col(10, 20)

	first := ComputeInsertionOrder(siblings, 0, true)
	assert.Equal(t, 15.0, first)

	siblings = col(10, first, 20)
	second := ComputeInsertionOrder(siblings, 0, true)
	assert.Equal(t, 12.5, second)
}

func TestAppendOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Empty column takes the timestamp key.
	assert.Equal(t, float64(now.UnixMilli()), AppendOrder(nil, now))

	// Otherwise one past the last sibling.
	assert.Equal(t, 31.0, AppendOrder(col(10, 20, 30), now))
}

func TestPlaceAfterFor(t *testing.T) {
	// Dragging upward in the same column places before the target.
	assert.False(t, placeAfterFor(2, 0))

	// Dragging downward places after.
	assert.True(t, placeAfterFor(0, 2))

	// Coming from another column always places after.
	assert.True(t, placeAfterFor(-1, 0))
}
