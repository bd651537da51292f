package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/models/board"
)

func seedFilterTasks(t *testing.T, svc *TaskService) {
	t.Helper()
	ctx := context.Background()
	snap := defaultSnapshot()

	due := testTime.Add(24 * time.Hour)
	_, err := svc.Create(ctx, snap, CreateTask{Title: "fix login bug", Priority: board.PriorityHigh, DueAt: &due})
	require.NoError(t, err)
	_, err = svc.Create(ctx, snap, CreateTask{Title: "write changelog", ProjectID: "docs"})
	require.NoError(t, err)
	created, err := svc.Create(ctx, snap, CreateTask{Title: "deploy", Priority: board.PriorityCritical})
	require.NoError(t, err)
	_, err = svc.AddLabel(ctx, created.ID, "ops")
	require.NoError(t, err)
}

func TestListFiltered_ByFields(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)
	seedFilterTasks(t, svc)

	got, err := svc.ListFiltered(ctx, TaskFilter{ProjectID: "docs"}, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "write changelog", got[0].Title)

	got, err = svc.ListFiltered(ctx, TaskFilter{Label: "ops"}, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "deploy", got[0].Title)

	got, err = svc.ListFiltered(ctx, TaskFilter{Query: "LOGIN"}, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fix login bug", got[0].Title)
}

func TestListFiltered_Sorts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)
	seedFilterTasks(t, svc)

	got, err := svc.ListFiltered(ctx, TaskFilter{}, SortPriorityDesc)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "deploy", got[0].Title)
	assert.Equal(t, "fix login bug", got[1].Title)

	// Tasks without a due date sink to the end.
	got, err = svc.ListFiltered(ctx, TaskFilter{}, SortDueAsc)
	require.NoError(t, err)
	assert.Equal(t, "fix login bug", got[0].Title)
	assert.Nil(t, got[2].DueAt)
}

func TestBoard_GroupsByColumn(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)
	snap := defaultSnapshot()

	_, err := svc.Create(ctx, snap, CreateTask{Title: "backlogged"})
	require.NoError(t, err)
	today := board.TodayColumn()
	_, err = svc.Create(ctx, snap, CreateTask{Title: "queued", Column: &today})
	require.NoError(t, err)

	cols, err := svc.Board(ctx, snap, TaskFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, cols)

	assert.True(t, cols[0].Column.Today)
	require.Len(t, cols[0].Tasks, 1)
	assert.Equal(t, "queued", cols[0].Tasks[0].Title)

	require.Len(t, cols[1].Tasks, 1)
	assert.Equal(t, "backlogged", cols[1].Tasks[0].Title)
}
