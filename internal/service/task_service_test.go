package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/models/board"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

func defaultSnapshot() board.Snapshot {
	return board.Snapshot{
		Statuses:      board.DefaultStatuses(),
		Projects:      board.DefaultProjects(),
		HiddenColumns: []string{},
		ShowToday:     true,
	}
}

func TestCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)
	snap := defaultSnapshot()

	created, err := svc.Create(ctx, snap, CreateTask{Title: "write report"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, snap.FirstStatus(), created.Status)
	assert.Equal(t, board.PriorityNormal, created.Priority)
	assert.Equal(t, board.DefaultProjectID, created.ProjectID)
	assert.Equal(t, snap.StatusColor(created.Status), created.Color)
	assert.Equal(t, float64(testTime.UnixMilli()), created.Order)
	require.Len(t, created.StatusHistory, 1)
	assert.Equal(t, created.Status, created.StatusHistory[0].Status)
}

func TestCreate_IntoTodayQueue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)
	today := board.TodayColumn()

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "focus", Column: &today})
	require.NoError(t, err)

	assert.True(t, created.Column().Today)
	assert.Equal(t, "2024-06-01", created.TodayDate)
	// The today queue is not a workflow state, so no history entry.
	assert.Empty(t, created.StatusHistory)
}

func TestCreate_AutoStartTimer(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "deep work", AutoStartTimer: true})
	require.NoError(t, err)

	open, err := store.TimeLogs.ListOpenByTask(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, testTime, open[0].Start)
}

func TestUpdate_Options(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "old"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	due := testTime.Add(48 * time.Hour)
	updated, err := svc.Update(ctx, created.ID,
		WithTitle("new"),
		WithPriority(board.PriorityHigh),
		WithDueAt(&due),
	)
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, board.PriorityHigh, updated.Priority)
	assert.Equal(t, due, *updated.DueAt)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)
}

func TestUpdate_RemindAtResetsLastReminded(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "call"})
	require.NoError(t, err)

	fired := testTime.Add(-time.Hour)
	created.LastRemindedAt = &fired
	require.NoError(t, store.Tasks.Update(ctx, created))

	remind := testTime.Add(time.Hour)
	updated, err := svc.Update(ctx, created.ID, WithRemindAt(&remind))
	require.NoError(t, err)

	assert.Equal(t, remind, *updated.RemindAt)
	assert.Nil(t, updated.LastRemindedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(testTime)

	_, err := svc.Update(context.Background(), 42, WithTitle("x"))
	var businessErr *BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, CodeNotFound, businessErr.Code)
}

func TestDelete_Cascade(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "doomed"})
	require.NoError(t, err)
	require.NoError(t, svc.StartTimer(ctx, created.ID))
	_, err = svc.AddComment(ctx, board.TaskAnchor(created.ID), "note", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	logs, err := store.TimeLogs.ListByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
	comments, err := store.Comments.ListByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// Deleting again is a silent no-op.
	assert.NoError(t, svc.Delete(ctx, created.ID))
}

func TestLabels_AddDedupRemove(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "labelled"})
	require.NoError(t, err)

	_, err = svc.AddLabel(ctx, created.ID, "urgent")
	require.NoError(t, err)
	got, err := svc.AddLabel(ctx, created.ID, "urgent")
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, got.Labels)

	got, err = svc.RemoveLabel(ctx, created.ID, "urgent")
	require.NoError(t, err)
	assert.Empty(t, got.Labels)
}

func TestChecklist_ServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "with list"})
	require.NoError(t, err)

	root, err := svc.AddChecklistItem(ctx, created.ID, 0, "parent")
	require.NoError(t, err)
	child, err := svc.AddChecklistItem(ctx, created.ID, root.ID, "child")
	require.NoError(t, err)

	require.NoError(t, svc.ToggleChecklistItem(ctx, created.ID, child.ID, true))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Checklist, 1)
	// The only child is done, so the parent followed.
	assert.True(t, got.Checklist[0].Done)

	require.NoError(t, svc.RemoveChecklistItem(ctx, created.ID, root.ID))
	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Checklist)
}

func TestAddChecklistItem_UnknownParent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "t"})
	require.NoError(t, err)

	_, err = svc.AddChecklistItem(ctx, created.ID, 12345, "orphan")
	var businessErr *BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, CodeNotFound, businessErr.Code)
}

func TestComments_PinnedFirstThenNewest(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "discussed"})
	require.NoError(t, err)
	anchor := board.TaskAnchor(created.ID)

	first, err := svc.AddComment(ctx, anchor, "first", "")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = svc.AddComment(ctx, anchor, "second", "")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	third, err := svc.AddComment(ctx, anchor, "third", "")
	require.NoError(t, err)

	_, err = svc.SetCommentPinned(ctx, first.ID, true)
	require.NoError(t, err)

	list, err := svc.ListComments(ctx, anchor)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "third", list[1].Text)
	assert.Equal(t, "second", list[2].Text)

	// Editing bumps the comment's timestamp.
	clock.Advance(time.Minute)
	edited, err := svc.EditComment(ctx, third.ID, "third v2")
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), edited.At)
}

func TestComments_DayAnchor(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(testTime)

	_, err := svc.AddComment(ctx, board.DayAnchor("2024-06-01"), "journal", "")
	require.NoError(t, err)

	list, err := svc.ListComments(ctx, board.DayAnchor("2024-06-01"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Anchor.IsDay())

	other, err := svc.ListComments(ctx, board.DayAnchor("2024-06-02"))
	require.NoError(t, err)
	assert.Empty(t, other)
}
