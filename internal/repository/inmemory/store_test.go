package inmemory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/models/board"
	"taskflow/internal/repository"
	"taskflow/internal/repository/inmemory"
)

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	id1, err := store.Tasks.Create(ctx, &board.Task{Title: "a"})
	require.NoError(t, err)
	id2, err := store.Tasks.Create(ctx, &board.Task{Title: "b"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestStore_GetReturnsClone(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	id, err := store.Tasks.Create(ctx, &board.Task{Title: "original", Labels: []string{"x"}})
	require.NoError(t, err)

	got, err := store.Tasks.GetByID(ctx, id)
	require.NoError(t, err)
	got.Title = "mutated"
	got.Labels[0] = "y"

	// The stored record is untouched until an explicit update.
	again, err := store.Tasks.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
	assert.Equal(t, []string{"x"}, again.Labels)
}

func TestStore_UpdateMissingTask(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	err := store.Tasks.Update(ctx, &board.Task{ID: 7})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_PutKeepsIDAndBumpsSequence(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	require.NoError(t, store.Tasks.Put(ctx, &board.Task{ID: 10, Title: "imported"}))

	got, err := store.Tasks.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "imported", got.Title)

	id, err := store.Tasks.Create(ctx, &board.Task{Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestStore_ListByColumnOrdering(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	for _, order := range []float64{30, 10, 20} {
		_, err := store.Tasks.Create(ctx, &board.Task{
			Title:     "t",
			Status:    "Todo",
			ProjectID: "default",
			Order:     order,
		})
		require.NoError(t, err)
	}
	_, err := store.Tasks.Create(ctx, &board.Task{Title: "other", Status: "Done", ProjectID: "default"})
	require.NoError(t, err)

	got, err := store.Tasks.ListByColumn(ctx, "default", "Todo")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 10.0, got[0].Order)
	assert.Equal(t, 20.0, got[1].Order)
	assert.Equal(t, 30.0, got[2].Order)
}

func TestStore_ListDueReminders(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	fired := now.Add(-30 * time.Minute)

	due, err := store.Tasks.Create(ctx, &board.Task{Title: "due", RemindAt: &past})
	require.NoError(t, err)
	_, err = store.Tasks.Create(ctx, &board.Task{Title: "not yet", RemindAt: &future})
	require.NoError(t, err)
	_, err = store.Tasks.Create(ctx, &board.Task{Title: "already fired", RemindAt: &past, LastRemindedAt: &fired})
	require.NoError(t, err)
	_, err = store.Tasks.Create(ctx, &board.Task{Title: "no reminder"})
	require.NoError(t, err)

	got, err := store.Tasks.ListDueReminders(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due, got[0].ID)
}

func TestStore_OpenTimeLogs(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()
	now := time.Now()

	end := now.Add(time.Hour)
	_, err := store.TimeLogs.Create(ctx, &board.TimeLog{TaskID: 1, Start: now, End: &end})
	require.NoError(t, err)
	openID, err := store.TimeLogs.Create(ctx, &board.TimeLog{TaskID: 1, Start: now})
	require.NoError(t, err)
	_, err = store.TimeLogs.Create(ctx, &board.TimeLog{TaskID: 2, Start: now})
	require.NoError(t, err)

	open, err := store.TimeLogs.ListOpenByTask(ctx, 1)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, openID, open[0].ID)

	require.NoError(t, store.TimeLogs.DeleteByTask(ctx, 1))
	logs, err := store.TimeLogs.ListByTask(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestStore_CommentAnchors(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	_, err := store.Comments.Create(ctx, &board.Comment{Anchor: board.TaskAnchor(1), Text: "on task"})
	require.NoError(t, err)
	_, err = store.Comments.Create(ctx, &board.Comment{Anchor: board.DayAnchor("2024-06-01"), Text: "on day"})
	require.NoError(t, err)

	byTask, err := store.Comments.ListByTask(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byTask, 1)
	assert.Equal(t, "on task", byTask[0].Text)

	byDay, err := store.Comments.ListByDay(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, byDay, 1)
	assert.Equal(t, "on day", byDay[0].Text)

	// Deleting a task's comments leaves day comments alone.
	require.NoError(t, store.Comments.DeleteByTask(ctx, 1))
	all, err := store.Comments.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Anchor.IsDay())
}

func TestStore_Settings(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	_, err := store.Settings.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Settings.Put(ctx, "showToday", []byte("true")))
	require.NoError(t, store.Settings.Put(ctx, "showToday", []byte("false")))

	got, err := store.Settings.Get(ctx, "showToday")
	require.NoError(t, err)
	assert.Equal(t, []byte("false"), got)

	records, err := store.Settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "showToday", records[0].Key)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore().Repositories()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Tasks.Create(ctx, &board.Task{Title: "racer"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tasks, err := store.Tasks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 50)
}
