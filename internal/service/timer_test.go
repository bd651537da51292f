package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_StartStop(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "timed"})
	require.NoError(t, err)

	require.NoError(t, svc.StartTimer(ctx, created.ID))
	clock.Advance(400 * time.Millisecond)
	require.NoError(t, svc.StopTimer(ctx, created.ID))

	logs, err := store.TimeLogs.ListByTask(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].End)
	assert.Equal(t, 400*time.Millisecond, logs[0].End.Sub(logs[0].Start))
}

func TestTimer_StartClosesPreviousInterval(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "timed"})
	require.NoError(t, err)

	require.NoError(t, svc.StartTimer(ctx, created.ID))
	clock.Advance(time.Minute)
	require.NoError(t, svc.StartTimer(ctx, created.ID))

	open, err := store.TimeLogs.ListOpenByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	logs, err := store.TimeLogs.ListByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestTimer_StopIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "idle"})
	require.NoError(t, err)

	require.NoError(t, svc.StopTimer(ctx, created.ID))
	logs, err := store.TimeLogs.ListByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTimer_MissingTaskIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(testTime)

	require.NoError(t, svc.StartTimer(ctx, 999))
	logs, err := store.TimeLogs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTimer_Toggle(t *testing.T) {
	ctx := context.Background()
	svc, store, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "toggled"})
	require.NoError(t, err)

	require.NoError(t, svc.ToggleTimer(ctx, created.ID))
	open, err := store.TimeLogs.ListOpenByTask(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)

	clock.Advance(time.Minute)
	require.NoError(t, svc.ToggleTimer(ctx, created.ID))
	open, err = store.TimeLogs.ListOpenByTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestElapsed_OpenIntervalGrows(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "running"})
	require.NoError(t, err)
	require.NoError(t, svc.StartTimer(ctx, created.ID))

	clock.Advance(10 * time.Minute)
	elapsed, running, err := svc.Elapsed(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, 10*time.Minute, elapsed)

	clock.Advance(5 * time.Minute)
	elapsed, _, err = svc.Elapsed(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, elapsed)
}

func TestTotalElapsed_SumsClosedAndOpen(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(testTime)

	created, err := svc.Create(ctx, defaultSnapshot(), CreateTask{Title: "mixed"})
	require.NoError(t, err)

	require.NoError(t, svc.StartTimer(ctx, created.ID))
	clock.Advance(time.Hour)
	require.NoError(t, svc.StopTimer(ctx, created.ID))
	clock.Advance(time.Hour)
	require.NoError(t, svc.StartTimer(ctx, created.ID))
	clock.Advance(30 * time.Minute)

	elapsed, running, err := svc.Elapsed(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, 90*time.Minute, elapsed)
}
