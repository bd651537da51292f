package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/handlers"
	"taskflow/internal/handlers/dto"
	"taskflow/internal/logger"
	"taskflow/internal/repository/inmemory"
	"taskflow/internal/service"
)

func TestMain(m *testing.M) {
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.NewTaskService(inmemory.NewStore().Repositories())
	srv := httptest.NewServer(handlers.NewRouter(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createTask(t *testing.T, srv *httptest.Server, title string) dto.TaskResponse {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", dto.CreateTaskRequest{Title: title})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.TaskResponse](t, resp)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPostTask(t *testing.T) {
	srv := newTestServer(t)

	created := createTask(t, srv, "ship release")
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Backlog", created.Column.Status)
	assert.Equal(t, "default", created.ProjectID)
}

func TestPostTask_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", dto.CreateTaskRequest{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/tasks", dto.CreateTaskRequest{
		Title:  "bad column",
		Column: &dto.ColumnRef{Status: "NoSuchStatus"},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTask_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/tasks/99")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "NOT_FOUND", body["error"])
}

func TestUpdateTask(t *testing.T) {
	srv := newTestServer(t)
	created := createTask(t, srv, "draft")

	title := "final"
	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/tasks/%d", srv.URL, created.ID),
		dto.UpdateTaskRequest{Title: &title})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.TaskResponse](t, resp)
	assert.Equal(t, "final", updated.Title)
}

func TestDeleteTask(t *testing.T) {
	srv := newTestServer(t)
	created := createTask(t, srv, "doomed")

	resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", srv.URL, created.ID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/tasks/%d", srv.URL, created.ID))
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestMoveTask_ToTodayQueue(t *testing.T) {
	srv := newTestServer(t)
	created := createTask(t, srv, "focus")

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/tasks/%d/move", srv.URL, created.ID),
		dto.MoveTaskRequest{Column: dto.ColumnRef{Today: true}})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/tasks/%d", srv.URL, created.ID))
	require.NoError(t, err)
	got := decode[dto.TaskResponse](t, getResp)
	assert.True(t, got.Column.Today)
	assert.NotEmpty(t, got.TodayDate)
}

func TestMoveTask_BetweenSiblings(t *testing.T) {
	srv := newTestServer(t)
	// Creation timestamps double as sort keys; space them out.
	a := createTask(t, srv, "a")
	time.Sleep(2 * time.Millisecond)
	b := createTask(t, srv, "b")
	time.Sleep(2 * time.Millisecond)
	c := createTask(t, srv, "c")

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/tasks/%d/move", srv.URL, c.ID),
		dto.MoveTaskRequest{Column: dto.ColumnRef{Status: "Backlog"}, TargetTaskID: b.ID})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/tasks/%d", srv.URL, c.ID))
	require.NoError(t, err)
	got := decode[dto.TaskResponse](t, getResp)
	assert.Less(t, got.Order, b.Order)
	assert.Greater(t, got.Order, a.Order)
}

func TestTimerEndpoints(t *testing.T) {
	srv := newTestServer(t)
	created := createTask(t, srv, "timed")

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/tasks/%d/timer/start", srv.URL, created.ID), nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/tasks/%d/elapsed", srv.URL, created.ID))
	require.NoError(t, err)
	body := decode[map[string]any](t, getResp)
	assert.Equal(t, true, body["running"])

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/tasks/%d/timer/stop", srv.URL, created.ID), nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err = http.Get(fmt.Sprintf("%s/tasks/%d/elapsed", srv.URL, created.ID))
	require.NoError(t, err)
	body = decode[map[string]any](t, getResp)
	assert.Equal(t, false, body["running"])
}

func TestChecklistEndpoints(t *testing.T) {
	srv := newTestServer(t)
	created := createTask(t, srv, "with list")

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/tasks/%d/checklist", srv.URL, created.ID),
		dto.ChecklistItemRequest{Text: "step one"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[map[string]any](t, resp)
	itemID := int64(item["id"].(float64))

	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/tasks/%d/checklist/%d", srv.URL, created.ID, itemID),
		dto.ToggleChecklistRequest{Done: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.TaskResponse](t, resp)
	assert.Equal(t, 1, got.ChecklistDone)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/tasks/%d/checklist/%d", srv.URL, created.ID, itemID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCommentEndpoints(t *testing.T) {
	srv := newTestServer(t)
	created := createTask(t, srv, "discussed")

	resp := doJSON(t, http.MethodPost, srv.URL+"/comments",
		dto.CommentRequest{TaskID: created.ID, Text: "looks good"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Both anchors at once is rejected.
	resp = doJSON(t, http.MethodPost, srv.URL+"/comments",
		dto.CommentRequest{TaskID: created.ID, Day: "2024-06-01", Text: "?"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	listResp, err := http.Get(fmt.Sprintf("%s/comments?task_id=%d", srv.URL, created.ID))
	require.NoError(t, err)
	comments := decode[[]map[string]any](t, listResp)
	require.Len(t, comments, 1)
}

func TestSettingsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	getResp, err := http.Get(srv.URL + "/settings")
	require.NoError(t, err)
	snap := decode[map[string]any](t, getResp)
	assert.NotEmpty(t, snap["statuses"])

	show := false
	resp := doJSON(t, http.MethodPut, srv.URL+"/settings", dto.SettingsRequest{ShowToday: &show})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[map[string]any](t, resp)
	assert.Equal(t, false, updated["showToday"])
}

func TestReportEndpoints(t *testing.T) {
	srv := newTestServer(t)

	getResp, err := http.Get(srv.URL + "/reports/week?day=2024-01-03")
	require.NoError(t, err)
	rep := decode[map[string]any](t, getResp)
	assert.Equal(t, float64(1), rep["weekNumber"])

	badResp, err := http.Get(srv.URL + "/reports/day?day=garbage")
	require.NoError(t, err)
	badResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestSnapshotEndpoints(t *testing.T) {
	srv := newTestServer(t)
	createTask(t, srv, "exported")

	getResp, err := http.Get(srv.URL + "/snapshot/export")
	require.NoError(t, err)
	doc := decode[map[string]any](t, getResp)
	assert.Len(t, doc["tasks"], 1)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/snapshot/import", bytes.NewReader([]byte("{broken")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
