package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/handlers/dto"
	"taskflow/internal/logger"
	"taskflow/internal/models/board"
	"taskflow/internal/service"
)

// TaskHandler serves the task lifecycle and board endpoints. Every request
// resolves the settings snapshot first so moves and creates see the current
// column layout.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	healthCheck(w)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.TaskFilter{
		ProjectID: q.Get("project_id"),
		Status:    q.Get("status"),
		Priority:  board.Priority(q.Get("priority")),
		Label:     q.Get("label"),
		Query:     q.Get("q"),
	}

	tasks, err := h.svc.ListFiltered(r.Context(), filter, q.Get("sort"))
	if err != nil {
		serviceError(w, err, "list_tasks")
		return
	}
	responseWithBody(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (h *TaskHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		serviceError(w, err, "get_board")
		return
	}
	filter := service.TaskFilter{ProjectID: r.URL.Query().Get("project_id")}
	cols, err := h.svc.Board(r.Context(), snap, filter)
	if err != nil {
		serviceError(w, err, "get_board")
		return
	}

	type columnResponse struct {
		Column dto.ColumnRef      `json:"column"`
		Tasks  []dto.TaskResponse `json:"tasks"`
	}
	out := make([]columnResponse, len(cols))
	for i, c := range cols {
		out[i] = columnResponse{
			Column: dto.FromColumn(c.Column),
			Tasks:  dto.FromTaskList(c.Tasks),
		}
	}
	responseWithBody(w, http.StatusOK, out)
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: bad JSON body", zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: validation failed",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "title must not be empty")
		return
	}

	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		serviceError(w, err, "create_task")
		return
	}

	in := service.CreateTask{
		Title:          request.Title,
		Description:    request.Description,
		ProjectID:      request.ProjectID,
		DueAt:          request.DueAt,
		Priority:       request.Priority,
		Color:          request.Color,
		AutoStartTimer: request.AutoStartTimer,
	}
	if request.Column != nil {
		col := request.Column.ToColumn()
		if !col.Today && !snap.HasStatus(col.Status) {
			responseWithError(w, http.StatusBadRequest, "unknown status: "+col.Status)
			return
		}
		in.Column = &col
	}

	t, err := h.svc.Create(r.Context(), snap, in)
	if err != nil {
		serviceError(w, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.Int64("task_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))
	responseWithBody(w, http.StatusCreated, dto.FromTask(t))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get_task")
		return
	}
	responseWithBody(w, http.StatusOK, dto.FromTask(t))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var request dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var options []service.TaskOption
	if request.Title != nil {
		options = append(options, service.WithTitle(*request.Title))
	}
	if request.Description != nil {
		options = append(options, service.WithDescription(*request.Description))
	}
	if request.Color != nil {
		options = append(options, service.WithColor(*request.Color))
	}
	if request.Priority != nil {
		options = append(options, service.WithPriority(*request.Priority))
	}
	if request.ProjectID != nil {
		options = append(options, service.WithProjectID(*request.ProjectID))
	}
	if request.DueAt != nil || request.ClearDueAt {
		options = append(options, service.WithDueAt(request.DueAt))
	}
	if request.RemindAt != nil || request.ClearRemind {
		options = append(options, service.WithRemindAt(request.RemindAt))
	}
	if request.Labels != nil {
		options = append(options, service.WithLabels(*request.Labels))
	}

	t, err := h.svc.Update(r.Context(), id, options...)
	if err != nil {
		serviceError(w, err, "update_task")
		return
	}
	responseWithBody(w, http.StatusOK, dto.FromTask(t))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		serviceError(w, err, "delete_task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTask relocates a task to a column, optionally before or after a target
// sibling; target_task_id 0 appends.
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var request dto.MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		serviceError(w, err, "move_task")
		return
	}
	col := request.Column.ToColumn()
	if !col.Today && !snap.HasStatus(col.Status) {
		responseWithError(w, http.StatusBadRequest, "unknown status: "+col.Status)
		return
	}

	if err := h.svc.Move(r.Context(), snap, id, col, request.TargetTaskID); err != nil {
		serviceError(w, err, "move_task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdvanceTask bumps the task to the next configured status.
func (h *TaskHandler) AdvanceTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		serviceError(w, err, "advance_task")
		return
	}
	if err := h.svc.AdvanceStatus(r.Context(), snap, id); err != nil {
		serviceError(w, err, "advance_task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) AddLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var request struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Label == "" {
		responseWithError(w, http.StatusBadRequest, "label must not be empty")
		return
	}
	t, err := h.svc.AddLabel(r.Context(), id, request.Label)
	if err != nil {
		serviceError(w, err, "add_label")
		return
	}
	responseWithBody(w, http.StatusOK, dto.FromTask(t))
}

func (h *TaskHandler) RemoveLabel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	label := r.URL.Query().Get("label")
	if label == "" {
		responseWithError(w, http.StatusBadRequest, "label must not be empty")
		return
	}
	t, err := h.svc.RemoveLabel(r.Context(), id, label)
	if err != nil {
		serviceError(w, err, "remove_label")
		return
	}
	responseWithBody(w, http.StatusOK, dto.FromTask(t))
}
