package handlers

import (
	"encoding/json"
	"net/http"

	"taskflow/internal/handlers/dto"
	"taskflow/internal/models/board"
	"taskflow/internal/service"
)

type CommentHandler struct {
	svc *service.TaskService
}

func NewCommentHandler(svc *service.TaskService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// anchorFrom builds the comment anchor out of a request carrying either a
// task id or a day key, never both.
func anchorFrom(taskID int64, day string) (board.CommentAnchor, bool) {
	switch {
	case taskID > 0 && day == "":
		return board.TaskAnchor(taskID), true
	case taskID == 0 && day != "":
		if _, err := service.ParseDayKey(day); err != nil {
			return board.CommentAnchor{}, false
		}
		return board.DayAnchor(day), true
	}
	return board.CommentAnchor{}, false
}

func (h *CommentHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	var request dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if request.Text == "" {
		responseWithError(w, http.StatusBadRequest, "text must not be empty")
		return
	}
	anchor, ok := anchorFrom(request.TaskID, request.Day)
	if !ok {
		responseWithError(w, http.StatusBadRequest, "exactly one of task_id or day (YYYY-MM-DD) is required")
		return
	}

	c, err := h.svc.AddComment(r.Context(), anchor, request.Text, request.Author)
	if err != nil {
		serviceError(w, err, "post_comment")
		return
	}
	responseWithBody(w, http.StatusCreated, c)
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var taskID int64
	if raw := q.Get("task_id"); raw != "" {
		id, ok := parsePositive(raw)
		if !ok {
			responseWithError(w, http.StatusBadRequest, "invalid task_id")
			return
		}
		taskID = id
	}
	anchor, ok := anchorFrom(taskID, q.Get("day"))
	if !ok {
		responseWithError(w, http.StatusBadRequest, "exactly one of task_id or day (YYYY-MM-DD) is required")
		return
	}

	comments, err := h.svc.ListComments(r.Context(), anchor)
	if err != nil {
		serviceError(w, err, "list_comments")
		return
	}
	responseWithBody(w, http.StatusOK, comments)
}

func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var request struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Text == "" {
		responseWithError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	c, err := h.svc.EditComment(r.Context(), id, request.Text)
	if err != nil {
		serviceError(w, err, "edit_comment")
		return
	}
	responseWithBody(w, http.StatusOK, c)
}

func (h *CommentHandler) SetPinned(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var request struct {
		Pinned bool `json:"pinned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	c, err := h.svc.SetCommentPinned(r.Context(), id, request.Pinned)
	if err != nil {
		serviceError(w, err, "pin_comment")
		return
	}
	responseWithBody(w, http.StatusOK, c)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := h.svc.DeleteComment(r.Context(), id); err != nil {
		serviceError(w, err, "delete_comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
