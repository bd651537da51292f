package handlers

import (
	"net/http"
	"time"

	"taskflow/internal/service"
)

// LiveElapsed exposes cached running-timer totals computed off the request
// path.
type LiveElapsed interface {
	Snapshot() map[int64]time.Duration
}

type TimerHandler struct {
	svc  *service.TaskService
	live LiveElapsed
}

// NewTimerHandler takes an optional live elapsed source; without one the live
// endpoint returns an empty map.
func NewTimerHandler(svc *service.TaskService, live LiveElapsed) *TimerHandler {
	return &TimerHandler{svc: svc, live: live}
}

func (h *TimerHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.svc.StartTimer(r.Context(), id); err != nil {
		serviceError(w, err, "start_timer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TimerHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.svc.StopTimer(r.Context(), id); err != nil {
		serviceError(w, err, "stop_timer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TimerHandler) ToggleTimer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.svc.ToggleTimer(r.Context(), id); err != nil {
		serviceError(w, err, "toggle_timer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TimerHandler) GetElapsed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	elapsed, running, err := h.svc.Elapsed(r.Context(), id)
	if err != nil {
		serviceError(w, err, "get_elapsed")
		return
	}
	responseWithJSON(w, http.StatusOK,
		toPayload("task_id", id),
		toPayload("elapsed_ms", elapsed.Milliseconds()),
		toPayload("running", running),
	)
}

// GetLiveElapsed serves the cached totals of all running timers in one call.
func (h *TimerHandler) GetLiveElapsed(w http.ResponseWriter, r *http.Request) {
	out := map[int64]int64{}
	if h.live != nil {
		for taskID, d := range h.live.Snapshot() {
			out[taskID] = d.Milliseconds()
		}
	}
	responseWithBody(w, http.StatusOK, out)
}
