package handlers

import (
	"encoding/json"
	"net/http"

	"taskflow/internal/handlers/dto"
	"taskflow/internal/service"
)

type ChecklistHandler struct {
	svc *service.TaskService
}

func NewChecklistHandler(svc *service.TaskService) *ChecklistHandler {
	return &ChecklistHandler{svc: svc}
}

func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var request dto.ChecklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if request.Text == "" {
		responseWithError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	item, err := h.svc.AddChecklistItem(r.Context(), taskID, request.ParentID, request.Text)
	if err != nil {
		serviceError(w, err, "add_checklist_item")
		return
	}
	responseWithBody(w, http.StatusCreated, item)
}

func (h *ChecklistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid checklist item id")
		return
	}

	var request dto.ToggleChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.ToggleChecklistItem(r.Context(), taskID, itemID, request.Done); err != nil {
		serviceError(w, err, "toggle_checklist_item")
		return
	}

	t, err := h.svc.Get(r.Context(), taskID)
	if err != nil {
		serviceError(w, err, "toggle_checklist_item")
		return
	}
	responseWithBody(w, http.StatusOK, dto.FromTask(t))
}

func (h *ChecklistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "id")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		responseWithError(w, http.StatusBadRequest, "invalid checklist item id")
		return
	}

	if err := h.svc.RemoveChecklistItem(r.Context(), taskID, itemID); err != nil {
		serviceError(w, err, "remove_checklist_item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
