package handlers

import (
	"encoding/json"
	"net/http"

	"taskflow/internal/handlers/dto"
	"taskflow/internal/service"
)

type SettingsHandler struct {
	svc *service.TaskService
}

func NewSettingsHandler(svc *service.TaskService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		serviceError(w, err, "get_settings")
		return
	}
	responseWithBody(w, http.StatusOK, snap)
}

// PutSettings applies the sections present in the request and leaves the
// rest untouched.
func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var request dto.SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()
	if request.Statuses != nil {
		if len(*request.Statuses) == 0 {
			responseWithError(w, http.StatusBadRequest, "statuses must not be empty")
			return
		}
		if err := h.svc.SaveStatuses(ctx, *request.Statuses); err != nil {
			serviceError(w, err, "save_settings")
			return
		}
	}
	if request.Projects != nil {
		if err := h.svc.SaveProjects(ctx, *request.Projects); err != nil {
			serviceError(w, err, "save_settings")
			return
		}
	}
	if request.HiddenColumns != nil {
		if err := h.svc.SaveHiddenColumns(ctx, *request.HiddenColumns); err != nil {
			serviceError(w, err, "save_settings")
			return
		}
	}
	if request.ShowToday != nil {
		if err := h.svc.SaveShowToday(ctx, *request.ShowToday); err != nil {
			serviceError(w, err, "save_settings")
			return
		}
	}

	snap, err := h.svc.Snapshot(ctx)
	if err != nil {
		serviceError(w, err, "save_settings")
		return
	}
	responseWithBody(w, http.StatusOK, snap)
}
