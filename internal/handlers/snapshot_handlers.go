package handlers

import (
	"io"
	"net/http"

	"taskflow/internal/service"
)

// importBodyLimit caps an uploaded snapshot at 32 MiB.
const importBodyLimit = 32 << 20

type SnapshotHandler struct {
	svc *service.TaskService
}

func NewSnapshotHandler(svc *service.TaskService) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

func (h *SnapshotHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(r.Context())
	if err != nil {
		serviceError(w, err, "export_snapshot")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="taskflow-export.json"`)
	responseWithBody(w, http.StatusOK, doc)
}

func (h *SnapshotHandler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, importBodyLimit))
	if err != nil {
		responseWithError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}

	if err := h.svc.Import(r.Context(), data); err != nil {
		serviceError(w, err, "import_snapshot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
