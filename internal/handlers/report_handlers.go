package handlers

import (
	"net/http"
	"time"

	"taskflow/internal/service"
)

type ReportHandler struct {
	svc *service.TaskService
}

func NewReportHandler(svc *service.TaskService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// dayParam reads the day query parameter, defaulting to today.
func dayParam(r *http.Request) string {
	if day := r.URL.Query().Get("day"); day != "" {
		return day
	}
	return time.Now().Format("2006-01-02")
}

func (h *ReportHandler) GetDayReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.DayReport(r.Context(), dayParam(r))
	if err != nil {
		serviceError(w, err, "day_report")
		return
	}
	responseWithBody(w, http.StatusOK, rep)
}

func (h *ReportHandler) GetWeekReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.WeekReport(r.Context(), dayParam(r))
	if err != nil {
		serviceError(w, err, "week_report")
		return
	}
	responseWithBody(w, http.StatusOK, rep)
}
