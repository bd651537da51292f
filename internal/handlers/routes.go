package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"taskflow/internal/middleware"
	"taskflow/internal/service"
)

// NewRouter assembles the full HTTP surface. The live elapsed source may be
// nil.
func NewRouter(svc *service.TaskService, live LiveElapsed) *chi.Mux {
	taskHandler := NewTaskHandler(svc)
	timerHandler := NewTimerHandler(svc, live)
	checklistHandler := NewChecklistHandler(svc)
	commentHandler := NewCommentHandler(svc)
	settingsHandler := NewSettingsHandler(svc)
	reportHandler := NewReportHandler(svc)
	snapshotHandler := NewSnapshotHandler(svc)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(300))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)  // GET /tasks
		r.Post("/", taskHandler.PostTask)  // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}

			r.Post("/move", taskHandler.MoveTask)       // POST /tasks/{id}/move
			r.Post("/advance", taskHandler.AdvanceTask) // POST /tasks/{id}/advance

			r.Post("/labels", taskHandler.AddLabel)      // POST /tasks/{id}/labels
			r.Delete("/labels", taskHandler.RemoveLabel) // DELETE /tasks/{id}/labels?label=

			r.Post("/timer/start", timerHandler.StartTimer)   // POST /tasks/{id}/timer/start
			r.Post("/timer/stop", timerHandler.StopTimer)     // POST /tasks/{id}/timer/stop
			r.Post("/timer/toggle", timerHandler.ToggleTimer) // POST /tasks/{id}/timer/toggle
			r.Get("/elapsed", timerHandler.GetElapsed)        // GET /tasks/{id}/elapsed

			r.Post("/checklist", checklistHandler.AddItem) // POST /tasks/{id}/checklist
			r.Route("/checklist/{itemID}", func(r chi.Router) {
				r.Put("/", checklistHandler.ToggleItem)    // PUT /tasks/{id}/checklist/{itemID}
				r.Delete("/", checklistHandler.RemoveItem) // DELETE /tasks/{id}/checklist/{itemID}
			})
		})
	})

	r.Get("/board", taskHandler.GetBoard) // GET /board?project_id=

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", commentHandler.ListComments) // GET /comments?task_id= | ?day=
		r.Post("/", commentHandler.PostComment) // POST /comments

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", commentHandler.EditComment)      // PUT /comments/{id}
			r.Put("/pin", commentHandler.SetPinned)     // PUT /comments/{id}/pin
			r.Delete("/", commentHandler.DeleteComment) // DELETE /comments/{id}
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", settingsHandler.GetSettings) // GET /settings
		r.Put("/", settingsHandler.PutSettings) // PUT /settings
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/day", reportHandler.GetDayReport)   // GET /reports/day?day=
		r.Get("/week", reportHandler.GetWeekReport) // GET /reports/week?day=
	})

	r.Route("/snapshot", func(r chi.Router) {
		r.Get("/export", snapshotHandler.ExportSnapshot) // GET /snapshot/export
		r.Post("/import", snapshotHandler.ImportSnapshot) // POST /snapshot/import
	})

	r.Get("/timers/live", timerHandler.GetLiveElapsed) // GET /timers/live
	r.Get("/health", taskHandler.HealthCheck)          // GET /health

	return r
}
