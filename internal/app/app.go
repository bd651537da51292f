package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/config"
	"taskflow/internal/handlers"
	"taskflow/internal/logger"
	"taskflow/internal/repository"
	"taskflow/internal/repository/inmemory"
	"taskflow/internal/repository/postgres"
	"taskflow/internal/service"
	"taskflow/internal/worker"
)

type App struct {
	config    *config.Config
	server    *http.Server
	store     *repository.Store
	service   *service.TaskService
	reminder  *worker.ReminderWorker
	elapsed   *worker.ElapsedTicker
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: flushing logs")
		logger.Sync()
	})

	store, err := a.buildStore(ctx)
	if err != nil {
		return err
	}
	a.store = store
	a.service = service.NewTaskService(store)

	if err := a.service.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seeding default settings: %w", err)
	}

	a.reminder = worker.NewReminderWorker(store.Tasks, nil, a.config.Worker.ReminderInterval, 100)
	a.elapsed = worker.NewElapsedTicker(store.TimeLogs, a.config.Worker.ElapsedInterval)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      handlers.NewRouter(a.service, a.elapsed),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return nil
}

func (a *App) buildStore(ctx context.Context) (*repository.Store, error) {
	switch a.config.Repository.Type {
	case "postgres":
		pool, err := postgres.Connect(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, pool.Close)
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return postgres.NewStore(pool).Repositories(), nil
	case "inmemory", "":
		return inmemory.NewStore().Repositories(), nil
	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

// Run starts the workers and the HTTP server, then blocks until the context
// is cancelled and the server has drained.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	go a.reminder.Start(workerCtx)
	go a.elapsed.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App: server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("App: shutting down")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	return nil
}
