package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"NavyNewsWatch/internal/catalog"
	"NavyNewsWatch/internal/config"
	"NavyNewsWatch/internal/fetcher"
	"NavyNewsWatch/internal/httpserver"
	"NavyNewsWatch/internal/infrastructure/scheduler"
	"NavyNewsWatch/internal/infrastructure/serpapi"
	"NavyNewsWatch/internal/infrastructure/storage"
	"NavyNewsWatch/internal/logging"
	"NavyNewsWatch/internal/usecase"
)

// Application wires config to the ingestion pipeline, storage, and the HTTP
// surface.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	server    *httpserver.Server
	scheduler *usecase.Scheduler
}

// New connects to Postgres, applies migrations, and builds the full wiring.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	if err := storage.Migrate(cfg.Database.DSN); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := storage.NewPostgresRepository(db)

	client := serpapi.NewClient(serpapi.Config{
		Endpoint:     cfg.SerpAPI.Endpoint,
		APIKey:       cfg.SerpAPI.APIKey,
		Engine:       cfg.SerpAPI.Engine,
		SearchDomain: cfg.SerpAPI.SearchDomain,
		Country:      cfg.SerpAPI.Country,
		Recency:      cfg.SerpAPI.Recency,
		ResultLimit:  cfg.SerpAPI.ResultLimit,
	}, nil)

	source := fetcher.New(client, baseLogger.With("component", "fetcher"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Catalog: catalog.New(cfg.CatalogGroups()),
		Source:  source,
		Store:   store,
		Pause:   cfg.Pipeline.Pause(),
		Logger:  baseLogger.With("component", "pipeline"),
	})

	handlers := &httpserver.Handlers{
		Pipeline: pipeline,
		Store:    store,
		Logger:   baseLogger.With("component", "http"),
		Started:  time.Now(),
	}
	server := httpserver.New(cfg.Server, baseLogger.With("component", "http"), handlers)

	var sched *usecase.Scheduler
	if interval := cfg.Scheduler.Interval(); interval > 0 {
		sched = usecase.NewScheduler(
			scheduler.NewIntervalScheduler(interval),
			pipeline,
			baseLogger.With("component", "scheduler"),
		)
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		server:    server,
		scheduler: sched,
	}, nil
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down
// gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		a.logger.Info("scheduler started", "interval", a.cfg.Scheduler.Interval())
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.close(context.Background())
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.close(shutdownCtx)
		return fmt.Errorf("stop http server: %w", err)
	}

	a.close(shutdownCtx)
	return nil
}

func (a *Application) close(ctx context.Context) {
	if a.scheduler != nil {
		_ = a.scheduler.Stop(ctx)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
