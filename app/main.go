package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lysyi3m/devto-feed/app/api"
	"github.com/lysyi3m/devto-feed/app/cfg"
	"github.com/lysyi3m/devto-feed/app/config"
	"github.com/lysyi3m/devto-feed/app/database"
	"github.com/lysyi3m/devto-feed/app/devto"
	"github.com/lysyi3m/devto-feed/app/feed"
	"github.com/lysyi3m/devto-feed/app/state"
	"github.com/lysyi3m/devto-feed/app/tasks"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 2
	exitFetch   = 3
	exitState   = 4
	exitOutput  = 5
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	appCfg, err := cfg.Load(args)
	if err != nil {
		// go-flags has already printed the parse error
		return exitConfig
	}
	if appCfg == nil {
		return exitOK
	}

	setupLogger(appCfg.Debug)

	siteConfig, err := config.Load(appCfg.ConfigPath)
	if err != nil {
		slog.Error("Failed to load site configuration", "path", appCfg.ConfigPath, "error", err)
		return exitCode(err)
	}

	runRepo, closeDB, err := openHistory(appCfg.HistoryDB)
	if err != nil {
		slog.Error("Failed to open run history", "path", appCfg.HistoryDB, "error", err)
		return exitFailure
	}
	defer closeDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.Serve {
		if err := serve(ctx, appCfg, siteConfig, runRepo); err != nil {
			slog.Error("Server error", "error", err)
			return exitFailure
		}
		return exitOK
	}

	if err := build(ctx, appCfg, siteConfig, runRepo, stdout); err != nil {
		slog.Error("Build failed", "error", err)
		return exitCode(err)
	}
	return exitOK
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openHistory returns a nil repository when no history database is configured.
func openHistory(path string) (database.RunRepository, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}

	db, err := database.NewConnection(path)
	if err != nil {
		return nil, nil, err
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Debug("Run history ready", "path", path, "schema_version", version, "dirty", dirty)

	return database.NewRunRepository(db), func() { db.Close() }, nil
}

func build(ctx context.Context, appCfg *cfg.Cfg, siteConfig *config.Config, runRepo database.RunRepository, stdout io.Writer) error {
	client := devto.NewClient(&http.Client{Timeout: siteConfig.GetTimeout()}, siteConfig.APIURL, appCfg.UserAgent)

	var history tasks.RunRecorder
	if runRepo != nil {
		history = runRepo
	}

	task := tasks.NewBuildFeedTask(siteConfig, tasks.BuildOptions{
		StatePath: appCfg.StatePath,
		Output: feed.Output{
			FeedPath:      appCfg.OutPath,
			IndexPath:     appCfg.IndexPath,
			LastBuildPath: appCfg.LastBuildPath,
		},
		DryRun:  appCfg.DryRun,
		Version: appCfg.Version,
	}, client, client, history)

	task.Start()
	if err := task.Execute(ctx); err != nil {
		return err
	}

	if appCfg.DryRun {
		fmt.Fprintf(stdout, "dry-run: merged=%d stored=%d entries=%d\n",
			task.Result.Merged, task.Result.Stored, task.Result.Entries)
	}
	return nil
}

func serve(ctx context.Context, appCfg *cfg.Cfg, siteConfig *config.Config, runRepo database.RunRepository) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := api.NewHandler(siteConfig, api.Paths{
		State:     appCfg.StatePath,
		Feed:      appCfg.OutPath,
		Index:     appCfg.IndexPath,
		LastBuild: appCfg.LastBuildPath,
	}, runRepo, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler, api.NewMetrics(reg), reg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "feed_path", siteConfig.FeedPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server gracefully")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig):
		return exitConfig
	case errors.Is(err, devto.ErrFetch):
		return exitFetch
	case errors.Is(err, state.ErrStoreRead),
		errors.Is(err, state.ErrStoreCorrupt),
		errors.Is(err, state.ErrStoreWrite):
		return exitState
	case errors.Is(err, feed.ErrRender), errors.Is(err, feed.ErrOutput):
		return exitOutput
	default:
		return exitFailure
	}
}
