package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"issuecomb/app/adapters"
	"issuecomb/app/aggregator"
	"issuecomb/app/api"
	"issuecomb/app/cfg"
	"issuecomb/app/database"
	"issuecomb/app/marking"
	"issuecomb/app/registry"
	"issuecomb/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Issue Comb server", "version", appCfg.Version)

	// Database connection and migrations
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	kvRepo := database.NewKVRepository(db)

	// Project registry: built-in defaults plus optional overrides from disk
	reg := registry.New()
	if err := reg.LoadDir(appCfg.ProjectsDir); err != nil {
		slog.Warn("Failed to load project configurations", "dir", appCfg.ProjectsDir, "error", err)
	}
	slog.Info("Project registry loaded", "projects", len(reg.Projects()), "pools", len(reg.Pools()))

	// Platform adapters
	httpClient := &http.Client{Timeout: 30 * time.Second}
	adapterSet := adapters.NewSet(httpClient, adapters.Options{
		GitHubToken:      appCfg.GitHubToken,
		PhabricatorToken: appCfg.PhabricatorToken,
	})

	agg := aggregator.New(reg, adapterSet, kvRepo)
	markingStore := marking.NewStore(kvRepo)

	// Background snapshot refreshes for platforms served from cache
	scheduler := tasks.NewScheduler(reg, adapterSet, kvRepo)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", (time.Duration(appCfg.SnapshotInterval) * time.Second).String())

	// HTTP server
	resultCache := api.NewResultCache(time.Duration(appCfg.ResultCacheTTL) * time.Second)
	apiHandler := api.NewHandler(reg, agg, markingStore, resultCache)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
