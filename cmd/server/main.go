package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/expense-tracker/internal/application/service"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/config"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/db"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/handler"
	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, cfg.LogLevel).WithField("app", "expense-tracker")
	logger.SetDefaultLogger(log)

	log.Info("Starting expense tracker", map[string]interface{}{
		"addr":     cfg.Addr,
		"data_dir": cfg.DataDir,
	})

	badgerDB, err := db.OpenBadger(cfg.DataDir, cfg.SyncWrites)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"data_dir": cfg.DataDir,
			"error":    err.Error(),
		})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	repo := db.NewBadgerSnapshotRepository(badgerDB, log.WithField("component", "storage"))

	tracker, err := service.OpenTracker(context.Background(), repo,
		service.WithLogger(log.WithField("component", "tracker")))
	if err != nil {
		log.Error("Failed to open tracker", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	views := service.NewViewService(tracker, tracker.RateTable(), log.WithField("component", "views"))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.NewRouter(tracker, views, log.WithField("component", "http")),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	log.Info("Server listening", map[string]interface{}{
		"addr": cfg.Addr,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server error", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		<-done
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := tracker.Close(ctx); err != nil {
		log.Error("Failed to flush tracker state", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	log.Info("Server stopped gracefully", nil)
}
