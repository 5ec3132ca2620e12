// Package main is the entry point for the consolidator worker binary.
// The worker long-polls SQS for S3 notifications, merges each referenced
// source object into the consolidated head-to-head table, and exposes
// GET /healthz and /readyz over HTTP.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"matchlake/internal/config"
	"matchlake/internal/h2h"
	"matchlake/internal/intake"
	"matchlake/internal/merge"
	"matchlake/internal/service"
	"matchlake/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	if cfg.QueueURL == "" {
		return fmt.Errorf("QUEUE_URL is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	policy, err := buildPolicy(cfg)
	if err != nil {
		return err
	}

	store := storage.NewS3Store(cfg)
	consolidator := service.New(store, cfg.LakeBucket, cfg.TableKey, policy, logger)

	sqsOpts := sqs.Options{Region: cfg.S3Region}
	if cfg.HasS3Credentials() {
		sqsOpts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3KeyID, cfg.S3Secret, "")
	}
	worker := intake.NewWorker(sqs.New(sqsOpts), cfg.QueueURL, consolidator, logger)
	worker.WaitTimeSeconds = int32(cfg.WaitTimeSeconds)
	worker.FreeOSMemory = cfg.FreeOSMemory

	// Health listener
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"table":  fmt.Sprintf("s3://%s/%s", cfg.LakeBucket, cfg.TableKey),
		})
	})
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		logger.Info("health listener started", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health listener", "error", err)
		}
	}()

	logger.Info("consolidator started",
		"queue", cfg.QueueURL,
		"table", fmt.Sprintf("s3://%s/%s", cfg.LakeBucket, cfg.TableKey))

	err = worker.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("consolidator stopped")
	return err
}

// buildPolicy assembles the merge policy table, applying the optional
// odds override file on top of the defaults.
func buildPolicy(cfg *config.Config) (*merge.Policy, error) {
	if cfg.PolicyFile == "" {
		return h2h.DefaultPolicy(), nil
	}
	pf, err := config.LoadPolicyFile(cfg.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("merge policy: %w", err)
	}
	ts := pf.Odds.TimestampColumn
	if ts == "" {
		ts = h2h.TimestampColumn
	}
	recent := pf.Odds.Recent
	if len(recent) == 0 {
		recent = h2h.RecentColumns()
	}
	oldest := pf.Odds.Oldest
	if len(oldest) == 0 {
		oldest = h2h.OldestColumns()
	}
	return h2h.PolicyWithOdds(ts, recent, oldest), nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
