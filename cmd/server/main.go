package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"answerforge/internal/api"
	"answerforge/internal/config"
	"answerforge/internal/gen"
	"answerforge/internal/history"
	"answerforge/internal/pipeline"
	"answerforge/internal/refchunk"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	generator, err := gen.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error("gemini client init failed", "error", err)
		os.Exit(1)
	}

	hist := history.New(cfg.HistoryPath)

	runner := pipeline.NewRunner(generator, hist, log, pipeline.Config{
		BatchSize:       cfg.BatchSize,
		MinCallDelay:    cfg.MinCallDelay,
		MaxSessionCalls: cfg.MaxSessionCalls,
		ChunkOpts: refchunk.Options{
			MaxChunkSize: cfg.MaxChunkSize,
			MaxChunks:    cfg.MaxChunks,
		},
		CodeWrapWidth:       cfg.CodeWrapWidth,
		ProgrammingSubjects: cfg.ProgrammingSubjects,
		OutputDir:           cfg.OutputDir,
	})

	jobs := pipeline.NewJobStore(cfg.JobTTL)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				jobs.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	srv := api.NewServer(runner, jobs, hist, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		generator.Close()
	}()

	log.Info("starting answerforge", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
