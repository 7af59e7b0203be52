package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/snsclone-go/mockapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory backend for local development",
	Long: `Starts a throwaway copy of the backend REST API on MOCK_PORT.
Accounts, posts and uploads live in memory and are lost on exit.

Requires MOCK_JWT_SECRET. Prometheus metrics are served on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireMock(); err != nil {
		return err
	}

	backend := mockapi.New(cfg.Mock, mockapi.WithLogger(logger.Named("mockapi")))
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", backend.Router())

	addr := fmt.Sprintf(":%s", cfg.Mock.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}
