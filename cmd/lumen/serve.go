package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenchat/lumen/api/config"
	"github.com/lumenchat/lumen/api/gemini"
	"github.com/lumenchat/lumen/api/server"
	"github.com/lumenchat/lumen/api/services"
	"github.com/lumenchat/lumen/api/store"
	"github.com/lumenchat/lumen/pkg/tracing"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the chat API server",
		Long: `Start the Lumen API server.

Required configuration:
  - PostgreSQL database (LUMEN_POSTGRES_URL)
  - Gemini API key (LUMEN_GEMINI_API_KEY)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	cfg := config.Load()

	slog.Info("starting lumen backend")
	slog.Info("server configured", "host", cfg.Server.Host, "port", cfg.Server.Port)

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("lumen-api", cfg.Tracing.Environment)
		if err != nil {
			slog.Warn("failed to initialize tracing", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					slog.Error("tracer shutdown error", "error", err)
				}
			}()
			slog.Info("tracing initialized", "environment", cfg.Tracing.Environment)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.Info("connecting to database")
	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		return err
	}
	defer pool.Close()
	slog.Info("database connected")

	s := store.New(pool)
	if err := s.InitSchema(ctx); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		return err
	}

	if !cfg.IsGeminiConfigured() {
		slog.Warn("gemini not configured, chat replies will fail", "hint", "set LUMEN_GEMINI_API_KEY")
	}
	generator, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		return err
	}

	threadSvc := services.NewThreadService(s)
	msgSvc := services.NewMessageService(s)
	ticketSvc := services.NewTicketService(s, cfg.Chat.TicketTTL)
	userSvc := services.NewUserService(s)

	srv := server.NewServer(cfg, s, threadSvc, msgSvc, ticketSvc, userSvc, generator)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "host", cfg.Server.Host, "port", cfg.Server.Port)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server error", "error", err)
		return err
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		slog.Info("server stopped")
	}
	return nil
}
