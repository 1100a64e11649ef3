package main

import (
	"context"
	"errors"
	"eventManager/internal/http-server/router"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/lib/password"
	"eventManager/internal/lib/token"
	"eventManager/internal/seed"
	"eventManager/internal/services/auth"
	"eventManager/internal/storage/postgres"
	"fmt"
	"github.com/spf13/cobra"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := setupLogger(cfg.Env)

	log.Info("starting event manager", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close postgres connection", sl.Err(err))
		}

		log.Info("postgres connection closed")
	}()

	if cfg.Database.AutoMigrate.On() {
		if err = storage.MigrateUp(); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		log.Info("migrations applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if cfg.SeedSampleData.On() {
		if err = seed.Run(ctx, log, storage, time.Now()); err != nil {
			log.Error("failed to seed sample events", sl.Err(err))
		}
	}

	hasher, err := password.New(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	tokens, err := token.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	authenticator, err := auth.New(log, storage, hasher, tokens)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.HTTPServer.Address,
		Handler: router.New(log, router.Deps{
			Storage:  storage,
			Auth:     authenticator,
			Tokens:   tokens,
			TokenTTL: tokens.TTL(),
			CORS:     cfg.CORS,
		}),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		log.Info("application stopping")
	case runErr = <-serverErr:
		log.Error("server failed", sl.Err(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	return runErr
}
