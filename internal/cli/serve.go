package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/msomdec/kennel/internal/handler"
	"github.com/msomdec/kennel/internal/repository"
	"github.com/msomdec/kennel/internal/service"
	"github.com/spf13/cobra"
)

const (
	loginRatePerSecond = 0.2
	loginBurst         = 5
	shutdownTimeout    = 5 * time.Second
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dogs JSON API",
		Long: `Open the configured database, make sure the dogs table exists, and serve
the JSON API until SIGINT or SIGTERM.

Writes require a bearer token from POST /api/login. The admin password hash
comes from admin_password_hash (see "kennel hash-password").`,
		Example: `  KENNEL_JWT_SECRET=... KENNEL_ADMIN_PASSWORD_HASH=... kennel serve --port 9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().Int("port", 0, "HTTP listen port (default 8080)")
	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg := getConfig(cmd.Context())
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	dogService := service.NewDogService(db.Dogs())
	if err := dogService.CreateTable(ctx); err != nil {
		return err
	}
	slog.Info("dogs table ready", "driver", cfg.DatabaseDriver)

	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret)
	loginLimiter := service.NewTokenBucket(ctx, loginRatePerSecond, loginBurst)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           handler.NewRouter(dogService, authService, loginLimiter),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
