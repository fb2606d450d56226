package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/pagescan/internal/api"
	"github.com/nao1215/pagescan/internal/config"
	"github.com/nao1215/pagescan/internal/log"
	"github.com/nao1215/pagescan/internal/settings"
)

// shutdownTimeout bounds graceful shutdown of the API server.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scans and settings over an HTTP JSON API",
		Long: `Serve starts an HTTP server for chat front ends and other clients.

Endpoints:
  POST /api/scan                              {"url": "...", "user_id": "..."}
  GET  /api/settings/{userID}
  POST /api/settings/{userID}/toggle/{field}
  GET  /api/health

Settings are kept in the SQLite database unless --memory is given.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress, "Address to listen on")
	cmd.Flags().Bool("memory", false, "Keep settings in memory instead of the database")
	cmd.Flags().String("db-dir", "",
		"Directory of the settings database (default: XDG data directory)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each page fetch")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header sent with fetches")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize, "Maximum number of body bytes read")
	cmd.Flags().StringP("tor-proxy", "x", "", "Fetch through the Tor SOCKS5 proxy at this address")
	cmd.Flags().Bool("concurrent", false, "Run independent extraction steps concurrently")
	cmd.Flags().Bool("no-media", false, "Omit the images, videos and files sections")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	memory, err := cmd.Flags().GetBool("memory")
	if err != nil {
		return err
	}

	logger := log.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store settings.Store
	if memory {
		store = settings.NewMemoryStore()
	} else {
		db, err := settings.Open(cfg.DBDir, settings.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open settings database: %w", err)
		}
		defer db.Close()
		store = db
	}

	httpClient, cleanup, err := newHTTPClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	scanner := newScanner(cfg, httpClient, store, logger)

	return serve(ctx, cfg.ListenAddress, api.NewRouter(scanner, store, logger), logger)
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Warn("API server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown failed: %w", err)
	}
	return nil
}
