package cmd

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

	"github.com/mnemo-systems/mnemo/internal/transport/httpapi"
	"github.com/mnemo-systems/mnemo/internal/transport/mcpstdio"
	"github.com/mnemo-systems/mnemo/internal/transport/wsapi"
)

// gracefulShutdownTimeout bounds how long serve waits for in-flight tasks
// and HTTP requests to drain on SIGINT/SIGTERM before exiting anyway.
const gracefulShutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mnemo server",
		Long: `Run the mnemo server, exposing remember/recall/pin/unpin/forget/feedback
over the chosen transport.

  stdio  JSON-RPC over stdin/stdout (the default, for MCP clients)
  http   POST /tools/<name> plus GET /health and GET /tools
  ws     one WebSocket connection per client, JSON-RPC-shaped {id, method, params} frames`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio, http, or ws")
	return cmd
}

func runServe(ctx context.Context, transport string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if transport == "" {
		transport = cfg.Server.Transport
	}

	logger := slog.Default()

	a, err := newApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("starting mnemo: %w", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Tasks.Start(ctx)
	defer a.Tasks.Stop(gracefulShutdownTimeout)

	a.Scheduler.Start(ctx)
	defer a.Scheduler.Stop()

	switch transport {
	case "stdio":
		return mcpstdio.New(a.Surface, logger).Run(ctx)
	case "http":
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("mnemo http server listening", slog.String("addr", addr))
		srv := &http.Server{Addr: addr, Handler: httpapi.New(a.Surface, logger)}
		return serveUntilCanceled(ctx, srv)
	case "ws":
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("mnemo ws server listening", slog.String("addr", addr))
		srv := &http.Server{Addr: addr, Handler: wsapi.New(a.Surface, logger)}
		return serveUntilCanceled(ctx, srv)
	default:
		return fmt.Errorf("unknown transport %q", transport)
	}
}

func serveUntilCanceled(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
