package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanpama/gqlview/internal/metrics"
	"github.com/hanpama/gqlview/internal/otel"
	"github.com/hanpama/gqlview/internal/server"
	"github.com/hanpama/gqlview/internal/tree"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Serve table, form, projection and stripping over HTTP:

  POST /table     columns, total path and data key, rows when data is given
  POST /form      form fields, state when data is given
  POST /project   rows projected through columns
  POST /strip     query without view directives
  GET  /watch     websocket, one table state per result snapshot
  GET  /metrics   Prometheus metrics
  GET  /healthz   liveness

Requests without an introspection result use the --schema file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	flags := cmd.Flags()
	flags.String("addr", ":8080", "HTTP listen address")
	flags.Bool("pretty", false, "pretty-print JSON responses")
	flags.Duration("timeout", 30*time.Second, "per-request timeout")
	flags.Int64("max-body-bytes", 1<<20, "request body limit, 0 for none")
	flags.StringSlice("cors-origin", nil, "allowed CORS origin, repeatable")
	flags.Int("per-page", 0, "default page size for page counts")
	flags.Bool("metrics", true, "expose /metrics")
	flags.String("otel-endpoint", "", "OTLP gRPC collector endpoint")
	flags.String("otel-service", "gqlview", "OpenTelemetry service name")
	a.bind(cmd, "server.addr", "addr")
	a.bind(cmd, "server.pretty", "pretty")
	a.bind(cmd, "server.timeout", "timeout")
	a.bind(cmd, "server.max_body_bytes", "max-body-bytes")
	a.bind(cmd, "server.cors_origins", "cors-origin")
	a.bind(cmd, "table.per_page", "per-page")
	a.bind(cmd, "metrics.enabled", "metrics")
	a.bind(cmd, "otel.endpoint", "otel-endpoint")
	a.bind(cmd, "otel.service", "otel-service")
	return cmd
}

func (a *app) serverOptions() ([]server.Option, func(), error) {
	cfg := a.cfg.Server
	opts := []server.Option{
		server.WithTimeout(cfg.Timeout),
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
		server.WithPerPage(a.cfg.Table.PerPage),
	}
	if cfg.Pretty {
		opts = append(opts, server.WithPretty())
	}
	if len(cfg.CORSOrigins) > 0 {
		opts = append(opts, server.WithCORS(cfg.CORSOrigins...))
	}
	if a.cfg.Schema.Introspection != "" {
		data, err := a.readSchema()
		if err != nil {
			return nil, nil, err
		}
		if _, err := tree.MaterializeDocument(data); err != nil {
			return nil, nil, err
		}
		opts = append(opts, server.WithSchema(data))
	}
	cleanup := func() {}
	if a.cfg.Metrics.Enabled {
		m := metrics.New()
		cleanup = m.Subscribe()
		opts = append(opts, server.WithMetrics(m.Handler()))
	}
	return opts, cleanup, nil
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := a.serverOptions()
	if err != nil {
		return err
	}
	defer cleanup()

	shutdownTracing, err := otel.Setup(a.cfg.Otel.Endpoint, a.cfg.Otel.Service)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           server.New(opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.logger.Info("gqlview listening", zap.String("addr", srv.Addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
