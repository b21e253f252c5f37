// Package logging builds the zap logger and logs eventbus traffic.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/reqid"
)

// New returns a logger writing to stderr at level. dev selects the console
// encoder.
func New(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func fields(ctx context.Context, fs ...zap.Field) []zap.Field {
	if rid, ok := reqid.FromContext(ctx); ok {
		fs = append(fs, zap.String("request_id", rid))
	}
	return fs
}

func logResult(logger *zap.Logger, msg string, err error, fs []zap.Field) {
	if err != nil {
		logger.Warn(msg, append(fs, zap.String("code", meta.Code(err)), zap.Error(err))...)
		return
	}
	logger.Debug(msg, fs...)
}

// Subscribe logs HTTP requests, extractions, projections and snapshots.
func Subscribe(logger *zap.Logger) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			logger.Info("http request", fields(ctx,
				zap.String("method", e.Request.Method),
				zap.String("path", e.Request.URL.Path),
				zap.String("route", e.Route),
				zap.Int("status", e.Status),
				zap.Duration("duration", e.Duration),
			)...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.ExtractFinish) {
			logResult(logger, "extract", e.Err, fields(ctx,
				zap.String("mode", e.Mode),
				zap.String("operation", e.OperationName),
				zap.Int("fields", e.Fields),
				zap.Duration("duration", e.Duration),
			))
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.ProjectFinish) {
			logResult(logger, "project", e.Err, fields(ctx,
				zap.Int("rows", e.Rows),
				zap.Int("columns", e.Columns),
				zap.Duration("duration", e.Duration),
			))
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.Snapshot) {
			logger.Debug("snapshot", fields(ctx,
				zap.String("view", e.View),
				zap.Bool("loading", e.Loading),
				zap.Int("errors", e.Errors),
			)...)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
