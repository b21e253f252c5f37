package logging

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/reqid"
)

func TestNew(t *testing.T) {
	logger, err := New("debug", true)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn", false)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud", false)
	require.Error(t, err)
}

func TestSubscribe(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	core, logs := observer.New(zapcore.DebugLevel)
	unsubscribe := Subscribe(zap.New(core))
	defer unsubscribe()

	ctx, rid := reqid.NewContext(context.Background())
	eventbus.Publish(ctx, events.HTTPFinish{Request: httptest.NewRequest("POST", "/table", nil), Status: 200})
	eventbus.Publish(ctx, events.ExtractFinish{Mode: "table", Fields: 3})
	eventbus.Publish(ctx, events.ProjectFinish{Err: &meta.FieldProjectionError{Path: "query.todoes.name"}})

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	require.Equal(t, "http request", entries[0].Message)
	require.Equal(t, rid, entries[0].ContextMap()["request_id"])
	require.Equal(t, zapcore.DebugLevel, entries[1].Level)
	require.Equal(t, zapcore.WarnLevel, entries[2].Level)
	require.Equal(t, meta.CodeFieldProjection, entries[2].ContextMap()["code"])
}
