package otel

import (
	"context"
	"sync"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/meta"
	"github.com/hanpama/gqlview/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("gqlview")}
	unsubscribe := sub.register()

	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

type subscriber struct {
	tracer      trace.Tracer
	httpSpans   sync.Map // rid -> trace.Span
	extractSpan sync.Map // rid -> trace.Span
	projectSpan sync.Map // rid -> trace.Span
}

// parent returns ctx carrying the HTTP span of the request, if any.
func (s *subscriber) parent(ctx context.Context, rid string) context.Context {
	if v, ok := s.httpSpans.Load(rid); ok {
		return trace.ContextWithSpan(ctx, v.(trace.Span))
	}
	return ctx
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, meta.Code(err))
	}
	span.End()
}

func (s *subscriber) register() (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(ctx, "http.request")
			span.SetAttributes(
				semconv.HTTPMethodKey.String(e.Request.Method),
				attribute.String("http.target", e.Request.URL.Path),
				attribute.String("request.id", rid),
			)
			s.httpSpans.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.httpSpans.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(semconv.HTTPStatusCodeKey.Int(e.Status))
			span.End()
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.ExtractStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(s.parent(ctx, rid), "gqlview.extract")
			span.SetAttributes(
				attribute.String("gqlview.mode", e.Mode),
				attribute.String("graphql.operation.name", e.OperationName),
			)
			s.extractSpan.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.ExtractFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.extractSpan.LoadAndDelete(rid)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int("gqlview.fields", e.Fields))
			finish(span, e.Err)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.ProjectStart) {
			rid, _ := reqid.FromContext(ctx)
			_, span := s.tracer.Start(s.parent(ctx, rid), "gqlview.project")
			span.SetAttributes(
				attribute.Int("gqlview.rows", e.Rows),
				attribute.Int("gqlview.columns", e.Columns),
			)
			s.projectSpan.Store(rid, span)
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.ProjectFinish) {
			rid, _ := reqid.FromContext(ctx)
			v, ok := s.projectSpan.LoadAndDelete(rid)
			if !ok {
				return
			}
			finish(v.(trace.Span), e.Err)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
