// Package server exposes table and form extraction over HTTP.
package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/reqid"
)

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// It does not apply to /watch. 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions

	// Schema is the introspection JSON or SDL used by requests that carry no
	// introspection result. It is materialized again for every request.
	Schema []byte

	// PerPage is the default page size for LastPage. 0 disables it.
	PerPage int

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}
func WithSchema(data []byte) Option     { return func(o *Options) { o.Schema = data } }
func WithPerPage(n int) Option          { return func(o *Options) { o.PerPage = n } }
func WithMetrics(h http.Handler) Option { return func(o *Options) { o.Metrics = h } }

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// Server routes gqlview requests.
type Server struct {
	mux      chi.Router
	opt      Options
	upgrader websocket.Upgrader
}

// New creates the HTTP handler.
func New(opts ...Option) *Server {
	op := Options{Timeout: 10 * time.Second, MaxBodyBytes: 1 << 20}
	for _, f := range opts {
		f(&op)
	}
	s := &Server{opt: op}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.allowedOrigin,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(s.cors)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, errorf("method not allowed"))
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, errorf("not found"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if op.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", op.Metrics)
	}
	r.Get("/watch", s.watch)
	r.Group(func(r chi.Router) {
		r.Use(s.timeout)
		r.Post("/table", s.table)
		r.Post("/form", s.form)
		r.Post("/project", s.project)
		r.Post("/strip", s.strip)
	})
	s.mux = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// observe tags the request with an ID and publishes HTTP events.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, rid := reqid.FromRequest(r)
		r = r.WithContext(ctx)
		w.Header().Set(reqid.Header, rid)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		eventbus.Publish(ctx, events.HTTPStart{Request: r})
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			eventbus.Publish(ctx, events.HTTPFinish{
				Request:  r,
				Route:    routePattern(r),
				Status:   status,
				Duration: time.Since(start),
			})
		}()
		next.ServeHTTP(ww, r)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

func (s *Server) timeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, ok := ctx.Deadline(); !ok && s.opt.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opt.Timeout)
			defer cancel()
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.opt.CORS.AllowedOrigins) > 0 {
			setCORSHeaders(w, r, s.opt.CORS)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" || !originAllowed(opts.AllowedOrigins, origin) {
		return
	}
	if slices.Contains(opts.AllowedOrigins, "*") {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}

func originAllowed(allowed []string, origin string) bool {
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

// allowedOrigin accepts same-origin websocket handshakes and the configured
// CORS origins.
func (s *Server) allowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}
	return originAllowed(s.opt.CORS.AllowedOrigins, origin)
}
