package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/markup/pkg/cache"
	"github.com/vango-dev/markup/pkg/render"
)

const (
	// LivePath is the live preview socket endpoint.
	LivePath = "/_markup/live"

	// TreePath prefixes the document outline endpoint.
	TreePath = "/_markup/tree"

	tracerName = "github.com/vango-dev/markup/pkg/server"
)

// Server renders the documents of a directory over HTTP.
type Server struct {
	config   Config
	router   chi.Router
	renderer *render.Renderer
	cache    cache.Cache
	metrics  *metrics
	tracer   trace.Tracer
	hub      *hub
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a Server. Unset config fields take their defaults.
func New(config Config) *Server {
	config = config.withDefaults()

	tp := config.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	s := &Server{
		config:   config,
		renderer: render.NewRenderer(config.Render),
		cache:    config.Cache,
		metrics:  newMetrics(config.Registry),
		tracer:   tp.Tracer(tracerName),
		logger:   config.Logger.With("component", "server"),
	}
	s.hub = newHub(s)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.config.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	if s.config.Live {
		r.Get(LivePath, s.hub.serveWS)
	}
	r.Get(TreePath+"/*", s.handleTree)

	r.Group(func(r chi.Router) {
		r.Use(s.metrics.instrument)
		r.Get("/*", s.handleDocument)
		r.Head("/*", s.handleDocument)
	})
	return r
}

// logRequests logs each request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server as an http.Handler, for mounting under
// another router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the server configuration with defaults applied.
func (s *Server) Config() Config {
	return s.config
}

// Sessions returns the number of connected live preview sessions.
func (s *Server) Sessions() int {
	return s.hub.count()
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully. In live mode it also watches the document directory.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.config.Live {
		w := newWatcher(s.config.Dir, s.config.PollInterval)
		go w.run(ctx, func(c change) {
			s.hub.refresh(ctx, c)
		})
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "dir", s.config.Dir)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.WithoutCancel(ctx))
	}
}

// Shutdown closes live sessions and gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
