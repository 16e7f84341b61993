package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/markup/pkg/cache"
	"github.com/vango-dev/markup/pkg/render"
)

// Config configures the preview server.
type Config struct {
	// Address is the TCP address to listen on (default: "localhost:4000").
	Address string

	// Dir is the directory holding document files.
	Dir string

	// Render configures how documents are rendered.
	Render render.RendererConfig

	// Cache stores rendered documents. Nil disables caching.
	Cache cache.Cache

	// Live enables the live preview socket and injects its client script
	// into every served page.
	Live bool

	// PollInterval is how often Dir is scanned for changes in live mode.
	PollInterval time.Duration

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool

	// Registry receives the server's collectors. A private registry is
	// created when nil.
	Registry *prometheus.Registry

	// TracerProvider creates the server's tracer. Nil disables tracing.
	TracerProvider trace.TracerProvider

	// Logger receives request and live-preview logs. Nil discards them.
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:4000",
		Dir:               ".",
		Live:              true,
		PollInterval:      500 * time.Millisecond,
		ShutdownTimeout:   5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Dir == "" {
		c.Dir = d.Dir
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.Cache == nil {
		c.Cache = cache.Nop{}
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
