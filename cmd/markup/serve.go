package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/cache"
	"github.com/vango-dev/markup/pkg/server"
)

type serveFlags struct {
	port    int
	host    string
	dir     string
	noLive  bool
	metrics bool
	tracing bool
	cache   string
}

func serveCmd(g *globals) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview documents over HTTP",
		Long: `Serve the source directory as HTML. A request for /docs/guide renders
docs/guide.yaml (or .yml, .json, .toml); / renders index.

With live preview on, open pages are patched in place when their
document changes, and invalid documents show their diagnostic in an
overlay.

Examples:
  markup serve
  markup serve --port 8080 --no-live
  markup serve --metrics --cache memory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, g, cfg)
		},
	}

	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&flags.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "Document directory (default from config)")
	cmd.Flags().BoolVar(&flags.noLive, "no-live", false, "Disable live preview")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&flags.tracing, "tracing", false, "Record OpenTelemetry spans")
	cmd.Flags().StringVar(&flags.cache, "cache", "", "Render cache: none, memory or redis")
	return cmd
}

// apply overlays command-line flags on the project settings.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if f.port > 0 {
		cfg.Serve.Port = f.port
	}
	if f.host != "" {
		cfg.Serve.Host = f.host
	}
	if f.dir != "" {
		cfg.Source.Dir = f.dir
	}
	if f.noLive {
		cfg.Serve.Live = false
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Serve.Metrics = f.metrics
	}
	if cmd.Flags().Changed("tracing") {
		cfg.Serve.Tracing = f.tracing
	}
	if f.cache != "" {
		cfg.Cache.Driver = f.cache
	}
}

// serverConfig maps the project settings onto the preview server.
func serverConfig(cfg *config.Config, c cache.Cache) server.Config {
	sc := server.DefaultConfig()
	sc.Address = net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(cfg.Serve.Port))
	sc.Dir = cfg.SourcePath()
	sc.Render = rendererConfig(cfg)
	sc.Cache = c
	sc.Live = cfg.Serve.Live
	sc.PollInterval = cfg.PollInterval()
	sc.Metrics = cfg.Serve.Metrics
	if cfg.Serve.Tracing {
		sc.TracerProvider = otel.GetTracerProvider()
	}
	return sc
}

func runServe(ctx context.Context, cmd *cobra.Command, g *globals, cfg *config.Config) error {
	w := cmd.OutOrStdout()

	store, err := cache.Open(ctx, cache.Options{
		Driver:     cfg.Cache.Driver,
		URL:        cfg.Cache.URL,
		TTL:        cfg.CacheTTL(),
		MaxEntries: cfg.Cache.MaxEntries,
	})
	if err != nil {
		diag := errors.New("M501").Wrap(err).WithDetail(err.Error())
		g.logger.Warn("render cache disabled", "driver", cfg.Cache.Driver, "error", err)
		warn(w, "%s", diag.FormatCompact())
		store = cache.Nop{}
	}
	defer store.Close()

	sc := serverConfig(cfg, store)
	sc.Logger = g.logger
	srv := server.New(sc)

	ln, err := net.Listen("tcp", sc.Address)
	if err != nil {
		return errors.New("M502").Wrap(err).
			WithDetail(err.Error()).
			WithSuggestion(fmt.Sprintf("Free port %d or pass --port", cfg.Serve.Port))
	}

	fmt.Fprint(w, styleTitle.Render(banner))
	fmt.Fprintln(w)
	success(w, "Serving %s", styleTitle.Render("http://"+ln.Addr().String()))
	info(w, "Documents: %s", sc.Dir)
	if sc.Live {
		info(w, "Live preview: on")
	}
	if sc.Metrics {
		info(w, "Metrics: http://%s/metrics", ln.Addr())
	}
	fmt.Fprintln(w)

	return srv.Serve(ctx, ln)
}
