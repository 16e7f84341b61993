package main

import (
	"context"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/render"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	verbose bool
	noColor bool
	project string
	logger  *slog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if err != errCheckFailed {
			errors.Fprint(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Build, check and serve typed HTML documents",
		Long: `markup renders declarative documents (YAML, JSON or TOML) to HTML.

Every element and attribute is checked against the HTML content model
while the tree is built, so an invalid document is reported with a
diagnostic instead of being rendered:

  • render and build documents to HTML
  • check documents and print diagnostics
  • inspect trees as outlines and graphs
  • preview documents with live reload
  • publish rendered pages to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			g.logger = slog.New(newLogger(os.Stderr, level))
			if g.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&g.project, "project", "C", "", "Project directory (default: nearest markup.toml or markup.json)")

	rootCmd.AddCommand(
		initCmd(g),
		renderCmd(g),
		buildCmd(g),
		checkCmd(g),
		treeCmd(g),
		graphCmd(g),
		schemaCmd(g),
		serveCmd(g),
		publishCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// newLogger creates the slog handler used by every command.
func newLogger(w *os.File, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// config loads the project configuration.
func (g *globals) config() (*config.Config, error) {
	if g.project != "" {
		return config.Load(g.project)
	}
	return config.LoadFromWorkingDir()
}

// rendererConfig maps the project render settings onto the renderer.
func rendererConfig(c *config.Config) render.RendererConfig {
	return render.RendererConfig{
		Pretty:      c.Render.Pretty,
		Indent:      c.Render.Indent,
		OmitDoctype: c.Render.OmitDoctype,
	}
}
