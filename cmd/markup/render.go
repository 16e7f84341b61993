package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/pkg/publish"
	"github.com/vango-dev/markup/pkg/render"
	"github.com/vango-dev/markup/pkg/source"
)

type renderFlags struct {
	pretty      bool
	indent      string
	omitDoctype bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.pretty, "pretty", "p", false, "Indent block-level elements")
	cmd.Flags().StringVar(&f.indent, "indent", "", "Indentation unit for --pretty (default from config)")
	cmd.Flags().BoolVar(&f.omitDoctype, "omit-doctype", false, "Do not write <!DOCTYPE html>")
}

// apply overlays flags that were set on the project settings.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) render.RendererConfig {
	rc := rendererConfig(cfg)
	if cmd.Flags().Changed("pretty") {
		rc.Pretty = f.pretty
	}
	if f.indent != "" {
		rc.Indent = f.indent
	}
	if cmd.Flags().Changed("omit-doctype") {
		rc.OmitDoctype = f.omitDoctype
	}
	return rc
}

func renderCmd(g *globals) *cobra.Command {
	var (
		flags renderFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document to HTML",
		Long: `Render one document file to HTML.

The document is built and checked in full before any output is written,
so an invalid document produces a diagnostic and no HTML.

Examples:
  markup render pages/index.yaml
  markup render pages/index.yaml --pretty --out index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			node, err := source.DecodeFile(args[0])
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			bw := bufio.NewWriter(w)
			if err := render.NewRenderer(flags.apply(cmd, cfg)).RenderToWriter(bw, node); err != nil {
				return err
			}
			return bw.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

func buildCmd(g *globals) *cobra.Command {
	var (
		flags  renderFlags
		output string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every document of the project",
		Long: `Render every document under the source directory into the output
directory, keeping the directory layout. Each file is written with an
.html extension.

Examples:
  markup build
  markup build --output public --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Build.Output = output
			}
			return runBuild(cmd, g, cfg, flags.apply(cmd, cfg), clean)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output directory first")
	return cmd
}

func runBuild(cmd *cobra.Command, g *globals, cfg *config.Config, rc render.RendererConfig, clean bool) error {
	start := time.Now()
	w := cmd.OutOrStdout()
	srcDir, outDir := cfg.SourcePath(), cfg.OutputPath()

	files, err := publish.Collect(srcDir)
	if err != nil {
		return err
	}
	if clean {
		info(w, "Cleaning %s...", outDir)
		if err := os.RemoveAll(outDir); err != nil {
			return err
		}
	}

	renderer := render.NewRenderer(rc)
	total := 0
	for _, file := range files {
		node, err := source.DecodeFile(file)
		if err != nil {
			return err
		}
		key, err := publish.Key(srcDir, file, "")
		if err != nil {
			return err
		}
		target := filepath.Join(outDir, filepath.FromSlash(key))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := renderer.RenderToString(node)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
			return err
		}
		total += len(out)
		g.logger.Debug("rendered", "file", file, "out", target, "bytes", len(out))
	}

	success(w, "Built %d documents (%s) in %s", len(files), formatBytes(total), time.Since(start).Round(time.Millisecond))
	info(w, "Output: %s", outDir)
	return nil
}
