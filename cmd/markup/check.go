package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/publish"
	"github.com/vango-dev/markup/pkg/source"
)

// errCheckFailed is returned after the diagnostics have been printed, so
// main only sets the exit status.
var errCheckFailed = errors.Newf(errors.CategoryCLI, "check failed")

func checkCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check documents against the HTML content model",
		Long: `Build every given document and report the first problem in each.
Without arguments, every document under the source directory is checked.

Examples:
  markup check
  markup check pages/index.yaml pages/about.json
  markup check --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				cfg, err := g.config()
				if err != nil {
					return err
				}
				if files, err = publish.Collect(cfg.SourcePath()); err != nil {
					return err
				}
			}
			return runCheck(cmd, g, files, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print diagnostics as JSON lines")
	return cmd
}

func runCheck(cmd *cobra.Command, g *globals, files []string, asJSON bool) error {
	w := cmd.OutOrStdout()
	failed := 0
	for _, file := range files {
		node, err := source.DecodeFile(file)
		if err != nil {
			failed++
			diag := errors.Classify(err)
			if asJSON {
				fmt.Fprintln(w, diag.FormatJSON())
			} else {
				fmt.Fprintln(w, diag.Format())
			}
			continue
		}
		g.logger.Debug("checked", "file", file, "tree", source.Summary(node))
		if !asJSON {
			success(w, "%s %s", filepath.ToSlash(file), styleDim.Render(source.Summary(node)))
		}
	}

	if failed > 0 {
		if !asJSON {
			failure(w, "%d of %d documents failed", failed, len(files))
		}
		return errCheckFailed
	}
	if !asJSON {
		info(w, "%d documents ok", len(files))
	}
	return nil
}
