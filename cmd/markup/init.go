package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
)

const starterDocument = `# Each key is an element; a list holds its children.
html:
  - head:
      - meta:
          charset: utf-8
      - title: %s
  - body:
      - h1: Hello
      - p:
          - "Edit "
          - strong: pages/index.yaml
          - " and run "
          - strong: markup serve
`

func initCmd(g *globals) *cobra.Command {
	var (
		name string
		json bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a markup project",
		Long: `Create a configuration file and a starter document.

Examples:
  markup init
  markup init site --name docs
  markup init --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, name, json)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (default: directory name)")
	cmd.Flags().BoolVar(&json, "json", false, "Write markup.json instead of markup.toml")
	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, json bool) error {
	w := cmd.OutOrStdout()
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if config.Exists(abs) {
		return errors.New("M401").
			WithDetail("A markup project already exists in " + abs).
			WithSuggestion("Edit the existing configuration instead")
	}
	if name == "" {
		name = filepath.Base(abs)
	}

	cfg := config.New()
	cfg.Name = name
	file := config.TOMLFileName
	if json {
		file = config.ConfigFileName
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}
	if err := cfg.SaveTo(filepath.Join(abs, file)); err != nil {
		return err
	}

	pages := cfg.SourcePath()
	if err := os.MkdirAll(pages, 0o755); err != nil {
		return err
	}
	index := filepath.Join(pages, "index.yaml")
	if _, err := os.Stat(index); os.IsNotExist(err) {
		if err := os.WriteFile(index, []byte(fmt.Sprintf(starterDocument, strconv.Quote(name))), 0o644); err != nil {
			return err
		}
	}

	success(w, "Created %s", filepath.Join(dir, file))
	info(w, "Documents: %s", filepath.Join(dir, cfg.Source.Dir))
	info(w, "Next: %s", styleTitle.Render("markup serve -C "+dir))
	return nil
}
