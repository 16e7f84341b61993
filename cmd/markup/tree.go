package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/pkg/source"
)

func treeCmd(g *globals) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the node tree of a document",
		Long: `Print a document as an outline of its elements and text.

Examples:
  markup tree pages/index.yaml
  markup tree pages/index.yaml --summary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := source.DecodeFile(args[0])
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), source.Summary(node))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), source.Dump(node))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "Print only element and text counts")
	return cmd
}

func graphCmd(g *globals) *cobra.Command {
	var (
		dot bool
		out string
	)

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw the node tree of a document as SVG",
		Long: `Render the node tree of a document with Graphviz. Each box is labeled
with the node and its path.

Examples:
  markup graph pages/index.yaml -o tree.svg
  markup graph pages/index.yaml --dot | dot -Tpng > tree.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := source.DecodeFile(args[0])
			if err != nil {
				return err
			}
			graph := source.DOT(node)
			data := []byte(graph)
			if !dot {
				if data, err = renderSVG(cmd.Context(), graph); err != nil {
					return err
				}
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			g.logger.Debug("graph written", "file", out, "bytes", len(data))
			success(cmd.OutOrStdout(), "Wrote %s (%s)", out, formatBytes(len(data)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dot, "dot", false, "Print DOT source instead of SVG")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

// renderSVG lays out a DOT graph in process.
func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
