package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/schema"
)

func schemaCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [element]",
		Short: "Show the supported elements and their content models",
		Long: `Without arguments, list every supported element with its content
model and categories. With an element name, show the children and
attributes it accepts.

Examples:
  markup schema
  markup schema ul`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(w, elementTable())
				return nil
			}
			e, ok := schema.ParseElementKind(strings.ToLower(args[0]))
			if !ok {
				return errors.New("M105").
					WithDetail(fmt.Sprintf("%q is not a supported element", args[0])).
					WithSuggestion("run `markup schema` to list the supported elements")
			}
			describeElement(w, e)
			return nil
		},
	}
}

func tableStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1)
	}
	if col == 0 {
		return styleTitle.Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}

func elementTable() string {
	var rows [][]string
	for _, e := range schema.Elements() {
		rows = append(rows, []string{
			e.String(),
			schema.ModelOf(e).Content.String(),
			schema.CategoriesOf(e).String(),
			fmt.Sprint(len(schema.Attributes(e))),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Element", "Content", "Categories", "Attributes").
		Rows(rows...).
		StyleFunc(tableStyle).
		Render()
}

// permittedChildren lists text and every element e accepts as a child.
func permittedChildren(e schema.ElementKind) []string {
	var out []string
	if schema.Permits(e, schema.TextChild) == nil {
		out = append(out, "text")
	}
	for _, c := range schema.Elements() {
		if schema.Permits(e, schema.ChildElement(c)) == nil {
			out = append(out, c.String())
		}
	}
	return out
}

func describeElement(w io.Writer, e schema.ElementKind) {
	fmt.Fprintf(w, "%s\n\n", styleTitle.Render("<"+e.String()+">"))
	fmt.Fprintf(w, "  Content:    %s\n", schema.ModelOf(e).Content)
	fmt.Fprintf(w, "  Categories: %s\n", schema.CategoriesOf(e))
	if slots := schema.Slots(e); slots != nil {
		names := make([]string, len(slots))
		for i, s := range slots {
			names[i] = s.String()
		}
		fmt.Fprintf(w, "  Slots:      %s\n", strings.Join(names, ", "))
	} else if children := permittedChildren(e); len(children) > 0 {
		fmt.Fprintf(w, "  Children:   %s\n", strings.Join(children, ", "))
	} else {
		fmt.Fprintf(w, "  Children:   %s\n", styleDim.Render("none"))
	}
	fmt.Fprintln(w)

	var rows [][]string
	for _, a := range schema.Attributes(e) {
		scope := ""
		if schema.IsGlobal(a) {
			scope = "global"
		}
		rows = append(rows, []string{a.String(), a.Domain().String(), scope})
	}
	fmt.Fprintln(w, table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Attribute", "Values", "Scope").
		Rows(rows...).
		StyleFunc(tableStyle).
		Render())
}
