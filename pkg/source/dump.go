package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/vango-dev/markup/pkg/vdom"
)

// maxLabel bounds the text shown for text and raw nodes.
const maxLabel = 40

// Label describes a single node: the start tag with its rendered
// attributes, or the quoted text.
func Label(n *vdom.Node) string {
	switch n.Kind {
	case vdom.KindText:
		return strconv.Quote(truncate(n.Text))
	case vdom.KindRaw:
		return "raw " + strconv.Quote(truncate(n.Text))
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Tag())
	for _, a := range n.Attrs {
		if !a.Present() {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Name())
		if a.Value != "" || !a.On {
			fmt.Fprintf(&b, "=%q", a.Value)
		}
	}
	b.WriteByte('>')
	return b.String()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxLabel {
		return s
	}
	return string(r[:maxLabel-1]) + "…"
}

// Dump returns an indented outline of the tree.
func Dump(n *vdom.Node) string {
	if n == nil {
		return ""
	}
	t := treeprint.NewWithRoot(Label(n))
	addChildren(t, n)
	return t.String()
}

func addChildren(t treeprint.Tree, n *vdom.Node) {
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.AddNode(Label(c))
			continue
		}
		addChildren(t.AddBranch(Label(c)), c)
	}
}

// DOT returns the tree as a Graphviz digraph. Nodes are named by their path.
func DOT(n *vdom.Node) string {
	var b strings.Builder
	b.WriteString("digraph markup {\n")
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	vdom.Walk(n, dotVisitor{&b})
	b.WriteString("}\n")
	return b.String()
}

type dotVisitor struct{ b *strings.Builder }

func (d dotVisitor) node(n *vdom.Node, p vdom.Path) error {
	id := strconv.Quote(p.String())
	style := ""
	if n.Kind != vdom.KindElement {
		style = ", style=dashed"
	}
	fmt.Fprintf(d.b, "  %s [label=%s%s];\n", id, strconv.Quote(Label(n)), style)
	if len(p) > 0 {
		fmt.Fprintf(d.b, "  %s -> %s;\n", strconv.Quote(p[:len(p)-1].String()), id)
	}
	return nil
}

func (d dotVisitor) Enter(n *vdom.Node, p vdom.Path) error { return d.node(n, p) }
func (d dotVisitor) Leave(*vdom.Node, vdom.Path) error      { return nil }
func (d dotVisitor) Text(n *vdom.Node, p vdom.Path) error  { return d.node(n, p) }
