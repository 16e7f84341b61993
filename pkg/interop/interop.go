// Package interop connects markup trees with the templ and gomponents
// ecosystems.
//
// Elements and nodes can be used as templ.Component or gomponents.Node
// values, so a checked tree can be dropped into an existing templ layout or
// gomponents page. In the other direction, the output of a templ component
// or gomponents node can be embedded into a markup tree as a raw child.
// Foreign output is not checked against the schema.
package interop

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	"github.com/vango-dev/markup/pkg/html"
	"github.com/vango-dev/markup/pkg/render"
	"github.com/vango-dev/markup/pkg/vdom"
)

var defaultRenderer = render.NewRenderer(render.RendererConfig{})

// Component returns e as a templ.Component rendered with the default
// configuration. Builder errors are returned from Render.
func Component(e html.Element) templ.Component {
	return ComponentWith(defaultRenderer, e)
}

// ComponentWith returns e as a templ.Component rendered by r.
func ComponentWith(r *render.Renderer, e html.Element) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return r.Render(w, e)
	})
}

// NodeComponent returns a tree as a templ.Component.
func NodeComponent(n *vdom.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return defaultRenderer.RenderToWriter(w, n)
	})
}

// Node returns e as a gomponents.Node rendered with the default
// configuration.
func Node(e html.Element) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		return defaultRenderer.Render(w, e)
	})
}

// FromTempl renders c and returns its output as a raw child.
func FromTempl(ctx context.Context, c templ.Component) (html.RawNode, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return html.RawNode{}, err
	}
	return html.Unsafe(buf.String()), nil
}

// FromGomponents renders n and returns its output as a raw child.
func FromGomponents(n g.Node) (html.RawNode, error) {
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return html.RawNode{}, err
	}
	return html.Unsafe(buf.String()), nil
}
