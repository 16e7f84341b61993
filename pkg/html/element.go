package html

import (
	"fmt"

	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/vdom"
)

// Element is any typed node: an element, text or raw markup.
type Element interface {
	// Node returns the underlying tree, or the first error recorded while
	// building it.
	Node() (*vdom.Node, error)
	// Err returns the first error recorded while building the node.
	Err() error

	child() vdom.Child
}

// core carries the runtime builder behind every element type. T is the
// element's own pointer type, so chained calls keep their static type; A is
// the sealed set of attributes the element accepts.
type core[T any, A Attr] struct {
	b    *vdom.Builder
	self T
}

func (c *core[T, A]) init(kind schema.ElementKind, self T) {
	c.b = vdom.Build(kind)
	c.self = self
}

// Node returns the built node, or the first error recorded by the builder.
func (c *core[T, A]) Node() (*vdom.Node, error) { return c.b.Node() }

// Err returns the first error recorded by the builder.
func (c *core[T, A]) Err() error { return c.b.Err() }

func (c *core[T, A]) child() vdom.Child { return c.b }

// Attribute sets a. Setting an attribute again replaces its value and keeps
// its position.
func (c *core[T, A]) Attribute(a A) T {
	if isNil(a) {
		return c.self
	}
	kind, v := a.attr()
	c.b.Attribute(kind, v)
	return c.self
}

// Attributes sets each attribute in order.
func (c *core[T, A]) Attributes(as ...A) T {
	for _, a := range as {
		c.Attribute(a)
	}
	return c.self
}

// Attr returns the stored value of attribute kind and whether it is set.
// Presence-only attributes report their state through the bool.
func (c *core[T, A]) Attr(kind schema.AttrKind) (string, bool) {
	n, err := c.b.Node()
	if err != nil {
		return "", false
	}
	return n.Attr(kind)
}

// Map applies fn to the element, keeping loops and conditionals inside a
// chain.
func (c *core[T, A]) Map(fn func(T) T) T {
	return fn(c.self)
}

// container adds children of content type C.
type container[T any, A Attr, C Element] struct {
	core[T, A]
}

// Child appends c. A nil child is ignored.
func (p *container[T, A, C]) Child(c C) T {
	if !isNil(c) {
		p.b.Child(c.child())
	}
	return p.self
}

// Children appends each child in order.
func (p *container[T, A, C]) Children(cs ...C) T {
	for _, c := range cs {
		p.Child(c)
	}
	return p.self
}

// textContainer is a container that also accepts character data.
type textContainer[T any, A Attr, C Element] struct {
	container[T, A, C]
}

// Text appends escaped text.
func (p *textContainer[T, A, C]) Text(s string) T {
	p.b.Text(s)
	return p.self
}

// Textf appends formatted, escaped text.
func (p *textContainer[T, A, C]) Textf(format string, args ...any) T {
	p.b.Text(fmt.Sprintf(format, args...))
	return p.self
}

// flowContainer holds flow content and offers heading shorthands.
type flowContainer[T any, A Attr] struct {
	textContainer[T, A, FlowContent]
}

func (p *flowContainer[T, A]) heading(kind schema.ElementKind, text string) T {
	p.b.Child(vdom.Build(kind).Text(text))
	return p.self
}

// H1 appends an h1 holding text.
func (p *flowContainer[T, A]) H1(text string) T { return p.heading(schema.H1, text) }

// H2 appends an h2 holding text.
func (p *flowContainer[T, A]) H2(text string) T { return p.heading(schema.H2, text) }

// H3 appends an h3 holding text.
func (p *flowContainer[T, A]) H3(text string) T { return p.heading(schema.H3, text) }

// H4 appends an h4 holding text.
func (p *flowContainer[T, A]) H4(text string) T { return p.heading(schema.H4, text) }

// H5 appends an h5 holding text.
func (p *flowContainer[T, A]) H5(text string) T { return p.heading(schema.H5, text) }

// H6 appends an h6 holding text.
func (p *flowContainer[T, A]) H6(text string) T { return p.heading(schema.H6, text) }

// textOnly elements hold character data and nothing else.
type textOnly[T any, A Attr] struct {
	core[T, A]
}

// Text appends text.
func (p *textOnly[T, A]) Text(s string) T {
	p.b.Text(s)
	return p.self
}

// TextNode is escaped character data usable wherever text is permitted.
type TextNode struct {
	text string
}

// Text returns a text child.
func Text(s string) TextNode { return TextNode{text: s} }

// Textf returns a formatted text child.
func Textf(format string, args ...any) TextNode { return Text(fmt.Sprintf(format, args...)) }

func (t TextNode) Node() (*vdom.Node, error) { return vdom.Text(t.text), nil }
func (t TextNode) Err() error                { return nil }
func (t TextNode) child() vdom.Child         { return vdom.Text(t.text) }

// RawNode is trusted markup emitted without escaping.
type RawNode struct {
	markup string
}

// Unsafe returns a child that is written to the output verbatim. The caller
// is responsible for the markup being well formed and safe; nothing is
// escaped or checked.
func Unsafe(markup string) RawNode { return RawNode{markup: markup} }

func (r RawNode) Node() (*vdom.Node, error) { return vdom.Raw(r.markup), nil }
func (r RawNode) Err() error                { return nil }
func (r RawNode) child() vdom.Child         { return vdom.Raw(r.markup) }

// Range maps items to children.
func Range[T any, C any](items []T, fn func(item T, index int) C) []C {
	out := make([]C, 0, len(items))
	for i, it := range items {
		out = append(out, fn(it, i))
	}
	return out
}

// isNil reports whether v is the zero value of an interface or pointer type.
func isNil[V any](v V) bool {
	var zero V
	return any(v) == any(zero)
}
