package vdom

import (
	"errors"
	"fmt"

	"github.com/vango-dev/markup/pkg/schema"
)

// ErrUnknownElement is returned when a builder is created for an element
// kind outside the schema.
var ErrUnknownElement = errors.New("unknown element kind")

// Child is anything a Builder can attach: a *Builder or a *Node.
type Child interface {
	vnode() (*Node, error)
}

// Builder assembles an element node, checking every call against the
// schema as it is made.
//
// Calls chain:
//
//	form := vdom.Build(schema.Form).
//	    Attribute(schema.AttrMethod, "post").
//	    Child(vdom.Build(schema.Input).
//	        Attribute(schema.AttrInputType, "text").
//	        Attribute(schema.AttrName, "x"))
//	node, err := form.Node()
//
// The first failing call records its error and turns every later call into a
// no-op, so the error always names the offending element, attribute or child.
//
// Attaching a builder links the tree it holds so far. Later calls on the
// attached builder work on a private copy and never reach the parent.
// A Builder is not safe for concurrent use.
type Builder struct {
	node *Node
	err  error
}

// Build starts an empty element of the given kind. Elements with a fixed
// slot layout (html) start with every slot filled by an empty element.
func Build(kind schema.ElementKind) *Builder {
	b := &Builder{node: &Node{Kind: KindElement, Element: kind}}
	if !kind.Valid() {
		b.err = fmt.Errorf("%w: %d", ErrUnknownElement, kind)
		return b
	}
	for _, slot := range schema.Slots(kind) {
		b.node.Children = append(b.node.Children, adopt(&Node{Kind: KindElement, Element: slot}))
	}
	return b
}

// BuildTag starts an empty element from its tag name.
func BuildTag(tag string) *Builder {
	kind, ok := schema.ParseElementKind(tag)
	if !ok {
		b := &Builder{node: &Node{Kind: KindElement}}
		b.err = fmt.Errorf("%w: <%s>", ErrUnknownElement, tag)
		return b
	}
	return Build(kind)
}

// Kind returns the element kind being built.
func (b *Builder) Kind() schema.ElementKind {
	return b.node.Element
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Node returns the built node, or the first recorded error.
func (b *Builder) Node() (*Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.node, nil
}

// MustNode is like Node but panics on error. It is intended for trees built
// from constants, where an error is a programming mistake.
func (b *Builder) MustNode() *Node {
	n, err := b.Node()
	if err != nil {
		panic(err)
	}
	return n
}

// Clone returns an independent builder holding a deep copy of the tree built
// so far, so a partially built tree can serve as a template.
func (b *Builder) Clone() *Builder {
	c := b.node.Clone()
	return &Builder{node: c, err: b.err}
}

// Attribute sets attribute a to value v. Setting a kind that is already set
// replaces the earlier value in place.
func (b *Builder) Attribute(a schema.AttrKind, v any) *Builder {
	if b.err != nil {
		return b
	}
	text, on, err := schema.CheckAttr(b.node.Element, a, v)
	if err != nil {
		b.err = err
		return b
	}
	b.own()
	b.node.Attrs.Set(Attr{Kind: a, Value: text, On: on})
	return b
}

// AttributeByName is Attribute keyed by the rendered attribute name.
func (b *Builder) AttributeByName(name string, v any) *Builder {
	if b.err != nil {
		return b
	}
	a, ok := schema.AttrByName(b.node.Element, name)
	if !ok {
		b.err = &schema.AttributeNotPermittedError{Element: b.node.Element, Name: name}
		return b
	}
	return b.Attribute(a, v)
}

// Child appends c. For slot-structured elements c replaces the slot it
// belongs to. A node that already has a parent is attached as a copy.
func (b *Builder) Child(c Child) *Builder {
	if b.err != nil || c == nil {
		return b
	}
	n, err := c.vnode()
	if err != nil {
		b.err = err
		return b
	}
	if n == nil {
		return b
	}
	b.attach(n)
	return b
}

// Children appends each child in order.
func (b *Builder) Children(cs ...Child) *Builder {
	for _, c := range cs {
		b.Child(c)
	}
	return b
}

// Text appends a text node.
func (b *Builder) Text(s string) *Builder {
	if b.err != nil {
		return b
	}
	b.attach(&Node{Kind: KindText, Text: s})
	return b
}

// Textf appends a formatted text node.
func (b *Builder) Textf(format string, args ...any) *Builder {
	return b.Text(fmt.Sprintf(format, args...))
}

// Raw appends trusted markup that is emitted without escaping. It is
// accepted wherever text is.
func (b *Builder) Raw(s string) *Builder {
	if b.err != nil {
		return b
	}
	b.attach(&Node{Kind: KindRaw, Text: s})
	return b
}

// Map applies fn to the builder, letting callers keep conditional or looping
// construction inside a chain.
func (b *Builder) Map(fn func(*Builder) *Builder) *Builder {
	if b.err != nil {
		return b
	}
	return fn(b)
}

// own detaches the builder from a tree its node was linked into, so the
// next change stays local.
func (b *Builder) own() {
	if b.node.attached {
		b.node = b.node.Clone()
	}
}

func (b *Builder) attach(n *Node) {
	if err := schema.Permits(b.node.Element, n.ChildKind()); err != nil {
		b.err = err
		return
	}
	b.own()
	if n == b.node {
		// Attaching a builder to itself links a snapshot.
		n = n.Clone()
	}
	if n.Kind == KindElement {
		if i, ok := schema.Slot(b.node.Element, n.Element); ok {
			b.node.Children[i] = adopt(n)
			return
		}
	}
	b.node.Children = append(b.node.Children, adopt(n))
}

func (b *Builder) vnode() (*Node, error) {
	if b == nil {
		return nil, nil
	}
	return b.node, b.err
}

// vnode validates hand-assembled nodes before they are attached.
func (n *Node) vnode() (*Node, error) {
	if n == nil {
		return nil, nil
	}
	if err := Validate(n); err != nil {
		return nil, err
	}
	return n, nil
}
