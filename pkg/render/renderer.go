package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/markup/pkg/html"
	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/vdom"
)

// Doctype is written before a document whose root is html.
const Doctype = "<!DOCTYPE html>"

// ErrNilNode is returned when asked to render a nil tree.
var ErrNilNode = errors.New("render: nil node")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Only elements whose children are all block-level elements are broken
	// onto separate lines, so text content is never altered.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// OmitDoctype suppresses the doctype before an html root.
	OmitDoctype bool

	// SkipValidation disables the check of the tree against the schema
	// before rendering. Trees built with the builders are always valid;
	// only set this for hand-assembled trees already known to be valid.
	SkipValidation bool
}

// Renderer serializes trees to HTML. It holds no per-render state and may
// be used from multiple goroutines.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Config returns the renderer's configuration with defaults applied.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// RenderToString renders a tree to a string.
func (r *Renderer) RenderToString(node *vdom.Node) (string, error) {
	var sb strings.Builder
	if err := r.RenderToWriter(&sb, node); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderToWriter writes a tree to w. The tree is validated first, so an
// invalid tree produces an error and no output.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.Node) error {
	if err := r.check(node); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err := r.emit(bw, node, nil); err != nil {
		return err
	}
	return bw.Flush()
}

// Render writes a typed element to w.
func (r *Renderer) Render(w io.Writer, e html.Element) error {
	node, err := e.Node()
	if err != nil {
		return err
	}
	return r.RenderToWriter(w, node)
}

// RenderString renders a typed element to a string.
func (r *Renderer) RenderString(e html.Element) (string, error) {
	node, err := e.Node()
	if err != nil {
		return "", err
	}
	return r.RenderToString(node)
}

// String renders e with the default configuration.
func String(e html.Element) (string, error) {
	return defaultRenderer.RenderString(e)
}

var defaultRenderer = NewRenderer(RendererConfig{})

func (r *Renderer) check(node *vdom.Node) error {
	if node == nil {
		return ErrNilNode
	}
	if r.config.SkipValidation {
		return nil
	}
	if err := vdom.Validate(node); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// emit writes the doctype, if any, and walks the tree. afterLeave, when set,
// runs after each element is closed.
func (r *Renderer) emit(w *bufio.Writer, node *vdom.Node, afterLeave func(n *vdom.Node, depth int) error) error {
	if node.Kind == vdom.KindElement && node.Element == schema.Html && !r.config.OmitDoctype {
		w.WriteString(Doctype)
		if r.config.Pretty {
			w.WriteByte('\n')
		}
	}
	e := &emitter{
		w:          w,
		pretty:     r.config.Pretty,
		indent:     r.config.Indent,
		afterLeave: afterLeave,
	}
	return vdom.Walk(node, e)
}

// frame is the state of an open element.
type frame struct {
	void  bool
	raw   bool
	block bool
}

// emitter is the vdom.Visitor that writes markup.
type emitter struct {
	w          *bufio.Writer
	pretty     bool
	indent     string
	stack      []frame
	afterLeave func(n *vdom.Node, depth int) error
}

func (e *emitter) Enter(n *vdom.Node, _ vdom.Path) error {
	if e.parentBlock() {
		e.writeIndent(len(e.stack))
	}

	e.w.WriteByte('<')
	e.w.WriteString(n.Tag())
	for _, a := range n.Attrs {
		if !a.Present() {
			continue
		}
		e.w.WriteByte(' ')
		e.w.WriteString(a.Name())
		if a.Kind.Domain().Kind == schema.DomainBool {
			continue
		}
		e.w.WriteString(`="`)
		writeEscaped(e.w, a.Value, &attrEntities)
		e.w.WriteByte('"')
	}
	e.w.WriteByte('>')

	if schema.IsVoid(n.Element) {
		e.stack = append(e.stack, frame{void: true})
		return vdom.SkipChildren
	}

	block := e.pretty && blockLayout(n)
	if block {
		e.w.WriteByte('\n')
	}
	e.stack = append(e.stack, frame{raw: schema.IsRawText(n.Element), block: block})
	return nil
}

func (e *emitter) Leave(n *vdom.Node, _ vdom.Path) error {
	f := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	if !f.void {
		if f.block {
			e.writeIndent(len(e.stack))
		}
		e.w.WriteString("</")
		e.w.WriteString(n.Tag())
		e.w.WriteByte('>')
	}
	if e.parentBlock() {
		e.w.WriteByte('\n')
	}
	if e.afterLeave != nil {
		return e.afterLeave(n, len(e.stack))
	}
	return nil
}

func (e *emitter) Text(n *vdom.Node, _ vdom.Path) error {
	switch {
	case n.Kind == vdom.KindRaw:
		e.w.WriteString(n.Text)
	case len(e.stack) > 0 && e.stack[len(e.stack)-1].raw:
		e.w.WriteString(rawTextSafe(n.Text))
	default:
		writeEscaped(e.w, n.Text, &textEntities)
	}
	return nil
}

// parentBlock reports whether the innermost open element lays its children
// out one per line. The root is treated as a block child in pretty mode.
func (e *emitter) parentBlock() bool {
	if len(e.stack) == 0 {
		return e.pretty
	}
	return e.stack[len(e.stack)-1].block
}

// writeIndent writes indentation for pretty printing.
func (e *emitter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.w.WriteString(e.indent)
	}
}

// blockLayout reports whether n's children may be placed on separate lines
// without changing the document: n holds only elements, none of them
// phrasing content.
func blockLayout(n *vdom.Node) bool {
	if len(n.Children) == 0 {
		return false
	}
	switch schema.ModelOf(n.Element).Content {
	case schema.ContentText, schema.ContentRawText, schema.ContentPhrasing:
		return false
	}
	for _, c := range n.Children {
		if c.Kind != vdom.KindElement || schema.CategoriesOf(c.Element).Has(schema.CatPhrasing) {
			return false
		}
	}
	return true
}
