package html

import "github.com/vango-dev/markup/pkg/schema"

// Document is the html root element. It always holds exactly one head and
// one body, which start empty and are replaced by Head and Body.
type Document struct {
	core[*Document, GlobalAttr]
}

// NewDocument returns a document with an empty head and body.
func NewDocument() *Document {
	e := &Document{}
	e.init(schema.Html, e)
	return e
}

// Head replaces the document head.
func (d *Document) Head(h *Head) *Document {
	if h != nil {
		d.b.Child(h.b)
	}
	return d
}

// Body replaces the document body.
func (d *Document) Body(b *Body) *Document {
	if b != nil {
		d.b.Child(b.b)
	}
	return d
}

// Page builds the common document shape: a head with a UTF-8 charset,
// viewport and title, and the given body.
func Page(title string, body *Body) *Document {
	head := NewHead().Children(
		NewMeta().Attribute(CharsetUTF8),
		NewMeta().Attribute(MetaViewport).Attribute(Content("width=device-width, initial-scale=1")),
		NewTitle(title),
	)
	return NewDocument().Head(head).Body(body)
}
