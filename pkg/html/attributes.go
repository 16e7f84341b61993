package html

import (
	"strings"

	"github.com/vango-dev/markup/pkg/schema"
)

// Attr is an attribute value ready to be set on an element.
type Attr interface {
	attr() (schema.AttrKind, any)
}

// GlobalAttr is accepted by every element. Elements with no specific
// attributes accept GlobalAttr only.
type GlobalAttr interface {
	Attr
	globalAttr()
}

// Per-element attribute sets. Each is sealed by a marker method, which the
// global attributes and the element's specific attributes implement.
type (
	MetaAttr interface {
		Attr
		metaAttr()
	}
	LinkAttr interface {
		Attr
		linkAttr()
	}
	StyleAttr interface {
		Attr
		styleAttr()
	}
	OlAttr interface {
		Attr
		olAttr()
	}
	FormAttr interface {
		Attr
		formAttr()
	}
	AAttr interface {
		Attr
		aAttr()
	}
	ImgAttr interface {
		Attr
		imgAttr()
	}
	InputAttr interface {
		Attr
		inputAttr()
	}
	LabelAttr interface {
		Attr
		labelAttr()
	}
	SelectAttr interface {
		Attr
		selectAttr()
	}
	OptionAttr interface {
		Attr
		optionAttr()
	}
	TextareaAttr interface {
		Attr
		textareaAttr()
	}
	ButtonAttr interface {
		Attr
		buttonAttr()
	}
)

// Global is one of the attributes every element accepts.
type Global struct {
	kind  schema.AttrKind
	value any
}

// ID sets the id attribute.
func ID(id string) Global { return Global{schema.AttrID, id} }

// Class sets the class attribute to the given class names joined by spaces.
func Class(names ...string) Global {
	return Global{schema.AttrClass, strings.Join(names, " ")}
}

// InlineStyle sets the style attribute.
func InlineStyle(css string) Global { return Global{schema.AttrStyle, css} }

// TitleAttr sets the advisory title attribute.
func TitleAttr(title string) Global { return Global{schema.AttrTitle, title} }

// Lang sets the lang attribute.
func Lang(tag string) Global { return Global{schema.AttrLang, tag} }

// Hidden sets the hidden attribute.
func Hidden(on bool) Global { return Global{schema.AttrHidden, on} }

func (g Global) attr() (schema.AttrKind, any) { return g.kind, g.value }

func (Global) globalAttr()   {}
func (Global) metaAttr()     {}
func (Global) linkAttr()     {}
func (Global) styleAttr()    {}
func (Global) olAttr()       {}
func (Global) formAttr()     {}
func (Global) aAttr()        {}
func (Global) imgAttr()      {}
func (Global) inputAttr()    {}
func (Global) labelAttr()    {}
func (Global) selectAttr()   {}
func (Global) optionAttr()   {}
func (Global) textareaAttr() {}
func (Global) buttonAttr()   {}
