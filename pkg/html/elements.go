package html

import "github.com/vango-dev/markup/pkg/schema"

// Document metadata.

// Head holds the document metadata.
type Head struct {
	container[*Head, GlobalAttr, MetadataContent]
}

// NewHead returns an empty head.
func NewHead() *Head {
	e := &Head{}
	e.init(schema.Head, e)
	return e
}

// Title is the document title.
type Title struct {
	textOnly[*Title, GlobalAttr]
}

// NewTitle returns a title holding text.
func NewTitle(text string) *Title {
	e := &Title{}
	e.init(schema.Title, e)
	return e.Text(text)
}

// Meta is a document metadata entry.
type Meta struct {
	core[*Meta, MetaAttr]
}

// NewMeta returns an empty meta element.
func NewMeta() *Meta {
	e := &Meta{}
	e.init(schema.Meta, e)
	return e
}

// Link references an external resource such as a stylesheet.
type Link struct {
	core[*Link, LinkAttr]
}

// NewLink returns an empty link element.
func NewLink() *Link {
	e := &Link{}
	e.init(schema.Link, e)
	return e
}

// Style holds an embedded stylesheet. Its text is emitted without escaping.
type Style struct {
	textOnly[*Style, StyleAttr]
}

// NewStyle returns a style element holding css.
func NewStyle(css string) *Style {
	e := &Style{}
	e.init(schema.Style, e)
	return e.Text(css)
}

func (*Title) metadataContent() {}
func (*Meta) metadataContent()  {}
func (*Link) metadataContent()  {}
func (*Style) metadataContent() {}

// Sections and grouping.

// Body holds the document content.
type Body struct {
	flowContainer[*Body, GlobalAttr]
}

// NewBody returns an empty body.
func NewBody() *Body {
	e := &Body{}
	e.init(schema.Body, e)
	return e
}

// Div is a generic flow container.
type Div struct {
	flowContainer[*Div, GlobalAttr]
}

// NewDiv returns an empty div.
func NewDiv() *Div {
	e := &Div{}
	e.init(schema.Div, e)
	return e
}

// P is a paragraph.
type P struct {
	textContainer[*P, GlobalAttr, PhrasingContent]
}

// NewP returns an empty paragraph.
func NewP() *P {
	e := &P{}
	e.init(schema.P, e)
	return e
}

// Heading is a section heading of rank 1 to 6.
type Heading struct {
	textContainer[*Heading, GlobalAttr, PhrasingContent]
}

// NewH1 returns an empty h1.
func NewH1() *Heading { return newHeading(schema.H1) }

// NewH2 returns an empty h2.
func NewH2() *Heading { return newHeading(schema.H2) }

// NewH3 returns an empty h3.
func NewH3() *Heading { return newHeading(schema.H3) }

// NewH4 returns an empty h4.
func NewH4() *Heading { return newHeading(schema.H4) }

// NewH5 returns an empty h5.
func NewH5() *Heading { return newHeading(schema.H5) }

// NewH6 returns an empty h6.
func NewH6() *Heading { return newHeading(schema.H6) }

func newHeading(kind schema.ElementKind) *Heading {
	e := &Heading{}
	e.init(kind, e)
	return e
}

// Hr is a thematic break.
type Hr struct {
	core[*Hr, GlobalAttr]
}

// NewHr returns a thematic break.
func NewHr() *Hr {
	e := &Hr{}
	e.init(schema.Hr, e)
	return e
}

// Noscript holds fallback text shown when scripting is disabled.
type Noscript struct {
	textOnly[*Noscript, GlobalAttr]
}

// NewNoscript returns a noscript element holding text.
func NewNoscript(text string) *Noscript {
	e := &Noscript{}
	e.init(schema.Noscript, e)
	return e.Text(text)
}

// Lists.

// Ul is an unordered list.
type Ul struct {
	container[*Ul, GlobalAttr, *Li]
}

// NewUl returns an empty unordered list.
func NewUl() *Ul {
	e := &Ul{}
	e.init(schema.Ul, e)
	return e
}

// Item appends an li holding text.
func (e *Ul) Item(text string) *Ul {
	return e.Child(NewLi().Text(text))
}

// Ol is an ordered list.
type Ol struct {
	container[*Ol, OlAttr, *Li]
}

// NewOl returns an empty ordered list.
func NewOl() *Ol {
	e := &Ol{}
	e.init(schema.Ol, e)
	return e
}

// Item appends an li holding text.
func (e *Ol) Item(text string) *Ol {
	return e.Child(NewLi().Text(text))
}

// Li is a list item.
type Li struct {
	flowContainer[*Li, GlobalAttr]
}

// NewLi returns an empty list item.
func NewLi() *Li {
	e := &Li{}
	e.init(schema.Li, e)
	return e
}

// Text-level semantics.

// A is a hyperlink.
type A struct {
	textContainer[*A, AAttr, InertPhrasing]
}

// NewA returns an empty hyperlink.
func NewA() *A {
	e := &A{}
	e.init(schema.A, e)
	return e
}

// Span is a generic phrasing container.
type Span struct {
	textContainer[*Span, GlobalAttr, PhrasingContent]
}

// NewSpan returns an empty span.
func NewSpan() *Span {
	e := &Span{}
	e.init(schema.Span, e)
	return e
}

// Strong marks importance.
type Strong struct {
	textContainer[*Strong, GlobalAttr, PhrasingContent]
}

// NewStrong returns an empty strong element.
func NewStrong() *Strong {
	e := &Strong{}
	e.init(schema.Strong, e)
	return e
}

// Em marks stress emphasis.
type Em struct {
	textContainer[*Em, GlobalAttr, PhrasingContent]
}

// NewEm returns an empty em element.
func NewEm() *Em {
	e := &Em{}
	e.init(schema.Em, e)
	return e
}

// Br is a line break.
type Br struct {
	core[*Br, GlobalAttr]
}

// NewBr returns a line break.
func NewBr() *Br {
	e := &Br{}
	e.init(schema.Br, e)
	return e
}

// Img is an embedded image.
type Img struct {
	core[*Img, ImgAttr]
}

// NewImg returns an image with the given source and alternative text.
func NewImg(src, alt string) *Img {
	e := &Img{}
	e.init(schema.Img, e)
	return e.Attribute(Src(src)).Attribute(Alt(alt))
}

// Forms.

// Form is a submittable form.
type Form struct {
	textContainer[*Form, FormAttr, FormContent]
}

// NewForm returns an empty form.
func NewForm() *Form {
	e := &Form{}
	e.init(schema.Form, e)
	return e
}

// Input is a form control.
type Input struct {
	core[*Input, InputAttr]
}

// NewInput returns an input of the given type.
func NewInput(t InputType) *Input {
	e := &Input{}
	e.init(schema.Input, e)
	return e.Attribute(t)
}

// Label is the caption of a form control.
type Label struct {
	textContainer[*Label, LabelAttr, LabelContent]
}

// NewLabel returns an empty label.
func NewLabel() *Label {
	e := &Label{}
	e.init(schema.Label, e)
	return e
}

// Select is a drop-down control.
type Select struct {
	container[*Select, SelectAttr, *Option]
}

// NewSelect returns an empty select.
func NewSelect() *Select {
	e := &Select{}
	e.init(schema.Select, e)
	return e
}

// Option is a choice in a select.
type Option struct {
	textOnly[*Option, OptionAttr]
}

// NewOption returns an option with the given value and label text.
func NewOption(value, text string) *Option {
	e := &Option{}
	e.init(schema.Option, e)
	return e.Attribute(Value(value)).Text(text)
}

// Textarea is a multi-line text control.
type Textarea struct {
	textOnly[*Textarea, TextareaAttr]
}

// NewTextarea returns an empty textarea.
func NewTextarea() *Textarea {
	e := &Textarea{}
	e.init(schema.Textarea, e)
	return e
}

// Button is a push button.
type Button struct {
	textContainer[*Button, ButtonAttr, InertPhrasing]
}

// NewButton returns a button of the given type.
func NewButton(t ButtonType) *Button {
	e := &Button{}
	e.init(schema.Button, e)
	return e.Attribute(t)
}

// Content markers.

func (*Div) flowContent()      {}
func (*P) flowContent()        {}
func (*Heading) flowContent()  {}
func (*Hr) flowContent()       {}
func (*Noscript) flowContent() {}
func (*Ul) flowContent()       {}
func (*Ol) flowContent()       {}
func (*Form) flowContent()     {}
func (*A) flowContent()        {}
func (*Span) flowContent()     {}
func (*Strong) flowContent()   {}
func (*Em) flowContent()       {}
func (*Br) flowContent()       {}
func (*Img) flowContent()      {}
func (*Input) flowContent()    {}
func (*Label) flowContent()    {}
func (*Select) flowContent()   {}
func (*Textarea) flowContent() {}
func (*Button) flowContent()   {}

func (*Div) formContent()      {}
func (*P) formContent()        {}
func (*Heading) formContent()  {}
func (*Hr) formContent()       {}
func (*Noscript) formContent() {}
func (*Ul) formContent()       {}
func (*Ol) formContent()       {}
func (*A) formContent()        {}
func (*Span) formContent()     {}
func (*Strong) formContent()   {}
func (*Em) formContent()       {}
func (*Br) formContent()       {}
func (*Img) formContent()      {}
func (*Input) formContent()    {}
func (*Label) formContent()    {}
func (*Select) formContent()   {}
func (*Textarea) formContent() {}
func (*Button) formContent()   {}

func (*A) phrasingContent()        {}
func (*Span) phrasingContent()     {}
func (*Strong) phrasingContent()   {}
func (*Em) phrasingContent()       {}
func (*Br) phrasingContent()       {}
func (*Img) phrasingContent()      {}
func (*Input) phrasingContent()    {}
func (*Label) phrasingContent()    {}
func (*Select) phrasingContent()   {}
func (*Textarea) phrasingContent() {}
func (*Button) phrasingContent()   {}

func (*Span) inertPhrasing()   {}
func (*Strong) inertPhrasing() {}
func (*Em) inertPhrasing()     {}
func (*Br) inertPhrasing()     {}
func (*Img) inertPhrasing()    {}

func (*A) labelContent()        {}
func (*Span) labelContent()     {}
func (*Strong) labelContent()   {}
func (*Em) labelContent()       {}
func (*Br) labelContent()       {}
func (*Img) labelContent()      {}
func (*Input) labelContent()    {}
func (*Select) labelContent()   {}
func (*Textarea) labelContent() {}
func (*Button) labelContent()   {}
