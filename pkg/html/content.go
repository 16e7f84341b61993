package html

// Content interfaces are sealed: only types in this package implement them,
// and each element type implements exactly the interfaces matching its
// content categories. A child the grammar forbids does not compile.

// FlowContent is accepted by body, div, li and form.
type FlowContent interface {
	Element
	flowContent()
}

// PhrasingContent is accepted by paragraphs, headings and inline elements.
type PhrasingContent interface {
	FlowContent
	phrasingContent()
}

// InertPhrasing is phrasing content that is not interactive, as required
// inside a and button.
type InertPhrasing interface {
	PhrasingContent
	inertPhrasing()
}

// LabelContent is phrasing content other than label.
type LabelContent interface {
	PhrasingContent
	labelContent()
}

// FormContent is flow content other than form.
type FormContent interface {
	Element
	formContent()
}

// MetadataContent is accepted by head.
type MetadataContent interface {
	Element
	metadataContent()
}

// Text and raw markup are accepted wherever character data is.

func (TextNode) flowContent()     {}
func (TextNode) phrasingContent() {}
func (TextNode) inertPhrasing()   {}
func (TextNode) labelContent()    {}
func (TextNode) formContent()     {}

func (RawNode) flowContent()     {}
func (RawNode) phrasingContent() {}
func (RawNode) inertPhrasing()   {}
func (RawNode) labelContent()    {}
func (RawNode) formContent()     {}
