package schema

// ElementKind identifies an HTML element.
type ElementKind uint8

const (
	invalidElement ElementKind = iota

	// Document structure
	Html
	Head
	Body

	// Metadata
	Title
	Meta
	Link
	Style

	// Flow content
	Noscript
	Div
	P
	H1
	H2
	H3
	H4
	H5
	H6
	Hr
	Ul
	Ol
	Li
	Form

	// Phrasing content
	A
	Span
	Strong
	Em
	Br
	Img
	Input
	Label
	Select
	Option
	Textarea
	Button

	elementCount
)

var elementNames = [elementCount]string{
	Html:     "html",
	Head:     "head",
	Body:     "body",
	Title:    "title",
	Meta:     "meta",
	Link:     "link",
	Style:    "style",
	Noscript: "noscript",
	Div:      "div",
	P:        "p",
	H1:       "h1",
	H2:       "h2",
	H3:       "h3",
	H4:       "h4",
	H5:       "h5",
	H6:       "h6",
	Hr:       "hr",
	Ul:       "ul",
	Ol:       "ol",
	Li:       "li",
	Form:     "form",
	A:        "a",
	Span:     "span",
	Strong:   "strong",
	Em:       "em",
	Br:       "br",
	Img:      "img",
	Input:    "input",
	Label:    "label",
	Select:   "select",
	Option:   "option",
	Textarea: "textarea",
	Button:   "button",
}

var elementsByName = func() map[string]ElementKind {
	m := make(map[string]ElementKind, elementCount)
	for _, e := range Elements() {
		m[elementNames[e]] = e
	}
	return m
}()

// String returns the tag name of the element.
func (e ElementKind) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return elementNames[e]
}

// Valid reports whether e is one of the declared element kinds.
func (e ElementKind) Valid() bool {
	return e > invalidElement && e < elementCount
}

// ParseElementKind returns the element kind for a tag name.
func ParseElementKind(tag string) (ElementKind, bool) {
	e, ok := elementsByName[tag]
	return e, ok
}

// Elements returns every declared element kind in declaration order.
func Elements() []ElementKind {
	out := make([]ElementKind, 0, elementCount-1)
	for e := invalidElement + 1; e < elementCount; e++ {
		out = append(out, e)
	}
	return out
}

// IsHeading reports whether e is one of h1 through h6.
func IsHeading(e ElementKind) bool {
	return e >= H1 && e <= H6
}
