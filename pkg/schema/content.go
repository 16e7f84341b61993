package schema

import "strings"

// ContentKind is the shape of the children an element may hold.
type ContentKind uint8

const (
	ContentVoid     ContentKind = iota + 1 // no children, no closing tag
	ContentText                            // character data only, escaped
	ContentRawText                         // character data only, emitted verbatim
	ContentFlow                            // flow elements and text
	ContentPhrasing                        // phrasing elements and text
	ContentMetadata                        // metadata elements only
	ContentList                            // li elements only
	ContentOptions                         // option elements only
	ContentDocument                        // fixed head and body slots
)

// String returns the string representation of the ContentKind.
func (k ContentKind) String() string {
	switch k {
	case ContentVoid:
		return "void"
	case ContentText:
		return "text"
	case ContentRawText:
		return "raw text"
	case ContentFlow:
		return "flow"
	case ContentPhrasing:
		return "phrasing"
	case ContentMetadata:
		return "metadata"
	case ContentList:
		return "list"
	case ContentOptions:
		return "options"
	case ContentDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Category is a set of content categories an element belongs to.
type Category uint8

const (
	CatFlow Category = 1 << iota
	CatPhrasing
	CatInteractive
	CatMetadata
	CatListItem
	CatOption
	CatSection
)

// Has reports whether c includes every bit of other.
func (c Category) Has(other Category) bool {
	return c&other == other
}

// String lists the category names joined by "|".
func (c Category) String() string {
	names := []string{"flow", "phrasing", "interactive", "metadata", "list-item", "option", "section"}
	var parts []string
	for i, n := range names {
		if c&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Model is the content model of one element kind.
type Model struct {
	Content ContentKind

	// Exclude lists element kinds removed from the accepted set.
	Exclude Category

	// ExcludeKinds lists individual element kinds removed from the accepted set.
	ExcludeKinds []ElementKind
}

const (
	phrasing    = CatFlow | CatPhrasing
	interactive = CatFlow | CatPhrasing | CatInteractive
)

var categories = [elementCount]Category{
	Html:     0,
	Head:     CatSection,
	Body:     CatSection,
	Title:    CatMetadata,
	Meta:     CatMetadata,
	Link:     CatMetadata,
	Style:    CatMetadata,
	Noscript: CatFlow,
	Div:      CatFlow,
	P:        CatFlow,
	H1:       CatFlow,
	H2:       CatFlow,
	H3:       CatFlow,
	H4:       CatFlow,
	H5:       CatFlow,
	H6:       CatFlow,
	Hr:       CatFlow,
	Ul:       CatFlow,
	Ol:       CatFlow,
	Li:       CatListItem,
	Form:     CatFlow,
	A:        interactive,
	Span:     phrasing,
	Strong:   phrasing,
	Em:       phrasing,
	Br:       phrasing,
	Img:      phrasing,
	Input:    interactive,
	Label:    interactive,
	Select:   interactive,
	Option:   CatOption,
	Textarea: interactive,
	Button:   interactive,
}

var models = [elementCount]Model{
	Html:     {Content: ContentDocument},
	Head:     {Content: ContentMetadata},
	Body:     {Content: ContentFlow},
	Title:    {Content: ContentText},
	Meta:     {Content: ContentVoid},
	Link:     {Content: ContentVoid},
	Style:    {Content: ContentRawText},
	Noscript: {Content: ContentText},
	Div:      {Content: ContentFlow},
	P:        {Content: ContentPhrasing},
	H1:       {Content: ContentPhrasing},
	H2:       {Content: ContentPhrasing},
	H3:       {Content: ContentPhrasing},
	H4:       {Content: ContentPhrasing},
	H5:       {Content: ContentPhrasing},
	H6:       {Content: ContentPhrasing},
	Hr:       {Content: ContentVoid},
	Ul:       {Content: ContentList},
	Ol:       {Content: ContentList},
	Li:       {Content: ContentFlow},
	Form:     {Content: ContentFlow, ExcludeKinds: []ElementKind{Form}},
	A:        {Content: ContentPhrasing, Exclude: CatInteractive},
	Span:     {Content: ContentPhrasing},
	Strong:   {Content: ContentPhrasing},
	Em:       {Content: ContentPhrasing},
	Br:       {Content: ContentVoid},
	Img:      {Content: ContentVoid},
	Input:    {Content: ContentVoid},
	Label:    {Content: ContentPhrasing, ExcludeKinds: []ElementKind{Label}},
	Select:   {Content: ContentOptions},
	Option:   {Content: ContentText},
	Textarea: {Content: ContentText},
	Button:   {Content: ContentPhrasing, Exclude: CatInteractive},
}

// documentSlots is the fixed child layout of the html element.
var documentSlots = []ElementKind{Head, Body}

// ChildKind identifies a candidate child: an element kind or character data.
type ChildKind struct {
	Element ElementKind
}

// TextChild is the ChildKind of text and raw character data.
var TextChild = ChildKind{}

// ChildElement returns the ChildKind of an element.
func ChildElement(e ElementKind) ChildKind {
	return ChildKind{Element: e}
}

// IsText reports whether c stands for character data.
func (c ChildKind) IsText() bool {
	return c.Element == invalidElement
}

// String returns "text" or the element's tag name.
func (c ChildKind) String() string {
	if c.IsText() {
		return "text"
	}
	return c.Element.String()
}

// ModelOf returns the content model of element e.
func ModelOf(e ElementKind) Model {
	if !e.Valid() {
		return Model{}
	}
	return models[e]
}

// CategoriesOf returns the content categories element e belongs to.
func CategoriesOf(e ElementKind) Category {
	if !e.Valid() {
		return 0
	}
	return categories[e]
}

// IsVoid reports whether e never has children.
func IsVoid(e ElementKind) bool {
	return ModelOf(e).Content == ContentVoid
}

// IsRawText reports whether e's character data is emitted without escaping.
func IsRawText(e ElementKind) bool {
	return ModelOf(e).Content == ContentRawText
}

// Slots returns the fixed child layout of e, or nil when e holds an ordered
// child list.
func Slots(e ElementKind) []ElementKind {
	if ModelOf(e).Content != ContentDocument {
		return nil
	}
	return documentSlots
}

// Slot returns the slot index child occupies in parent.
func Slot(parent, child ElementKind) (int, bool) {
	for i, s := range Slots(parent) {
		if s == child {
			return i, true
		}
	}
	return 0, false
}

// AcceptsText reports whether e may hold character data.
func AcceptsText(e ElementKind) bool {
	switch ModelOf(e).Content {
	case ContentText, ContentRawText, ContentFlow, ContentPhrasing:
		return true
	default:
		return false
	}
}

// Permits reports, as a *ChildNotPermittedError, whether child may be
// attached to parent.
func Permits(parent ElementKind, child ChildKind) error {
	if !parent.Valid() || (!child.IsText() && !child.Element.Valid()) {
		return &ChildNotPermittedError{Parent: parent, Child: child}
	}
	if child.IsText() {
		if AcceptsText(parent) {
			return nil
		}
		return &ChildNotPermittedError{Parent: parent, Child: child}
	}

	m := models[parent]
	cats := categories[child.Element]
	var ok bool
	switch m.Content {
	case ContentFlow:
		ok = cats.Has(CatFlow)
	case ContentPhrasing:
		ok = cats.Has(CatPhrasing)
	case ContentMetadata:
		ok = cats.Has(CatMetadata)
	case ContentList:
		ok = cats.Has(CatListItem)
	case ContentOptions:
		ok = cats.Has(CatOption)
	case ContentDocument:
		_, ok = Slot(parent, child.Element)
	}
	if ok && m.Exclude != 0 && cats&m.Exclude != 0 {
		ok = false
	}
	for _, x := range m.ExcludeKinds {
		if x == child.Element {
			ok = false
		}
	}
	if !ok {
		return &ChildNotPermittedError{Parent: parent, Child: child}
	}
	return nil
}
