package schema

// AttrKind identifies an attribute together with its value domain.
//
// Two kinds may render under the same name when their domains differ: the
// type of an input and the type of a button are distinct kinds.
type AttrKind uint8

const (
	invalidAttr AttrKind = iota

	// Global attributes
	AttrID
	AttrClass
	AttrStyle
	AttrTitle
	AttrLang
	AttrHidden

	// Forms
	AttrMethod
	AttrAction
	AttrEnctype
	AttrNoValidate
	AttrAutocomplete
	AttrName
	AttrValue
	AttrInputType
	AttrButtonType
	AttrPlaceholder
	AttrRequired
	AttrDisabled
	AttrChecked
	AttrReadOnly
	AttrAutofocus
	AttrMultiple
	AttrSelected
	AttrMaxLength
	AttrMin
	AttrMax
	AttrRows
	AttrCols
	AttrFor

	// Links and media
	AttrHref
	AttrTarget
	AttrDownload
	AttrRel
	AttrSrc
	AttrAlt
	AttrWidth
	AttrHeight
	AttrMedia

	// Metadata
	AttrMetaName
	AttrContent
	AttrCharset

	// Lists
	AttrReversed
	AttrStart

	attrCount
)

type attrDef struct {
	name   string
	domain Domain
}

var (
	methods       = keywords("get", "post", "dialog")
	enctypes      = keywords("application/x-www-form-urlencoded", "multipart/form-data", "text/plain")
	targets       = keywords("_blank", "_self", "_parent", "_top")
	autocompletes = keywords("on", "off")
	inputTypes    = keywords(
		"text", "email", "password", "search", "tel", "url", "number", "range",
		"date", "datetime-local", "month", "week", "time", "color",
		"checkbox", "radio", "file", "hidden", "submit", "reset", "button", "image",
	)
	buttonTypes = keywords("submit", "reset", "button")
	metaNames   = keywords(
		"application-name", "author", "color-scheme", "description", "generator",
		"keywords", "referrer", "robots", "theme-color", "viewport",
	)
	charsets = keywords("utf-8")
)

var attrDefs = [attrCount]attrDef{
	AttrID:     {"id", Text()},
	AttrClass:  {"class", Text()},
	AttrStyle:  {"style", Text()},
	AttrTitle:  {"title", Text()},
	AttrLang:   {"lang", Text()},
	AttrHidden: {"hidden", Bool()},

	AttrMethod:       {"method", methods},
	AttrAction:       {"action", URL()},
	AttrEnctype:      {"enctype", enctypes},
	AttrNoValidate:   {"novalidate", Bool()},
	AttrAutocomplete: {"autocomplete", autocompletes},
	AttrName:         {"name", Text()},
	AttrValue:        {"value", Text()},
	AttrInputType:    {"type", inputTypes},
	AttrButtonType:   {"type", buttonTypes},
	AttrPlaceholder:  {"placeholder", Text()},
	AttrRequired:     {"required", Bool()},
	AttrDisabled:     {"disabled", Bool()},
	AttrChecked:      {"checked", Bool()},
	AttrReadOnly:     {"readonly", Bool()},
	AttrAutofocus:    {"autofocus", Bool()},
	AttrMultiple:     {"multiple", Bool()},
	AttrSelected:     {"selected", Bool()},
	AttrMaxLength:    {"maxlength", Count()},
	AttrMin:          {"min", Number()},
	AttrMax:          {"max", Number()},
	AttrRows:         {"rows", Count()},
	AttrCols:         {"cols", Count()},
	AttrFor:          {"for", Text()},

	AttrHref:     {"href", URL()},
	AttrTarget:   {"target", targets},
	AttrDownload: {"download", Text()},
	AttrRel:      {"rel", Text()},
	AttrSrc:      {"src", URL()},
	AttrAlt:      {"alt", Text()},
	AttrWidth:    {"width", Count()},
	AttrHeight:   {"height", Count()},
	AttrMedia:    {"media", Text()},

	AttrMetaName: {"name", metaNames},
	AttrContent:  {"content", Text()},
	AttrCharset:  {"charset", charsets},

	AttrReversed: {"reversed", Bool()},
	AttrStart:    {"start", Integer()},
}

// String returns the rendered attribute name.
func (a AttrKind) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return attrDefs[a].name
}

// Valid reports whether a is one of the declared attribute kinds.
func (a AttrKind) Valid() bool {
	return a > invalidAttr && a < attrCount
}

// Domain returns the value domain of the attribute kind.
func (a AttrKind) Domain() Domain {
	if !a.Valid() {
		return Domain{}
	}
	return attrDefs[a].domain
}

// AttrKinds returns every declared attribute kind in declaration order.
func AttrKinds() []AttrKind {
	out := make([]AttrKind, 0, attrCount-1)
	for a := invalidAttr + 1; a < attrCount; a++ {
		out = append(out, a)
	}
	return out
}

// IsGlobal reports whether every element accepts a.
func IsGlobal(a AttrKind) bool {
	return a >= AttrID && a <= AttrHidden
}
