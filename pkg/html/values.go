package html

import "github.com/vango-dev/markup/pkg/schema"

// Text-valued attributes.
type (
	Name        string // name of a form or form control
	Value       string // value of input, option and button
	Placeholder string
	For         string // id of the labelled control
	Download    string // suggested file name
	Rel         string // space-separated link types
	Alt         string
	Media       string // media query
	Content     string // meta content
)

// URL-valued attributes.
type (
	Href   string
	Src    string
	Action string
)

// Presence-only attributes. false leaves the attribute out of the output.
type (
	NoValidate bool
	Required   bool
	Disabled   bool
	Checked    bool
	ReadOnly   bool
	Autofocus  bool
	Multiple   bool
	Selected   bool
	Reversed   bool
)

// Numeric attributes. Unsigned types cannot hold the negative values the
// schema rejects.
type (
	MaxLength uint
	Rows      uint
	Cols      uint
	Width     uint
	Height    uint
	Min       float64
	Max       float64
	Start     int // first ordinal of an ol
)

func (v Name) attr() (schema.AttrKind, any)        { return schema.AttrName, string(v) }
func (v Value) attr() (schema.AttrKind, any)       { return schema.AttrValue, string(v) }
func (v Placeholder) attr() (schema.AttrKind, any) { return schema.AttrPlaceholder, string(v) }
func (v For) attr() (schema.AttrKind, any)         { return schema.AttrFor, string(v) }
func (v Download) attr() (schema.AttrKind, any)    { return schema.AttrDownload, string(v) }
func (v Rel) attr() (schema.AttrKind, any)         { return schema.AttrRel, string(v) }
func (v Alt) attr() (schema.AttrKind, any)         { return schema.AttrAlt, string(v) }
func (v Media) attr() (schema.AttrKind, any)       { return schema.AttrMedia, string(v) }
func (v Content) attr() (schema.AttrKind, any)     { return schema.AttrContent, string(v) }
func (v Href) attr() (schema.AttrKind, any)        { return schema.AttrHref, string(v) }
func (v Src) attr() (schema.AttrKind, any)         { return schema.AttrSrc, string(v) }
func (v Action) attr() (schema.AttrKind, any)      { return schema.AttrAction, string(v) }
func (v NoValidate) attr() (schema.AttrKind, any)  { return schema.AttrNoValidate, bool(v) }
func (v Required) attr() (schema.AttrKind, any)    { return schema.AttrRequired, bool(v) }
func (v Disabled) attr() (schema.AttrKind, any)    { return schema.AttrDisabled, bool(v) }
func (v Checked) attr() (schema.AttrKind, any)     { return schema.AttrChecked, bool(v) }
func (v ReadOnly) attr() (schema.AttrKind, any)    { return schema.AttrReadOnly, bool(v) }
func (v Autofocus) attr() (schema.AttrKind, any)   { return schema.AttrAutofocus, bool(v) }
func (v Multiple) attr() (schema.AttrKind, any)    { return schema.AttrMultiple, bool(v) }
func (v Selected) attr() (schema.AttrKind, any)    { return schema.AttrSelected, bool(v) }
func (v Reversed) attr() (schema.AttrKind, any)    { return schema.AttrReversed, bool(v) }
func (v MaxLength) attr() (schema.AttrKind, any)   { return schema.AttrMaxLength, uint(v) }
func (v Rows) attr() (schema.AttrKind, any)        { return schema.AttrRows, uint(v) }
func (v Cols) attr() (schema.AttrKind, any)        { return schema.AttrCols, uint(v) }
func (v Width) attr() (schema.AttrKind, any)       { return schema.AttrWidth, uint(v) }
func (v Height) attr() (schema.AttrKind, any)      { return schema.AttrHeight, uint(v) }
func (v Min) attr() (schema.AttrKind, any)         { return schema.AttrMin, float64(v) }
func (v Max) attr() (schema.AttrKind, any)         { return schema.AttrMax, float64(v) }
func (v Start) attr() (schema.AttrKind, any)       { return schema.AttrStart, int(v) }

// Method is the HTTP method of a form submission.
type Method uint8

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodDialog
)

// Enctype is the encoding of a form submission.
type Enctype uint8

const (
	EnctypeURLEncoded Enctype = iota + 1
	EnctypeMultipart
	EnctypePlain
)

// Target is the browsing context of a navigation.
type Target uint8

const (
	TargetBlank Target = iota + 1
	TargetSelf
	TargetParent
	TargetTop
)

// Autocomplete toggles browser autofill.
type Autocomplete uint8

const (
	AutocompleteOn Autocomplete = iota + 1
	AutocompleteOff
)

// InputType is the type of an input control.
type InputType uint8

const (
	InputText InputType = iota + 1
	InputEmail
	InputPassword
	InputSearch
	InputTel
	InputURL
	InputNumber
	InputRange
	InputDate
	InputDateTimeLocal
	InputMonth
	InputWeek
	InputTime
	InputColor
	InputCheckbox
	InputRadio
	InputFile
	InputHidden
	InputSubmit
	InputReset
	InputButton
	InputImage
)

// ButtonType is the behaviour of a button.
type ButtonType uint8

const (
	ButtonSubmit ButtonType = iota + 1
	ButtonReset
	ButtonButton
)

// MetaName is the name of a document metadata entry.
type MetaName uint8

const (
	MetaApplicationName MetaName = iota + 1
	MetaAuthor
	MetaColorScheme
	MetaDescription
	MetaGenerator
	MetaKeywords
	MetaReferrer
	MetaRobots
	MetaThemeColor
	MetaViewport
)

// Charset is the declared document encoding.
type Charset uint8

const (
	CharsetUTF8 Charset = iota + 1
)

var (
	methodNames       = []string{"", "get", "post", "dialog"}
	enctypeNames      = []string{"", "application/x-www-form-urlencoded", "multipart/form-data", "text/plain"}
	targetNames       = []string{"", "_blank", "_self", "_parent", "_top"}
	autocompleteNames = []string{"", "on", "off"}
	inputTypeNames    = []string{
		"", "text", "email", "password", "search", "tel", "url", "number", "range",
		"date", "datetime-local", "month", "week", "time", "color",
		"checkbox", "radio", "file", "hidden", "submit", "reset", "button", "image",
	}
	buttonTypeNames = []string{"", "submit", "reset", "button"}
	metaNameNames   = []string{
		"", "application-name", "author", "color-scheme", "description", "generator",
		"keywords", "referrer", "robots", "theme-color", "viewport",
	}
	charsetNames = []string{"", "utf-8"}
)

// keyword returns names[i], or "" for values outside the enumeration. The
// empty keyword fails the schema check, so a bad conversion is reported as
// an invalid attribute value.
func keyword(names []string, i uint8) string {
	if int(i) >= len(names) {
		return ""
	}
	return names[i]
}

func (v Method) String() string       { return keyword(methodNames, uint8(v)) }
func (v Enctype) String() string      { return keyword(enctypeNames, uint8(v)) }
func (v Target) String() string       { return keyword(targetNames, uint8(v)) }
func (v Autocomplete) String() string { return keyword(autocompleteNames, uint8(v)) }
func (v InputType) String() string    { return keyword(inputTypeNames, uint8(v)) }
func (v ButtonType) String() string   { return keyword(buttonTypeNames, uint8(v)) }
func (v MetaName) String() string     { return keyword(metaNameNames, uint8(v)) }
func (v Charset) String() string      { return keyword(charsetNames, uint8(v)) }

func (v Method) attr() (schema.AttrKind, any)       { return schema.AttrMethod, v.String() }
func (v Enctype) attr() (schema.AttrKind, any)      { return schema.AttrEnctype, v.String() }
func (v Target) attr() (schema.AttrKind, any)       { return schema.AttrTarget, v.String() }
func (v Autocomplete) attr() (schema.AttrKind, any) { return schema.AttrAutocomplete, v.String() }
func (v InputType) attr() (schema.AttrKind, any)    { return schema.AttrInputType, v.String() }
func (v ButtonType) attr() (schema.AttrKind, any)   { return schema.AttrButtonType, v.String() }
func (v MetaName) attr() (schema.AttrKind, any)     { return schema.AttrMetaName, v.String() }
func (v Charset) attr() (schema.AttrKind, any)      { return schema.AttrCharset, v.String() }

// Markers: which elements accept which attribute.

func (Rel) linkAttr()  {}
func (Rel) aAttr()     {}
func (Href) linkAttr() {}
func (Href) aAttr()    {}

func (Media) linkAttr()  {}
func (Media) styleAttr() {}

func (Content) metaAttr()  {}
func (MetaName) metaAttr() {}
func (Charset) metaAttr()  {}

func (Reversed) olAttr() {}
func (Start) olAttr()    {}

func (Method) formAttr()       {}
func (Action) formAttr()       {}
func (Enctype) formAttr()      {}
func (NoValidate) formAttr()   {}
func (Target) formAttr()       {}
func (Target) aAttr()          {}
func (Autocomplete) formAttr() {}
func (Autocomplete) inputAttr() {}

func (Name) formAttr()     {}
func (Name) inputAttr()    {}
func (Name) selectAttr()   {}
func (Name) textareaAttr() {}
func (Name) buttonAttr()   {}

func (Download) aAttr() {}

func (Src) imgAttr()    {}
func (Alt) imgAttr()    {}
func (Width) imgAttr()  {}
func (Height) imgAttr() {}

func (InputType) inputAttr() {}

func (Value) inputAttr()  {}
func (Value) optionAttr() {}
func (Value) buttonAttr() {}

func (Placeholder) inputAttr()    {}
func (Placeholder) textareaAttr() {}

func (Required) inputAttr()    {}
func (Required) selectAttr()   {}
func (Required) textareaAttr() {}

func (Disabled) inputAttr()    {}
func (Disabled) selectAttr()   {}
func (Disabled) optionAttr()   {}
func (Disabled) textareaAttr() {}
func (Disabled) buttonAttr()   {}

func (Checked) inputAttr() {}

func (ReadOnly) inputAttr()    {}
func (ReadOnly) textareaAttr() {}

func (Autofocus) inputAttr()    {}
func (Autofocus) selectAttr()   {}
func (Autofocus) textareaAttr() {}
func (Autofocus) buttonAttr()   {}

func (Multiple) inputAttr()  {}
func (Multiple) selectAttr() {}

func (MaxLength) inputAttr()    {}
func (MaxLength) textareaAttr() {}

func (Min) inputAttr() {}
func (Max) inputAttr() {}

func (For) labelAttr() {}

func (Selected) optionAttr() {}

func (Rows) textareaAttr() {}
func (Cols) textareaAttr() {}

func (ButtonType) buttonAttr() {}
