package schema

// specificAttrs lists the attributes an element accepts in addition to the
// global ones. Elements missing from the table accept global attributes only.
var specificAttrs = map[ElementKind][]AttrKind{
	Meta:  {AttrMetaName, AttrContent, AttrCharset},
	Link:  {AttrRel, AttrHref, AttrMedia},
	Style: {AttrMedia},
	Ol:    {AttrReversed, AttrStart},
	Form: {
		AttrMethod, AttrAction, AttrEnctype, AttrTarget, AttrNoValidate,
		AttrAutocomplete, AttrName,
	},
	A:   {AttrHref, AttrTarget, AttrDownload, AttrRel},
	Img: {AttrSrc, AttrAlt, AttrWidth, AttrHeight},
	Input: {
		AttrInputType, AttrName, AttrValue, AttrPlaceholder, AttrRequired,
		AttrDisabled, AttrChecked, AttrReadOnly, AttrAutofocus, AttrMultiple,
		AttrAutocomplete, AttrMaxLength, AttrMin, AttrMax,
	},
	Label:  {AttrFor},
	Select: {AttrName, AttrRequired, AttrDisabled, AttrMultiple, AttrAutofocus},
	Option: {AttrValue, AttrSelected, AttrDisabled},
	Textarea: {
		AttrName, AttrPlaceholder, AttrRows, AttrCols, AttrRequired,
		AttrDisabled, AttrReadOnly, AttrAutofocus, AttrMaxLength,
	},
	Button: {AttrButtonType, AttrName, AttrValue, AttrDisabled, AttrAutofocus},
}

// registry[e][a] is true when element e accepts attribute a.
var registry = func() [elementCount][attrCount]bool {
	var r [elementCount][attrCount]bool
	for _, e := range Elements() {
		for _, a := range AttrKinds() {
			if IsGlobal(a) {
				r[e][a] = true
			}
		}
		for _, a := range specificAttrs[e] {
			r[e][a] = true
		}
	}
	return r
}()

// Lookup reports whether element e accepts attribute a and, if so, the
// domain its value is checked against.
func Lookup(e ElementKind, a AttrKind) (Domain, bool) {
	if !e.Valid() || !a.Valid() || !registry[e][a] {
		return Domain{}, false
	}
	return a.Domain(), true
}

// Attributes returns the attribute kinds element e accepts, global
// attributes first, in declaration order.
func Attributes(e ElementKind) []AttrKind {
	if !e.Valid() {
		return nil
	}
	var out []AttrKind
	for _, a := range AttrKinds() {
		if registry[e][a] {
			out = append(out, a)
		}
	}
	return out
}

// CheckAttr validates attaching attribute a with value v to element e and
// returns the value in canonical form. on carries the value of
// presence-only attributes.
func CheckAttr(e ElementKind, a AttrKind, v any) (text string, on bool, err error) {
	d, ok := Lookup(e, a)
	if !ok {
		return "", false, &AttributeNotPermittedError{Element: e, Attr: a}
	}
	text, on, err = d.normalize(v)
	if err != nil {
		return "", false, &InvalidAttributeValueError{Attr: a, Value: v, Reason: err.Error()}
	}
	return text, on, nil
}

// CheckValue validates v against the domain of a without regard to any
// element.
func CheckValue(a AttrKind, v any) (text string, on bool, err error) {
	if !a.Valid() {
		return "", false, &InvalidAttributeValueError{Attr: a, Value: v, Reason: "unknown attribute"}
	}
	text, on, err = a.Domain().normalize(v)
	if err != nil {
		return "", false, &InvalidAttributeValueError{Attr: a, Value: v, Reason: err.Error()}
	}
	return text, on, nil
}

// AttrByName resolves a rendered attribute name to the kind element e
// accepts under that name.
func AttrByName(e ElementKind, name string) (AttrKind, bool) {
	for _, a := range Attributes(e) {
		if a.String() == name {
			return a, true
		}
	}
	return invalidAttr, false
}
