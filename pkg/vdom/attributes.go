package vdom

import "github.com/vango-dev/markup/pkg/schema"

// Attr is a validated attribute in canonical form.
type Attr struct {
	Kind schema.AttrKind

	// Value holds text, URL, keyword and number values.
	Value string

	// On holds the state of presence-only attributes.
	On bool
}

// Name returns the rendered attribute name.
func (a Attr) Name() string {
	return a.Kind.String()
}

// Present reports whether the attribute is emitted on render.
func (a Attr) Present() bool {
	if a.Kind.Domain().Kind == schema.DomainBool {
		return a.On
	}
	return true
}

// Attrs is an ordered attribute list with at most one entry per kind.
type Attrs []Attr

// Get returns the attribute of kind k.
func (as Attrs) Get(k schema.AttrKind) (Attr, bool) {
	for _, a := range as {
		if a.Kind == k {
			return a, true
		}
	}
	return Attr{}, false
}

// Set stores a. An attribute of the same kind keeps its position and takes
// the new value; otherwise a is appended.
func (as *Attrs) Set(a Attr) {
	for i := range *as {
		if (*as)[i].Kind == a.Kind {
			(*as)[i] = a
			return
		}
	}
	*as = append(*as, a)
}

// Delete removes the attribute of kind k.
func (as *Attrs) Delete(k schema.AttrKind) {
	for i := range *as {
		if (*as)[i].Kind == k {
			*as = append((*as)[:i], (*as)[i+1:]...)
			return
		}
	}
}

// Equal reports whether both lists hold the same attributes in the same order.
func (as Attrs) Equal(other Attrs) bool {
	if len(as) != len(other) {
		return false
	}
	for i := range as {
		if as[i] != other[i] {
			return false
		}
	}
	return true
}
