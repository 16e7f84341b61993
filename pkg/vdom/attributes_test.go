package vdom

import (
	"testing"

	"github.com/vango-dev/markup/pkg/schema"
)

func TestAttrsSetKeepsPosition(t *testing.T) {
	var as Attrs
	as.Set(Attr{Kind: schema.AttrID, Value: "a"})
	as.Set(Attr{Kind: schema.AttrClass, Value: "c"})
	as.Set(Attr{Kind: schema.AttrID, Value: "b"})

	if len(as) != 2 {
		t.Fatalf("len = %d, want 2", len(as))
	}
	if as[0].Kind != schema.AttrID || as[0].Value != "b" {
		t.Errorf("as[0] = %+v, want id=b", as[0])
	}
	if as[1].Kind != schema.AttrClass {
		t.Errorf("as[1] = %+v, want class", as[1])
	}
}

func TestAttrsDelete(t *testing.T) {
	as := Attrs{
		{Kind: schema.AttrID, Value: "a"},
		{Kind: schema.AttrClass, Value: "c"},
		{Kind: schema.AttrTitle, Value: "t"},
	}
	as.Delete(schema.AttrClass)
	as.Delete(schema.AttrLang)

	if len(as) != 2 || as[0].Kind != schema.AttrID || as[1].Kind != schema.AttrTitle {
		t.Errorf("after delete: %+v", as)
	}
	if _, ok := as.Get(schema.AttrClass); ok {
		t.Error("class still present")
	}
}

func TestAttrsEqual(t *testing.T) {
	a := Attrs{{Kind: schema.AttrID, Value: "a"}, {Kind: schema.AttrClass, Value: "c"}}
	b := Attrs{{Kind: schema.AttrID, Value: "a"}, {Kind: schema.AttrClass, Value: "c"}}
	reordered := Attrs{{Kind: schema.AttrClass, Value: "c"}, {Kind: schema.AttrID, Value: "a"}}

	if !a.Equal(b) {
		t.Error("identical lists should be equal")
	}
	if a.Equal(reordered) {
		t.Error("order is significant")
	}
	if a.Equal(a[:1]) {
		t.Error("different lengths should differ")
	}
}

func TestAttrPresent(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want bool
	}{
		{"text", Attr{Kind: schema.AttrClass, Value: ""}, true},
		{"bool on", Attr{Kind: schema.AttrHidden, On: true}, true},
		{"bool off", Attr{Kind: schema.AttrHidden}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.Present(); got != tt.want {
				t.Errorf("Present() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (Attr{Kind: schema.AttrInputType}).Name(); got != "type" {
		t.Errorf("Name() = %q, want type", got)
	}
}
