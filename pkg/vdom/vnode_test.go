package vdom

import (
	"testing"

	"github.com/vango-dev/markup/pkg/schema"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindRaw, "Raw"},
		{NodeKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeTag(t *testing.T) {
	var nilNode *Node
	if got := nilNode.Tag(); got != "" {
		t.Errorf("nil Tag() = %q, want empty", got)
	}
	if got := Text("x").Tag(); got != "" {
		t.Errorf("text Tag() = %q, want empty", got)
	}
	if got := Build(schema.Textarea).MustNode().Tag(); got != "textarea" {
		t.Errorf("Tag() = %q, want textarea", got)
	}
}

func TestNodeAttr(t *testing.T) {
	n := Build(schema.Input).
		Attribute(schema.AttrName, "q").
		Attribute(schema.AttrRequired, true).
		Attribute(schema.AttrDisabled, false).
		MustNode()

	if v, ok := n.Attr(schema.AttrName); !ok || v != "q" {
		t.Errorf("Attr(name) = %q, %v", v, ok)
	}
	if _, ok := n.Attr(schema.AttrRequired); !ok {
		t.Error("Attr(required) should report on")
	}
	if _, ok := n.Attr(schema.AttrDisabled); ok {
		t.Error("Attr(disabled) should report off")
	}
	if _, ok := n.Attr(schema.AttrValue); ok {
		t.Error("Attr(value) should be unset")
	}
}

func TestNodeCloneIsDeep(t *testing.T) {
	orig := Build(schema.Div).
		Attribute(schema.AttrID, "a").
		Child(Build(schema.P).Text("one")).
		MustNode()

	c := orig.Clone()
	c.Attrs.Set(Attr{Kind: schema.AttrID, Value: "b"})
	c.Children[0].Children[0].Text = "two"

	if v, _ := orig.Attr(schema.AttrID); v != "a" {
		t.Errorf("original id = %q, want a", v)
	}
	if got := orig.Children[0].Children[0].Text; got != "one" {
		t.Errorf("original text = %q, want one", got)
	}
	if c.attached {
		t.Error("clone root should not be attached")
	}
	if !c.Children[0].attached {
		t.Error("clone children should be attached")
	}
}
