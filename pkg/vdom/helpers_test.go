package vdom

import (
	"testing"

	"github.com/vango-dev/markup/pkg/schema"
)

func TestTextAndRaw(t *testing.T) {
	if n := Text("hi"); n.Kind != KindText || n.Text != "hi" {
		t.Errorf("Text() = %+v", n)
	}
	if n := Textf("%d items", 3); n.Text != "3 items" {
		t.Errorf("Textf() = %q", n.Text)
	}
	if n := Raw("<b>x</b>"); n.Kind != KindRaw {
		t.Errorf("Raw() kind = %v", n.Kind)
	}
}

func TestConditionals(t *testing.T) {
	a := Build(schema.Span)
	b := Build(schema.Em)

	if If(true, a) != Child(a) {
		t.Error("If(true) should return the child")
	}
	if If(false, a) != nil {
		t.Error("If(false) should return nil")
	}
	if IfElse(false, a, b) != Child(b) {
		t.Error("IfElse(false) should return the second child")
	}

	called := false
	got := When(false, func() Child {
		called = true
		return a
	})
	if got != nil || called {
		t.Error("When(false) should not call fn")
	}
}

func TestConditionalsInsideBuilder(t *testing.T) {
	loggedIn := false
	n := Build(schema.P).Children(
		If(loggedIn, Build(schema.Strong).Text("welcome back")),
		IfElse(loggedIn, Text("a"), Text("sign in")),
	).MustNode()

	if len(n.Children) != 1 || n.Children[0].Text != "sign in" {
		t.Errorf("children = %+v", n.Children)
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "", "c"}
	children := Range(items, func(s string, i int) Child {
		if s == "" {
			return nil
		}
		return Build(schema.Li).Text(s)
	})
	if len(children) != 2 {
		t.Fatalf("len = %d, want 2", len(children))
	}

	n := Build(schema.Ul).Children(children...).MustNode()
	if got := n.Children[1].Children[0].Text; got != "c" {
		t.Errorf("second item = %q, want c", got)
	}
}
