package vdom

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/markup/pkg/schema"
)

// assertRoundTrip applies Diff(prev, next) to a copy of prev and checks the
// result equals next.
func assertRoundTrip(t *testing.T, prev, next *Node) []Patch {
	t.Helper()
	patches := Diff(prev, next)
	got, err := Apply(prev.Clone(), patches)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !equalTrees(got, next) {
		t.Errorf("Apply(Diff) did not reproduce next\npatches: %+v", patches)
	}
	return patches
}

func equalTrees(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Element != b.Element || a.Text != b.Text || !a.Attrs.Equal(b.Attrs) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !equalTrees(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func TestDiffBothNil(t *testing.T) {
	patches := Diff(nil, nil)
	if len(patches) != 0 {
		t.Errorf("Expected 0 patches, got %d", len(patches))
	}
}

func TestDiffNodeRemoved(t *testing.T) {
	prev := Build(schema.Div).MustNode()

	patches := Diff(prev, nil)

	if len(patches) != 1 {
		t.Fatalf("Expected 1 patch, got %d", len(patches))
	}
	if patches[0].Op != PatchRemoveNode {
		t.Errorf("Op = %v, want PatchRemoveNode", patches[0].Op)
	}
	if len(patches[0].Path) != 0 {
		t.Errorf("Path = %v, want root", patches[0].Path)
	}
}

func TestDiffIdentical(t *testing.T) {
	if patches := Diff(sampleTree(), sampleTree()); len(patches) != 0 {
		t.Errorf("Expected 0 patches, got %+v", patches)
	}
}

func TestDiffTextChange(t *testing.T) {
	prev := Build(schema.P).Text("Hello").MustNode()
	next := Build(schema.P).Text("World").MustNode()

	patches := assertRoundTrip(t, prev, next)

	if len(patches) != 1 {
		t.Fatalf("Expected 1 patch, got %d", len(patches))
	}
	want := Patch{Op: PatchSetText, Path: Path{0}, Value: "World"}
	if !reflect.DeepEqual(patches[0], want) {
		t.Errorf("patch = %+v, want %+v", patches[0], want)
	}
}

func TestDiffElementChange(t *testing.T) {
	prev := Build(schema.Div).Child(Build(schema.P)).MustNode()
	next := Build(schema.Div).Child(Build(schema.Ul)).MustNode()

	patches := assertRoundTrip(t, prev, next)

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("patches = %+v, want one ReplaceNode", patches)
	}
}

func TestDiffKindChange(t *testing.T) {
	prev := Build(schema.P).Text("x").MustNode()
	next := Build(schema.P).Child(Build(schema.Em).Text("x")).MustNode()

	patches := assertRoundTrip(t, prev, next)

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("patches = %+v, want one ReplaceNode", patches)
	}
}

func TestDiffRawChange(t *testing.T) {
	prev := Build(schema.Div).Raw("<b>a</b>").MustNode()
	next := Build(schema.Div).Raw("<b>b</b>").MustNode()

	patches := assertRoundTrip(t, prev, next)

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("patches = %+v, want one ReplaceNode", patches)
	}
}

func TestDiffAttrs(t *testing.T) {
	prev := Build(schema.Input).
		Attribute(schema.AttrInputType, "text").
		Attribute(schema.AttrName, "q").
		Attribute(schema.AttrRequired, true).
		MustNode()
	next := Build(schema.Input).
		Attribute(schema.AttrInputType, "email").
		Attribute(schema.AttrName, "q").
		Attribute(schema.AttrPlaceholder, "you@example.com").
		MustNode()

	patches := assertRoundTrip(t, prev, next)

	want := []Patch{
		{Op: PatchRemoveAttr, Path: Path{}, Attr: schema.AttrRequired},
		{Op: PatchSetAttr, Path: Path{}, Attr: schema.AttrInputType, Value: "email"},
		{Op: PatchSetAttr, Path: Path{}, Attr: schema.AttrPlaceholder, Value: "you@example.com"},
	}
	if !reflect.DeepEqual(patches, want) {
		t.Errorf("patches = %+v\nwant %+v", patches, want)
	}
}

func TestDiffAttrReorder(t *testing.T) {
	prev := Build(schema.Div).
		Attribute(schema.AttrID, "a").
		Attribute(schema.AttrClass, "c").
		MustNode()
	next := Build(schema.Div).
		Attribute(schema.AttrClass, "c").
		Attribute(schema.AttrID, "a").
		MustNode()

	assertRoundTrip(t, prev, next)
}

func TestDiffChildrenAppended(t *testing.T) {
	prev := Build(schema.Ul).Child(Build(schema.Li).Text("a")).MustNode()
	next := Build(schema.Ul).Children(
		Build(schema.Li).Text("a"),
		Build(schema.Li).Text("b"),
		Build(schema.Li).Text("c"),
	).MustNode()

	patches := assertRoundTrip(t, prev, next)

	if len(patches) != 2 {
		t.Fatalf("Expected 2 patches, got %d", len(patches))
	}
	for i, p := range patches {
		if p.Op != PatchInsertNode || p.Index != i+1 || len(p.Path) != 0 {
			t.Errorf("patch %d = %+v", i, p)
		}
	}
}

func TestDiffChildrenRemoved(t *testing.T) {
	prev := Build(schema.Ul).Children(
		Build(schema.Li).Text("a"),
		Build(schema.Li).Text("b"),
		Build(schema.Li).Text("c"),
	).MustNode()
	next := Build(schema.Ul).Child(Build(schema.Li).Text("x")).MustNode()

	patches := assertRoundTrip(t, prev, next)

	want := []Patch{
		{Op: PatchSetText, Path: Path{0, 0}, Value: "x"},
		{Op: PatchRemoveNode, Path: Path{2}},
		{Op: PatchRemoveNode, Path: Path{1}},
	}
	if !reflect.DeepEqual(patches, want) {
		t.Errorf("patches = %+v\nwant %+v", patches, want)
	}
}

func TestDiffNestedDocument(t *testing.T) {
	page := func(title string, items ...string) *Node {
		list := Build(schema.Ul)
		for _, it := range items {
			list.Child(Build(schema.Li).Text(it))
		}
		return Build(schema.Html).
			Child(Build(schema.Head).Child(Build(schema.Title).Text(title))).
			Child(Build(schema.Body).Child(list)).
			MustNode()
	}

	assertRoundTrip(t, page("one", "a", "b", "c"), page("two", "a"))
	assertRoundTrip(t, page("one"), page("one", "x", "y"))
}

func TestDiffPrevNil(t *testing.T) {
	next := sampleTree()
	patches := Diff(nil, next)
	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("patches = %+v", patches)
	}
	got, err := Apply(nil, patches)
	if err != nil {
		t.Fatal(err)
	}
	if !equalTrees(got, next) {
		t.Error("Apply did not produce next")
	}
}

func TestApplyBadTarget(t *testing.T) {
	root := sampleTree()
	_, err := Apply(root, []Patch{{Op: PatchSetText, Path: Path{9}}})
	if !errors.Is(err, ErrPatchTarget) {
		t.Errorf("error = %v, want ErrPatchTarget", err)
	}
	_, err = Apply(root, []Patch{{Op: PatchInsertNode, Path: Path{}, Index: 7, Node: Text("x")}})
	if !errors.Is(err, ErrPatchTarget) {
		t.Errorf("error = %v, want ErrPatchTarget", err)
	}
}

func TestPatchOpString(t *testing.T) {
	tests := []struct {
		op   PatchOp
		want string
	}{
		{PatchSetText, "SetText"},
		{PatchSetAttr, "SetAttr"},
		{PatchRemoveAttr, "RemoveAttr"},
		{PatchInsertNode, "InsertNode"},
		{PatchRemoveNode, "RemoveNode"},
		{PatchReplaceNode, "ReplaceNode"},
		{PatchOp(0), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("PatchOp(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
