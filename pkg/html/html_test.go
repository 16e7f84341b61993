package html

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/vdom"
)

func TestFormScenario(t *testing.T) {
	n, err := NewForm().
		Attribute(MethodPost).
		Child(NewInput(InputText).Attribute(Name("x"))).
		Node()
	require.NoError(t, err)

	assert.Equal(t, schema.Form, n.Element)
	require.Len(t, n.Children, 1)
	input := n.Children[0]
	assert.Equal(t, vdom.Attrs{
		{Kind: schema.AttrInputType, Value: "text"},
		{Kind: schema.AttrName, Value: "x"},
	}, input.Attrs)
	v, ok := n.Attr(schema.AttrMethod)
	assert.True(t, ok)
	assert.Equal(t, "post", v)
}

func TestOutOfRangeEnumIsRejected(t *testing.T) {
	f := NewForm().Attribute(Method(42))
	assert.ErrorIs(t, f.Err(), schema.ErrInvalidAttributeValue)

	_, err := NewInput(InputType(0)).Node()
	var target *schema.InvalidAttributeValueError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, schema.AttrInputType, target.Attr)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "post", MethodPost.String())
	assert.Equal(t, "multipart/form-data", EnctypeMultipart.String())
	assert.Equal(t, "_blank", TargetBlank.String())
	assert.Equal(t, "datetime-local", InputDateTimeLocal.String())
	assert.Equal(t, "image", InputImage.String())
	assert.Equal(t, "button", ButtonButton.String())
	assert.Equal(t, "viewport", MetaViewport.String())
	assert.Equal(t, "utf-8", CharsetUTF8.String())
	assert.Equal(t, "", Method(0).String())
	assert.Equal(t, "", Target(200).String())
}

func TestEveryKeywordConstantIsInItsDomain(t *testing.T) {
	check := func(a Attr) {
		kind, v := a.attr()
		_, _, err := schema.CheckValue(kind, v)
		assert.NoError(t, err, "%s = %v", kind, v)
	}
	for m := MethodGet; m <= MethodDialog; m++ {
		check(m)
	}
	for e := EnctypeURLEncoded; e <= EnctypePlain; e++ {
		check(e)
	}
	for v := TargetBlank; v <= TargetTop; v++ {
		check(v)
	}
	for v := AutocompleteOn; v <= AutocompleteOff; v++ {
		check(v)
	}
	for v := InputText; v <= InputImage; v++ {
		check(v)
	}
	for v := ButtonSubmit; v <= ButtonButton; v++ {
		check(v)
	}
	for v := MetaApplicationName; v <= MetaViewport; v++ {
		check(v)
	}
	check(CharsetUTF8)
}

func TestLastWriteWins(t *testing.T) {
	d := NewDiv().
		Attribute(ID("a")).
		Attribute(Class("x", "y")).
		Attribute(ID("b"))

	n, err := d.Node()
	require.NoError(t, err)
	require.Len(t, n.Attrs, 2)
	assert.Equal(t, vdom.Attr{Kind: schema.AttrID, Value: "b"}, n.Attrs[0])
	assert.Equal(t, vdom.Attr{Kind: schema.AttrClass, Value: "x y"}, n.Attrs[1])

	id, ok := d.Attr(schema.AttrID)
	assert.True(t, ok)
	assert.Equal(t, "b", id)
}

func TestNestedContent(t *testing.T) {
	body := NewBody().
		H1("Title").
		Child(NewP().
			Text("Read ").
			Child(NewA().Attribute(Href("/docs")).Attribute(TargetBlank).
				Child(NewStrong().Text("the docs"))).
			Text(".")).
		Child(NewUl().Item("one").Item("two")).
		Child(NewForm().Children(
			NewLabel().Attribute(For("q")).Text("Query"),
			NewInput(InputSearch).Attribute(ID("q")).Attribute(Required(true)),
			NewSelect().Attribute(Name("lang")).Children(
				NewOption("en", "English").Attribute(Selected(true)),
				NewOption("de", "Deutsch"),
			),
			NewTextarea().Attribute(Rows(4)).Text("notes"),
			NewButton(ButtonSubmit).Text("Go"),
		))

	n, err := body.Node()
	require.NoError(t, err)
	require.Len(t, n.Children, 4)
	assert.Equal(t, schema.H1, n.Children[0].Element)
	assert.Equal(t, "Title", n.Children[0].Children[0].Text)

	p := n.Children[1]
	require.Len(t, p.Children, 3)
	assert.Equal(t, schema.A, p.Children[1].Element)

	form := n.Children[3]
	require.Len(t, form.Children, 5)
	sel := form.Children[2]
	require.Len(t, sel.Children, 2)
	_, on := sel.Children[0].Attr(schema.AttrSelected)
	assert.True(t, on)

	require.NoError(t, vdom.Validate(n))
}

func TestHeadingConstructors(t *testing.T) {
	ctors := []func() *Heading{NewH1, NewH2, NewH3, NewH4, NewH5, NewH6}
	kinds := []schema.ElementKind{schema.H1, schema.H2, schema.H3, schema.H4, schema.H5, schema.H6}
	for i, ctor := range ctors {
		n, err := ctor().Text("x").Node()
		require.NoError(t, err)
		assert.Equal(t, kinds[i], n.Element)
	}

	n, err := NewDiv().H1("a").H2("b").H3("c").H4("d").H5("e").H6("f").Node()
	require.NoError(t, err)
	for i, c := range n.Children {
		assert.Equal(t, kinds[i], c.Element)
	}
}

func TestDocumentSlots(t *testing.T) {
	doc := Page("Home", NewBody().Child(NewP().Text("hi")))
	n, err := doc.Node()
	require.NoError(t, err)

	require.Len(t, n.Children, 2)
	head, body := n.Children[0], n.Children[1]
	assert.Equal(t, schema.Head, head.Element)
	assert.Equal(t, schema.Body, body.Element)
	require.Len(t, head.Children, 3)
	assert.Equal(t, schema.Title, head.Children[2].Element)
	require.Len(t, body.Children, 1)

	empty, err := NewDocument().Node()
	require.NoError(t, err)
	assert.Len(t, empty.Children, 2)

	replaced, err := NewDocument().Body(NewBody()).Body(NewBody().Text("x")).Node()
	require.NoError(t, err)
	require.Len(t, replaced.Children, 2)
	assert.Len(t, replaced.Children[1].Children, 1)
}

func TestChildErrorPropagates(t *testing.T) {
	bad := NewA().Attribute(Target(9))
	d := NewDiv().Child(NewP().Child(bad))
	assert.ErrorIs(t, d.Err(), schema.ErrInvalidAttributeValue)

	doc := NewDocument().Body(NewBody().Child(d))
	_, err := doc.Node()
	assert.True(t, errors.Is(err, schema.ErrInvalidAttributeValue))
}

func TestNilChildrenAreIgnored(t *testing.T) {
	var li *Li
	var flow FlowContent
	n, err := NewDiv().Child(flow).Node()
	require.NoError(t, err)
	assert.Empty(t, n.Children)

	n, err = NewUl().Child(li).Node()
	require.NoError(t, err)
	assert.Empty(t, n.Children)
}

func TestTextAndUnsafeChildren(t *testing.T) {
	n, err := NewP().Children(Text("a < b"), Unsafe("<b>bold</b>"), Textf("%d", 3)).Node()
	require.NoError(t, err)
	require.Len(t, n.Children, 3)
	assert.Equal(t, vdom.KindText, n.Children[0].Kind)
	assert.Equal(t, vdom.KindRaw, n.Children[1].Kind)
	assert.Equal(t, "3", n.Children[2].Text)
}

func TestMapAndRange(t *testing.T) {
	langs := []string{"go", "rust"}
	ul := NewUl().Children(Range(langs, func(l string, _ int) *Li {
		return NewLi().Text(l)
	})...)

	admin := true
	d := NewDiv().Map(func(d *Div) *Div {
		if admin {
			d.Child(NewP().Text("admin"))
		}
		return d
	}).Child(ul)

	n, err := d.Node()
	require.NoError(t, err)
	require.Len(t, n.Children, 2)
	assert.Len(t, n.Children[1].Children, 2)
}

func TestBooleanFalseIsStored(t *testing.T) {
	in := NewInput(InputCheckbox).Attribute(Checked(true)).Attribute(Checked(false))
	_, on := in.Attr(schema.AttrChecked)
	assert.False(t, on)
	n, err := in.Node()
	require.NoError(t, err)
	assert.Len(t, n.Attrs, 2)
}

func TestImgAndNumbers(t *testing.T) {
	n, err := NewImg("/a.png", "a").Attribute(Width(640)).Attribute(Height(480)).Node()
	require.NoError(t, err)
	w, _ := n.Attr(schema.AttrWidth)
	assert.Equal(t, "640", w)

	n, err = NewInput(InputNumber).Attribute(Min(-1.5)).Attribute(Max(10)).Node()
	require.NoError(t, err)
	lo, _ := n.Attr(schema.AttrMin)
	assert.Equal(t, "-1.5", lo)

	n, err = NewOl().Attribute(Start(-3)).Attribute(Reversed(true)).Item("x").Node()
	require.NoError(t, err)
	s, _ := n.Attr(schema.AttrStart)
	assert.Equal(t, "-3", s)
}

func TestBadURLIsRejected(t *testing.T) {
	err := NewA().Attribute(Href("http://[::1")).Err()
	assert.ErrorIs(t, err, schema.ErrInvalidAttributeValue)
}

func TestChildChangedAfterAttach(t *testing.T) {
	in := NewInput(InputText).Attribute(Name("x"))
	form := NewForm().Child(in)
	in.Attribute(Name("y"))

	n, err := form.Node()
	require.NoError(t, err)
	got, _ := n.Children[0].Attr(schema.AttrName)
	assert.Equal(t, "x", got)

	head := NewHead().Child(NewTitle("one"))
	doc := NewDocument().Head(head)
	head.Child(NewTitle("two"))

	n, err = doc.Node()
	require.NoError(t, err)
	assert.Len(t, n.Children[0].Children, 1)
}
