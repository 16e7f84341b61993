package interop

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	gh "maragu.dev/gomponents/html"

	"github.com/vango-dev/markup/pkg/html"
	"github.com/vango-dev/markup/pkg/render"
	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/vdom"
)

func card() *html.Div {
	return html.NewDiv().Attribute(html.Class("card")).H2("Title").Child(html.NewP().Text("a < b"))
}

const cardHTML = `<div class="card"><h2>Title</h2><p>a &lt; b</p></div>`

func TestComponent(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Component(card()).Render(context.Background(), &sb))
	assert.Equal(t, cardHTML, sb.String())
}

func TestComponentWithPretty(t *testing.T) {
	var sb strings.Builder
	r := render.NewRenderer(render.RendererConfig{Pretty: true})
	require.NoError(t, ComponentWith(r, html.NewUl().Item("x")).Render(context.Background(), &sb))
	assert.Equal(t, "<ul>\n  <li>x</li>\n</ul>\n", sb.String())
}

func TestComponentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	err := Component(card()).Render(ctx, &sb)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, sb.String())
}

func TestComponentBuilderError(t *testing.T) {
	var sb strings.Builder
	err := Component(html.NewForm().Attribute(html.Method(0))).Render(context.Background(), &sb)
	assert.True(t, errors.Is(err, schema.ErrInvalidAttributeValue))
}

func TestNodeComponent(t *testing.T) {
	n := vdom.Build(schema.Span).Text("hi").MustNode()
	var sb strings.Builder
	require.NoError(t, NodeComponent(n).Render(context.Background(), &sb))
	assert.Equal(t, "<span>hi</span>", sb.String())
}

func TestNode(t *testing.T) {
	page := gh.Main(gh.Class("content"), Node(card()))

	var sb strings.Builder
	require.NoError(t, page.Render(&sb))
	assert.Equal(t, `<main class="content">`+cardHTML+`</main>`, sb.String())
}

func TestFromForeign(t *testing.T) {
	badge := templ.Raw(`<span class="badge">new</span>`)
	raw, err := FromTempl(context.Background(), badge)
	require.NoError(t, err)

	icon, err := FromGomponents(gh.I(gh.Class("icon"), g.Text("<x>")))
	require.NoError(t, err)

	out, err := render.String(html.NewP().Text("Release ").Child(raw).Child(icon))
	require.NoError(t, err)
	assert.Equal(t, `<p>Release <span class="badge">new</span><i class="icon">&lt;x&gt;</i></p>`, out)
}

func TestFromForeignError(t *testing.T) {
	boom := errors.New("boom")
	_, err := FromGomponents(g.NodeFunc(func(w io.Writer) error { return boom }))
	assert.ErrorIs(t, err, boom)
}
