package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/markup/pkg/cache"
	"github.com/vango-dev/markup/pkg/render"
)

const indexYAML = `html:
  - head:
      - title: Home
  - body:
      - h1: Join
      - p: Welcome aboard.
`

const indexHTML = `<!DOCTYPE html><html><head><title>Home</title></head>` +
	`<body><h1>Join</h1><p>Welcome aboard.</p></body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newTestServer(t *testing.T, cfg Config) (*Server, string) {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	writeFile(t, cfg.Dir, "index.yaml", indexYAML)
	return New(cfg), cfg.Dir
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeDocument(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, indexHTML, rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, cache.ETag([]byte(indexHTML)), rec.Header().Get("ETag"))

	for _, target := range []string{"/index", "/index.html"} {
		assert.Equal(t, indexHTML, get(t, s, target).Body.String(), target)
	}
}

func TestServeNotModified(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	etag := get(t, s, "/").Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec := get(t, s, "/", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(t, s, "/", "If-None-Match", `"other", W/`+etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = get(t, s, "/", "If-None-Match", `"other"`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeHead(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestResolve(t *testing.T) {
	s, dir := newTestServer(t, Config{})
	about := writeFile(t, dir, "about.json", `{"p": "about"}`)
	docs := writeFile(t, dir, "docs/index.toml", `p = "docs"`)
	guide := writeFile(t, dir, "docs/guide.yml", `p: guide`)

	tests := []struct {
		path string
		want string
	}{
		{"/about", about},
		{"/about.html", about},
		{"/docs", docs},
		{"/docs/", docs},
		{"/docs/guide", guide},
		{"/../docs/guide", guide},
	}
	for _, tt := range tests {
		got, err := s.resolve(tt.path)
		if assert.NoError(t, err, tt.path) {
			assert.Equal(t, tt.want, got, tt.path)
		}
	}

	_, err := s.resolve("/missing")
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/missing").Code)
}

func TestServeFragment(t *testing.T) {
	s, dir := newTestServer(t, Config{Render: render.RendererConfig{Pretty: true}})
	writeFile(t, dir, "list.yaml", "ul:\n  - li: a\n  - li: b\n")

	rec := get(t, s, "/list")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>\n", rec.Body.String())
}

func TestServeError(t *testing.T) {
	s, dir := newTestServer(t, Config{})
	writeFile(t, dir, "bad.yaml", "div:\n  - input:\n      children:\n        - p: nope\n")

	rec := get(t, s, "/bad")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"), body)
	assert.Contains(t, body, "<h1>M102: ")
	assert.Contains(t, body, "bad.yaml")
	assert.NotContains(t, body, dir)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	writeFile(t, dir, "syntax.json", `{"p": `)
	rec = get(t, s, "/syntax")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "M202")
	assert.Contains(t, rec.Body.String(), "syntax.json")
	assert.NotContains(t, rec.Body.String(), dir)
}

func TestServeUsesCache(t *testing.T) {
	mem := cache.NewMemory(8, 0)
	s, _ := newTestServer(t, Config{Cache: mem})

	get(t, s, "/")
	get(t, s, "/")
	assert.Equal(t, 1, mem.Len())
	assert.Equal(t, 1.0, counterValue(t, s.metrics.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, counterValue(t, s.metrics.cacheLookups.WithLabelValues("hit")))
}

func TestLiveClientInjected(t *testing.T) {
	s, _ := newTestServer(t, Config{Live: true})
	body := get(t, s, "/").Body.String()
	assert.Contains(t, body, LivePath)
	assert.True(t, strings.HasSuffix(body, "</script></body></html>"), body)

	s, _ = newTestServer(t, Config{})
	assert.NotContains(t, get(t, s, "/").Body.String(), "<script>")
}

func TestInjectLiveClientWithoutBody(t *testing.T) {
	out := string(injectLiveClient([]byte("<p>x</p>")))
	assert.True(t, strings.HasPrefix(out, "<p>x</p><script>"))
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Config{Metrics: true})
	get(t, s, "/")
	get(t, s, "/missing")

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `markup_requests_total{code="200"} 1`)
	assert.Contains(t, body, `markup_requests_total{code="404"} 1`)
	assert.Contains(t, body, "markup_render_duration_seconds")

	s, _ = newTestServer(t, Config{})
	assert.NotContains(t, get(t, s, "/metrics").Body.String(), "markup_requests_total")
}

func TestTreeEndpoint(t *testing.T) {
	s, dir := newTestServer(t, Config{})
	rec := get(t, s, TreePath+"/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "html")
	assert.Contains(t, rec.Body.String(), "h1")
	assert.Equal(t, http.StatusNotFound, get(t, s, TreePath+"/missing").Code)

	writeFile(t, dir, "broken.json", `{"p": `)
	rec = get(t, s, TreePath+"/broken")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "broken.json")
	assert.NotContains(t, rec.Body.String(), dir)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServeShutdown(t *testing.T) {
	s, _ := newTestServer(t, Config{Live: true, PollInterval: 10 * time.Millisecond})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "<h1>Join</h1>")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func dialLive(t *testing.T, ts *httptest.Server, page string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath + "?path=" + page
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestLivePatches(t *testing.T) {
	s, dir := newTestServer(t, Config{Live: true})
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dialLive(t, ts, "/")
	hello := readMessage(t, conn)
	require.Equal(t, MessageHello, hello.Type)
	assert.Len(t, hello.Session, 36)
	assert.Equal(t, 1, s.Sessions())

	file := writeFile(t, dir, "index.yaml", strings.Replace(indexYAML, "h1: Join", "h1: Welcome", 1)+
		"      - hr:\n")
	s.hub.refresh(context.Background(), change{Path: file})

	assert.Equal(t, MessageClear, readMessage(t, conn).Type)
	msg := readMessage(t, conn)
	require.Equal(t, MessagePatch, msg.Type)
	require.Len(t, msg.Patches, 2)
	assert.Equal(t, WirePatch{Op: "SetText", Path: []int{1, 0, 0}, Value: "Welcome"}, msg.Patches[0])
	assert.Equal(t, WirePatch{Op: "InsertNode", Path: []int{1}, Index: 2, HTML: "<hr>"}, msg.Patches[1])
	assert.Equal(t, 2.0, counterValue(t, s.metrics.patchesSent))
}

func TestLiveErrorAndReload(t *testing.T) {
	s, dir := newTestServer(t, Config{Live: true})
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dialLive(t, ts, "/")
	readMessage(t, conn)

	file := writeFile(t, dir, "index.yaml", "html:\n  - body:\n      - br:\n          - p: no\n")
	s.hub.refresh(context.Background(), change{Path: file})
	msg := readMessage(t, conn)
	assert.Equal(t, MessageError, msg.Type)
	assert.Contains(t, msg.Error, "M102")

	// A fragment root cannot be patched in place.
	writeFile(t, dir, "index.yaml", "p: fragment\n")
	s.hub.refresh(context.Background(), change{Path: file})
	assert.Equal(t, MessageReload, readMessage(t, conn).Type)

	s.hub.refresh(context.Background(), change{Path: file, Removed: true})
	assert.Equal(t, MessageReload, readMessage(t, conn).Type)
	assert.Equal(t, 2.0, counterValue(t, s.metrics.reloadsSent))
}

func TestLiveUnknownDocument(t *testing.T) {
	s, _ := newTestServer(t, Config{Live: true})
	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath + "?path=/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLiveDisabled(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	// Without the socket route the path falls through to document lookup.
	assert.Equal(t, http.StatusNotFound, get(t, s, LivePath+"?path=/").Code)
}
