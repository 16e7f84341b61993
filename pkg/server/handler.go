package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	merrors "github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/cache"
	"github.com/vango-dev/markup/pkg/html"
	"github.com/vango-dev/markup/pkg/render"
	"github.com/vango-dev/markup/pkg/source"
)

// errNotFound is returned when no document file matches a URL path.
var errNotFound = errors.New("document not found")

// resolve maps a URL path to a document file under the document root.
// "/" and paths ending in "/" map to an index document; a trailing ".html"
// is ignored.
func (s *Server) resolve(urlPath string) (string, error) {
	name := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") || name == "/" {
		name = path.Join(name, "index")
	}
	name = strings.TrimSuffix(name, ".html")

	candidates := []string{name}
	if !strings.HasSuffix(name, "/index") {
		candidates = append(candidates, path.Join(name, "index"))
	}
	for _, c := range candidates {
		base := filepath.Join(s.config.Dir, filepath.FromSlash(c))
		for _, ext := range source.Extensions {
			info, err := os.Stat(base + ext)
			if err == nil && info.Mode().IsRegular() {
				return base + ext, nil
			}
		}
	}
	return "", errNotFound
}

// rel returns file relative to the document root, for display.
func (s *Server) rel(file string) string {
	if r, err := filepath.Rel(s.config.Dir, file); err == nil {
		return filepath.ToSlash(r)
	}
	return file
}

// relError points a document error at file relative to the document root.
func (s *Server) relError(err error, file string) error {
	var se *source.Error
	if errors.As(err, &se) {
		se.File = s.rel(file)
	}
	return err
}

// load returns the rendered document for file, from the cache when the
// same source was rendered before.
func (s *Server) load(ctx context.Context, file string) (*cache.Entry, bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, false, err
	}
	key := cache.Key(data, s.config.Render)
	if s.config.Live {
		key += ":live"
	}

	entry, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.cacheLookups.WithLabelValues("hit").Inc()
		return entry, true, nil
	case errors.Is(err, cache.ErrMiss):
		s.metrics.cacheLookups.WithLabelValues("miss").Inc()
	default:
		s.metrics.cacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("cache lookup failed", "code", "M501", "error", err)
	}

	start := time.Now()
	body, err := s.renderSource(data, file)
	if err != nil {
		return nil, false, err
	}
	s.metrics.observeRender(start)

	entry = cache.NewEntry(s.rel(file), body)
	if err := s.cache.Set(ctx, key, entry); err != nil {
		s.logger.Warn("cache store failed", "code", "M501", "error", err)
	}
	return entry, false, nil
}

// renderSource parses and renders a document, injecting the live client in
// live mode.
func (s *Server) renderSource(data []byte, file string) ([]byte, error) {
	f, err := source.FormatOf(file)
	if err != nil {
		return nil, &source.Error{File: s.rel(file), Err: err}
	}
	node, err := source.Parse(data, f)
	if err != nil {
		return nil, s.relError(err, file)
	}
	var buf bytes.Buffer
	if err := s.renderer.RenderToWriter(&buf, node); err != nil {
		return nil, err
	}
	body := buf.Bytes()
	if s.config.Live {
		body = injectLiveClient(body)
	}
	return body, nil
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "markup.document",
		trace.WithAttributes(attribute.String("url.path", r.URL.Path)))
	defer span.End()

	file, err := s.resolve(r.URL.Path)
	if err != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", http.StatusNotFound))
		http.NotFound(w, r)
		return
	}
	span.SetAttributes(attribute.String("markup.file", s.rel(file)))

	entry, hit, err := s.load(ctx, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.serveError(w, err)
		return
	}
	span.SetAttributes(
		attribute.Bool("markup.cache_hit", hit),
		attribute.Int("markup.bytes", len(entry.Body)))

	w.Header().Set("ETag", entry.ETag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatch(r.Header.Get("If-None-Match"), entry.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Last-Modified", entry.Rendered.Format(http.TimeFormat))
	if r.Method == http.MethodHead {
		return
	}
	w.Write(entry.Body)
}

// etagMatch reports whether an If-None-Match header matches etag.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == etag {
			return true
		}
	}
	return false
}

// handleTree writes an outline of a document's tree.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	file, err := s.resolve(strings.TrimPrefix(r.URL.Path, TreePath))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	node, err := source.DecodeFile(file)
	if err != nil {
		s.serveError(w, s.relError(err, file))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(source.Dump(node)))
}

// serveError writes a diagnostic page for a document that failed to load.
func (s *Server) serveError(w http.ResponseWriter, err error) {
	diag := merrors.Classify(err)
	s.metrics.renderErrors.WithLabelValues(diag.Code).Inc()
	s.logger.Warn("document failed", "code", diag.Code, "error", err)

	status := http.StatusUnprocessableEntity
	if diag.Code == "M901" {
		status = http.StatusInternalServerError
	}

	body, rerr := render.String(errorPage(diag))
	if rerr != nil {
		http.Error(w, diag.Error(), status)
		return
	}
	if s.config.Live {
		body = string(injectLiveClient([]byte(body)))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

const errorStyle = `body { font-family: ui-monospace, monospace; margin: 2rem; color: #222 }
h1 { color: #b00020; font-size: 1.25rem }
.detail { white-space: pre-wrap }
.hint { color: #1a5e20 }`

// errorPage lays out a diagnostic as a document.
func errorPage(d *merrors.MarkupError) *html.Document {
	body := html.NewBody().
		Child(html.NewH1().Text(d.Code + ": " + d.Message))
	if d.Location != nil {
		body.Child(html.NewP().Child(html.NewStrong().Text(d.Location.String())))
	}
	if d.Path != "" {
		body.Child(html.NewP().Text("at node " + d.Path))
	}
	if d.Detail != "" {
		body.Child(html.NewP().Attribute(html.Class("detail")).Text(d.Detail))
	}
	if d.Suggestion != "" {
		body.Child(html.NewP().Attribute(html.Class("hint")).Text("Hint: " + d.Suggestion))
	}
	if d.DocURL != "" {
		body.Child(html.NewP().Child(html.NewA().Attribute(html.Href(d.DocURL)).Text("Learn more")))
	}

	head := html.NewHead().Children(
		html.NewMeta().Attribute(html.CharsetUTF8),
		html.NewTitle("Error "+d.Code),
		html.NewStyle(errorStyle),
	)
	return html.NewDocument().Head(head).Body(body)
}
