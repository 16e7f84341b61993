package render

import (
	"bufio"
	"io"
	"net/http"

	"github.com/vango-dev/markup/pkg/html"
	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/vdom"
)

// StreamingRenderer wraps Renderer with chunked output support.
// It flushes content incrementally for faster time-to-first-byte.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to
// an http.ResponseWriter. If the writer implements http.Flusher,
// content will be flushed after each top-level section.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// Stream renders node, flushing after the document head and body are
// closed. For roots other than html it flushes once at the end. As with
// RenderToWriter, the tree is validated before anything is written.
func (s *StreamingRenderer) Stream(node *vdom.Node) error {
	if err := s.check(node); err != nil {
		return err
	}
	bw := bufio.NewWriter(s.w)
	err := s.emit(bw, node, func(n *vdom.Node, depth int) error {
		if depth != 1 || (n.Element != schema.Head && n.Element != schema.Body) {
			return nil
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		s.flush()
		return nil
	})
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	// Final flush
	s.flush()
	return nil
}

// StreamElement renders a typed element with Stream.
func (s *StreamingRenderer) StreamElement(e html.Element) error {
	node, err := e.Node()
	if err != nil {
		return err
	}
	return s.Stream(node)
}

// flush flushes the writer if it supports flushing.
func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// FlushableWriter wraps an io.Writer with optional flushing capability.
// This is useful for testing streaming behavior without using http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
