// Package server serves a directory of markup documents as HTML.
//
// Every request path is mapped to a document file (index documents for
// directories, any of the source formats), parsed, rendered and returned
// with an ETag derived from the output. Rendered pages are kept in a
// cache.Cache keyed by source content, so unchanged documents are not
// rendered twice.
//
//	srv := server.New(server.Config{Dir: "pages", Live: true})
//	err := srv.Run(ctx)
//
// # Live preview
//
// In live mode each page carries a small client that opens a websocket to
// LivePath. When a document file changes the server diffs the old and new
// trees with vdom.Diff and sends the patches, addressed by child position
// from the document element. Changes the browser cannot apply by position
// (pretty output, raw markup, fragments) are sent as a full reload, and
// documents that fail to build are shown as an error overlay.
//
// # Observability
//
// Request, cache and live preview counters are registered on a Prometheus
// registry and exposed at /metrics when enabled. Document loads and live
// refreshes are traced through the configured OpenTelemetry provider.
package server
