// Package render serializes markup trees to HTML text.
//
// The render package converts trees built with the vdom or html packages
// into strings or streams:
//
//   - Pre-order traversal with attributes in insertion order
//   - Text and attribute escaping (XSS prevention)
//   - Void elements written without a closing tag
//   - Presence-only attributes written bare when on and omitted when off
//   - A doctype before an html root
//
// # Basic Usage
//
// To render a typed element to a string:
//
//	out, err := render.String(page)
//
// To stream a tree to a writer:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	err := renderer.RenderToWriter(w, node)
//
// # Validation
//
// Every tree is checked with vdom.Validate before the first byte is
// written, so a tree modified into an invalid state is reported with the
// same errors the builders return, and nothing is output.
//
// # Streaming
//
// For large pages, use StreamingRenderer to flush the head before the body
// is written:
//
//	sr := render.NewStreamingRenderer(w, config)
//	err := sr.Stream(node)
//
// # Security
//
// All text content is escaped. Stylesheet text is written verbatim with any
// "</" neutralised. Raw markup can be inserted with vdom.Raw or html.Unsafe,
// but should only be used with trusted content.
//
// Output is deterministic: equal trees render to identical bytes.
package render
