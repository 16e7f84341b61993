// Package source builds markup trees from declarative document files.
//
// A document is one node. A node is either a string, which becomes escaped
// text, or a map with exactly one key:
//
//	p: Hello                       # element holding text
//	ul: [{li: one}, {li: two}]     # element holding children
//	a:                             # element with attributes
//	  href: /docs
//	  target: _blank
//	  text: Read the docs
//	raw: "<b>trusted</b>"          # unescaped markup
//
// Inside an element map, the reserved keys "children" (a list of nodes) and
// "text" (a string) give content; every other key is an attribute, applied
// in document order through the runtime-checked vdom builder. YAML, JSON and
// TOML encode the same structure. TOML tables are unordered, so attributes
// decoded from TOML are applied in key order.
//
// Every schema violation is reported as an *Error carrying the node path
// and, for YAML and JSON, the line and column of the offending node.
package source
