// Package vdom provides the in-memory markup tree and its runtime-checked
// builder.
//
// # Core Types
//
// Node is the fundamental building block representing elements, text and
// raw markup. Attrs holds an element's attributes in insertion order, at
// most one per attribute kind.
//
// # Builder API
//
// Builder checks each call against the schema package as it is made:
//
//	page := vdom.Build(schema.Div).
//	    Attribute(schema.AttrClass, "card").
//	    Child(vdom.Build(schema.P).Text("Content"))
//	node, err := page.Node()
//
// The first error is kept and names the offending element, attribute or
// child; every later call is a no-op. Attaching a node that already has a
// parent attaches a deep copy, so trees never share subtrees.
//
// # Traversal
//
// Walk visits a tree in document order through the Visitor interface. Nodes
// are addressed by Path, the list of child indices from the root.
//
// # Diffing
//
// The Diff function compares two trees and returns a slice of Patch
// operations addressed by Path. Apply replays them.
package vdom
