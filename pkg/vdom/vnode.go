package vdom

import "github.com/vango-dev/markup/pkg/schema"

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <form>, etc.
	KindText                    // Plain text, escaped on render
	KindRaw                     // Trusted markup, emitted verbatim
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Node is one node of a markup tree.
//
// A Node owns its attributes and children. Nodes form a strict tree: the
// builders never attach a node that already has a parent, they attach a copy.
// Validate rejects hand-assembled trees that link a node twice, whether as a
// shared subtree or as its own ancestor.
type Node struct {
	Kind     NodeKind           // Node type
	Element  schema.ElementKind // For KindElement
	Attrs    Attrs              // Attributes in insertion order
	Children []*Node            // Child nodes in document order
	Text     string             // For KindText and KindRaw

	attached bool
}

// Tag returns the element's tag name, or "" for character data.
func (n *Node) Tag() string {
	if n == nil || n.Kind != KindElement {
		return ""
	}
	return n.Element.String()
}

// ChildKind returns the content-model identity of n.
func (n *Node) ChildKind() schema.ChildKind {
	if n.Kind == KindElement {
		return schema.ChildElement(n.Element)
	}
	return schema.TextChild
}

// Attr returns the value of attribute a and whether it is set. Presence-only
// attributes report "" and their on state through ok.
func (n *Node) Attr(a schema.AttrKind) (string, bool) {
	if n == nil {
		return "", false
	}
	at, ok := n.Attrs.Get(a)
	if !ok {
		return "", false
	}
	if a.Domain().Kind == schema.DomainBool {
		return "", at.On
	}
	return at.Value, true
}

// Clone returns a deep copy of the subtree rooted at n. The copy is not
// attached to any parent.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:    n.Kind,
		Element: n.Element,
		Text:    n.Text,
	}
	if len(n.Attrs) > 0 {
		c.Attrs = make(Attrs, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
			c.Children[i].attached = true
		}
	}
	return c
}

// adopt returns child ready to be linked under a new parent.
func adopt(child *Node) *Node {
	if child.attached {
		child = child.Clone()
	}
	child.attached = true
	return child
}
