package vdom

import (
	"errors"
	"strconv"
	"strings"
)

// SkipChildren may be returned by Visitor.Enter to skip an element's
// children. Leave is still called for the element.
var SkipChildren = errors.New("skip children")

// Path addresses a node by the child index taken at each level, starting
// from the root. The root itself has the empty path.
type Path []int

// String returns the path as slash-separated indices, "/" for the root.
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, i := range p {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

// Child returns the path of the i-th child of the node at p.
func (p Path) Child(i int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = i
	return c
}

// Resolve returns the node at path p under root, or nil when p leaves the
// tree.
func Resolve(root *Node, p Path) *Node {
	n := root
	for _, i := range p {
		if n == nil || i < 0 || i >= len(n.Children) {
			return nil
		}
		n = n.Children[i]
	}
	return n
}

// Visitor receives a pre-order traversal of a tree. Paths passed to a
// visitor are only valid for the duration of the call.
type Visitor interface {
	// Enter is called for an element before its children.
	Enter(n *Node, p Path) error
	// Leave is called for an element after its children.
	Leave(n *Node, p Path) error
	// Text is called for text and raw nodes.
	Text(n *Node, p Path) error
}

// VisitorFuncs adapts plain functions to Visitor. Nil fields are skipped.
type VisitorFuncs struct {
	EnterFunc func(n *Node, p Path) error
	LeaveFunc func(n *Node, p Path) error
	TextFunc  func(n *Node, p Path) error
}

func (v VisitorFuncs) Enter(n *Node, p Path) error {
	if v.EnterFunc == nil {
		return nil
	}
	return v.EnterFunc(n, p)
}

func (v VisitorFuncs) Leave(n *Node, p Path) error {
	if v.LeaveFunc == nil {
		return nil
	}
	return v.LeaveFunc(n, p)
}

func (v VisitorFuncs) Text(n *Node, p Path) error {
	if v.TextFunc == nil {
		return nil
	}
	return v.TextFunc(n, p)
}

// Walk traverses the tree rooted at n in document order. The first error
// returned by the visitor, other than SkipChildren, stops the walk and is
// returned.
func Walk(n *Node, v Visitor) error {
	if n == nil {
		return nil
	}
	path := make(Path, 0, 16)
	return walk(n, v, path)
}

func walk(n *Node, v Visitor, path Path) error {
	if n.Kind != KindElement {
		return v.Text(n, path)
	}
	err := v.Enter(n, path)
	if err != nil && err != SkipChildren {
		return err
	}
	if err == nil {
		for i, c := range n.Children {
			if c == nil {
				continue
			}
			if err := walk(c, v, append(path, i)); err != nil {
				return err
			}
		}
	}
	return v.Leave(n, path)
}
