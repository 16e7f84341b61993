package vdom

import (
	"errors"
	"fmt"

	"github.com/vango-dev/markup/pkg/schema"
)

// ErrMalformedNode is returned for nodes whose fields contradict their kind,
// such as a text node with children.
var ErrMalformedNode = errors.New("malformed node")

// ErrNodeCycle is returned for trees that reach the same node twice: a node
// that is its own ancestor or a subtree linked under two parents.
var ErrNodeCycle = errors.New("node linked more than once")

// Validate checks the subtree rooted at n against the schema: every
// attribute is permitted on its element and holds a value in its domain,
// every child is permitted by its parent's content model, and slot
// structured elements hold exactly their slots in order.
//
// Trees produced by Builder always validate. Validate exists for trees
// assembled or modified by hand and runs before rendering.
func Validate(n *Node) error {
	return validate(n, make(map[*Node]struct{}))
}

func validate(n *Node, seen map[*Node]struct{}) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrMalformedNode)
	}
	if _, ok := seen[n]; ok {
		return fmt.Errorf("%w: %s", ErrNodeCycle, describe(n))
	}
	seen[n] = struct{}{}
	switch n.Kind {
	case KindText, KindRaw:
		if len(n.Children) > 0 || len(n.Attrs) > 0 {
			return fmt.Errorf("%w: %s node with attributes or children", ErrMalformedNode, n.Kind)
		}
		return nil
	case KindElement:
		return validateElement(n, seen)
	default:
		return fmt.Errorf("%w: unknown node kind %d", ErrMalformedNode, n.Kind)
	}
}

func describe(n *Node) string {
	if n.Kind == KindElement {
		return "<" + n.Element.String() + ">"
	}
	return n.Kind.String() + " node"
}

func validateElement(n *Node, seen map[*Node]struct{}) error {
	if !n.Element.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownElement, n.Element)
	}
	if n.Text != "" {
		return fmt.Errorf("%w: <%s> carries text outside a text child", ErrMalformedNode, n.Element)
	}

	var set [256]bool
	for _, a := range n.Attrs {
		d, ok := schema.Lookup(n.Element, a.Kind)
		if !ok {
			return &schema.AttributeNotPermittedError{Element: n.Element, Attr: a.Kind}
		}
		if set[a.Kind] {
			return &schema.InvalidAttributeValueError{Attr: a.Kind, Value: a.Value, Reason: "attribute set more than once"}
		}
		set[a.Kind] = true
		if err := d.Check(a.Value); err != nil {
			return &schema.InvalidAttributeValueError{Attr: a.Kind, Value: a.Value, Reason: err.Error()}
		}
	}

	if slots := schema.Slots(n.Element); slots != nil {
		if len(n.Children) != len(slots) {
			return fmt.Errorf("%w: <%s> must hold exactly %d children, has %d",
				schema.ErrChildNotPermitted, n.Element, len(slots), len(n.Children))
		}
		for i, slot := range slots {
			c := n.Children[i]
			if c == nil || c.Kind != KindElement || c.Element != slot {
				got := schema.TextChild
				if c != nil && c.Kind == KindElement {
					got = schema.ChildElement(c.Element)
				}
				return &schema.ChildNotPermittedError{Parent: n.Element, Child: got}
			}
		}
	}

	for _, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%w: nil child of <%s>", ErrMalformedNode, n.Element)
		}
		if err := schema.Permits(n.Element, c.ChildKind()); err != nil {
			return err
		}
		if err := validate(c, seen); err != nil {
			return err
		}
	}
	return nil
}
