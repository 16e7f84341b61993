package vdom

import (
	"errors"
	"fmt"

	"github.com/vango-dev/markup/pkg/schema"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Insert new node
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchReplaceNode PatchOp = 0x07 // Replace node entirely
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	default:
		return "Unknown"
	}
}

// Patch represents a single tree operation to apply.
type Patch struct {
	Op    PatchOp         // Operation type
	Path  Path            // Target node; the parent for InsertNode
	Index int             // Insert position
	Attr  schema.AttrKind // For SetAttr/RemoveAttr
	Value string          // New text or attribute value
	On    bool            // For presence-only attributes
	Node  *Node           // For InsertNode/ReplaceNode
}

// ErrPatchTarget is returned when a patch path does not address a node of
// the expected kind.
var ErrPatchTarget = errors.New("patch target not found")

// Apply applies patches in order to the tree rooted at root and returns the
// resulting root, which differs from root only when the root is replaced or
// removed. Nodes carried by patches are copied into the tree.
//
// Apply does not validate the result; call Validate when the patches come
// from an untrusted source.
func Apply(root *Node, patches []Patch) (*Node, error) {
	for i, p := range patches {
		var err error
		root, err = apply(root, p)
		if err != nil {
			return root, fmt.Errorf("patch %d (%s at %s): %w", i, p.Op, p.Path, err)
		}
	}
	return root, nil
}

func apply(root *Node, p Patch) (*Node, error) {
	switch p.Op {
	case PatchSetText:
		n := Resolve(root, p.Path)
		if n == nil || n.Kind != KindText {
			return root, ErrPatchTarget
		}
		n.Text = p.Value

	case PatchSetAttr, PatchRemoveAttr:
		n := Resolve(root, p.Path)
		if n == nil || n.Kind != KindElement {
			return root, ErrPatchTarget
		}
		if p.Op == PatchSetAttr {
			n.Attrs.Set(Attr{Kind: p.Attr, Value: p.Value, On: p.On})
		} else {
			n.Attrs.Delete(p.Attr)
		}

	case PatchInsertNode:
		parent := Resolve(root, p.Path)
		if parent == nil || parent.Kind != KindElement || p.Node == nil {
			return root, ErrPatchTarget
		}
		if p.Index < 0 || p.Index > len(parent.Children) {
			return root, fmt.Errorf("%w: index %d out of range", ErrPatchTarget, p.Index)
		}
		parent.Children = append(parent.Children, nil)
		copy(parent.Children[p.Index+1:], parent.Children[p.Index:])
		parent.Children[p.Index] = adopt(p.Node.Clone())

	case PatchRemoveNode:
		if len(p.Path) == 0 {
			return nil, nil
		}
		parent := Resolve(root, p.Path[:len(p.Path)-1])
		i := p.Path[len(p.Path)-1]
		if parent == nil || i < 0 || i >= len(parent.Children) {
			return root, ErrPatchTarget
		}
		parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)

	case PatchReplaceNode:
		if p.Node == nil {
			return root, ErrPatchTarget
		}
		if len(p.Path) == 0 {
			return p.Node.Clone(), nil
		}
		parent := Resolve(root, p.Path[:len(p.Path)-1])
		i := p.Path[len(p.Path)-1]
		if parent == nil || i < 0 || i >= len(parent.Children) {
			return root, ErrPatchTarget
		}
		parent.Children[i] = adopt(p.Node.Clone())

	default:
		return root, fmt.Errorf("unknown patch op %d", p.Op)
	}
	return root, nil
}
