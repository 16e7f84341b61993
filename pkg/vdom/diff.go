package vdom

// Diff compares two trees and returns the patches that transform prev into
// next. Children are matched by position. Applying the patches in order with
// Apply yields a tree equal to next.
func Diff(prev, next *Node) []Patch {
	var patches []Patch
	diff(prev, next, Path{}, &patches)
	return patches
}

// diff recursively compares nodes at path and appends patches.
func diff(prev, next *Node, path Path, patches *[]Patch) {
	// Both nil - nothing to do
	if prev == nil && next == nil {
		return
	}

	// Node removed
	if next == nil {
		*patches = append(*patches, Patch{Op: PatchRemoveNode, Path: path})
		return
	}

	// New root, or different shape - replace
	if prev == nil || prev.Kind != next.Kind || prev.Element != next.Element {
		*patches = append(*patches, Patch{Op: PatchReplaceNode, Path: path, Node: next})
		return
	}

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: PatchSetText, Path: path, Value: next.Text})
		}
	case KindRaw:
		// Raw markup has no text node to update in place.
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: PatchReplaceNode, Path: path, Node: next})
		}
	case KindElement:
		diffAttrs(prev, next, path, patches)
		diffChildren(prev, next, path, patches)
	}
}

// diffAttrs compares and patches attributes. Attribute order is part of the
// rendered output, so when the surviving attributes would end up in a
// different order the whole list is rewritten.
func diffAttrs(prev, next *Node, path Path, patches *[]Patch) {
	if prev.Attrs.Equal(next.Attrs) {
		return
	}

	if !attrOrderPreserved(prev.Attrs, next.Attrs) {
		for _, a := range prev.Attrs {
			*patches = append(*patches, Patch{Op: PatchRemoveAttr, Path: path, Attr: a.Kind})
		}
		for _, a := range next.Attrs {
			*patches = append(*patches, setAttrPatch(path, a))
		}
		return
	}

	// Removed attributes
	for _, a := range prev.Attrs {
		if _, ok := next.Attrs.Get(a.Kind); !ok {
			*patches = append(*patches, Patch{Op: PatchRemoveAttr, Path: path, Attr: a.Kind})
		}
	}

	// Changed or added attributes
	for _, a := range next.Attrs {
		if old, ok := prev.Attrs.Get(a.Kind); !ok || old != a {
			*patches = append(*patches, setAttrPatch(path, a))
		}
	}
}

// attrOrderPreserved reports whether removing the attributes missing from
// next and appending the ones new in next, in next's order, reproduces next's
// order.
func attrOrderPreserved(prev, next Attrs) bool {
	i := 0
	for _, a := range prev {
		if _, ok := next.Get(a.Kind); !ok {
			continue
		}
		if i >= len(next) || next[i].Kind != a.Kind {
			return false
		}
		i++
	}
	for ; i < len(next); i++ {
		if _, ok := prev.Get(next[i].Kind); ok {
			return false
		}
	}
	return true
}

func setAttrPatch(path Path, a Attr) Patch {
	return Patch{Op: PatchSetAttr, Path: path, Attr: a.Kind, Value: a.Value, On: a.On}
}

// diffChildren compares children by position. Common positions are diffed
// recursively; surplus next children are inserted in order and surplus prev
// children are removed from the end, so every later patch still addresses the
// right node.
func diffChildren(prev, next *Node, path Path, patches *[]Patch) {
	common := min(len(prev.Children), len(next.Children))

	for i := 0; i < common; i++ {
		diff(prev.Children[i], next.Children[i], path.Child(i), patches)
	}

	for i := common; i < len(next.Children); i++ {
		*patches = append(*patches, Patch{
			Op:    PatchInsertNode,
			Path:  path,
			Index: i,
			Node:  next.Children[i],
		})
	}

	for i := len(prev.Children) - 1; i >= common; i-- {
		*patches = append(*patches, Patch{Op: PatchRemoveNode, Path: path.Child(i)})
	}
}
