package source

import (
	"fmt"

	"github.com/vango-dev/markup/pkg/vdom"
)

// Reserved keys.
const (
	keyRaw      = "raw"
	keyText     = "text"
	keyChildren = "children"
)

func build(v *value) (*vdom.Node, error) {
	return buildNode(v, vdom.Path{})
}

func at(v *value, path vdom.Path, err error) *Error {
	return &Error{Line: v.line, Column: v.column, Path: path, Err: err}
}

func malformed(v *value, path vdom.Path, format string, args ...any) *Error {
	e := v.errorf(format, args...)
	e.Path = path
	return e
}

func buildNode(v *value, path vdom.Path) (*vdom.Node, error) {
	switch v.kind {
	case scalarValue:
		s, ok := v.scalar.(string)
		if !ok {
			return nil, malformed(v, path, "expected text or an element map, got %s", v.describe())
		}
		return vdom.Text(s), nil
	case listValue:
		return nil, malformed(v, path, "a node cannot be a list")
	}

	if len(v.keys) != 1 {
		return nil, malformed(v, path, "a node map has exactly one key, got %d", len(v.keys))
	}
	key, body := v.keys[0], v.fields[0]

	switch key {
	case keyRaw, keyText:
		s, ok := body.scalar.(string)
		if body.kind != scalarValue || !ok {
			return nil, malformed(body, path, "%s takes a string, got %s", key, body.describe())
		}
		if key == keyRaw {
			return vdom.Raw(s), nil
		}
		return vdom.Text(s), nil
	}

	b := vdom.BuildTag(key)
	if err := b.Err(); err != nil {
		return nil, at(v, path, err)
	}

	children := 0
	switch body.kind {
	case scalarValue:
		switch s := body.scalar.(type) {
		case nil:
		case string:
			if err := b.Text(s).Err(); err != nil {
				return nil, at(body, path, err)
			}
		default:
			return nil, malformed(body, path, "<%s> takes text, a list or a map, got %s", key, body.describe())
		}
	case listValue:
		if err := buildChildren(b, body, path, &children); err != nil {
			return nil, err
		}
	case mapValue:
		for i, name := range body.keys {
			field := body.fields[i]
			switch name {
			case keyChildren:
				if field.kind != listValue {
					return nil, malformed(field, path, "children takes a list, got %s", field.describe())
				}
				if err := buildChildren(b, field, path, &children); err != nil {
					return nil, err
				}
			case keyText:
				s, ok := field.scalar.(string)
				if field.kind != scalarValue || !ok {
					return nil, malformed(field, path, "text takes a string, got %s", field.describe())
				}
				if err := b.Text(s).Err(); err != nil {
					return nil, at(field, path, err)
				}
				children++
			default:
				if field.kind != scalarValue || field.scalar == nil {
					return nil, malformed(field, path, "attribute %q takes a scalar, got %s", name, field.describe())
				}
				if err := b.AttributeByName(name, field.scalar).Err(); err != nil {
					return nil, at(field, path, err)
				}
			}
		}
	}

	n, err := b.Node()
	if err != nil {
		return nil, at(v, path, err)
	}
	return n, nil
}

func buildChildren(b *vdom.Builder, list *value, path vdom.Path, count *int) error {
	for _, item := range list.items {
		p := path.Child(*count)
		child, err := buildNode(item, p)
		if err != nil {
			return err
		}
		if err := b.Child(child).Err(); err != nil {
			return at(item, p, err)
		}
		*count++
	}
	return nil
}

// Summary describes a tree in one line, for logs.
func Summary(n *vdom.Node) string {
	elements, texts := 0, 0
	vdom.Walk(n, vdom.VisitorFuncs{
		EnterFunc: func(*vdom.Node, vdom.Path) error { elements++; return nil },
		TextFunc:  func(*vdom.Node, vdom.Path) error { texts++; return nil },
	})
	if n.Kind != vdom.KindElement {
		return fmt.Sprintf("%d text nodes", texts)
	}
	return fmt.Sprintf("<%s> with %d elements and %d text nodes", n.Tag(), elements, texts)
}
