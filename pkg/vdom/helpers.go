package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *Node {
	return &Node{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped markup node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *Node {
	return &Node{
		Kind: KindRaw,
		Text: html,
	}
}

// If returns the child if condition is true, nil otherwise. Builder.Child
// ignores nil.
func If(condition bool, child Child) Child {
	if condition {
		return child
	}
	return nil
}

// IfElse returns the first child if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse Child) Child {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() Child) Child {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to children, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) Child) []Child {
	result := make([]Child, 0, len(items))
	for i, item := range items {
		if c := fn(item, i); c != nil {
			result = append(result, c)
		}
	}
	return result
}
