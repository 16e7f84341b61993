// Package html provides statically typed builders for markup documents.
//
// Every element has its own Go type. An element's Attribute method accepts
// only the attribute types the element permits, and its Child method accepts
// only the content its grammar allows, so most invalid documents do not
// compile:
//
//	form := html.NewForm().
//	    Attribute(html.MethodPost).
//	    Child(html.NewInput(html.InputText).Attribute(html.Name("x")))
//
//	html.NewInput(html.InputText).Child(html.NewDiv()) // does not compile
//
// Void elements have no Child or Text methods. Text-only elements such as
// title and option have Text but no Child.
//
// Each element wraps a vdom.Builder, which checks what the type system
// cannot, such as a keyword constant converted from an out-of-range integer.
// The first such error is kept and reported by Err and Node.
package html
