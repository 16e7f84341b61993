package schema

import (
	"errors"
	"fmt"
)

// Diagnostic codes, registered with the CLI's error formatter.
const (
	CodeAttributeNotPermitted = "M101"
	CodeChildNotPermitted     = "M102"
	CodeInvalidAttributeValue = "M103"
)

// Sentinel errors for use with errors.Is.
var (
	ErrAttributeNotPermitted = errors.New("attribute not permitted")
	ErrChildNotPermitted     = errors.New("child not permitted")
	ErrInvalidAttributeValue = errors.New("invalid attribute value")
)

// AttributeNotPermittedError reports an attribute attached to an element
// that does not accept it.
type AttributeNotPermittedError struct {
	Element ElementKind
	Attr    AttrKind

	// Name is set instead of Attr when the attribute name did not resolve
	// to any kind the element accepts.
	Name string
}

func (e *AttributeNotPermittedError) Error() string {
	name := e.Name
	if e.Attr.Valid() {
		name = e.Attr.String()
	}
	return fmt.Sprintf("attribute %q is not permitted on <%s>", name, e.Element)
}

// Is matches ErrAttributeNotPermitted.
func (e *AttributeNotPermittedError) Is(target error) bool {
	return target == ErrAttributeNotPermitted
}

// Code returns the diagnostic code.
func (e *AttributeNotPermittedError) Code() string { return CodeAttributeNotPermitted }

// ChildNotPermittedError reports a child the parent's content model forbids.
type ChildNotPermittedError struct {
	Parent ElementKind
	Child  ChildKind
}

func (e *ChildNotPermittedError) Error() string {
	child := "text"
	if !e.Child.IsText() {
		child = "<" + e.Child.String() + ">"
	}
	return fmt.Sprintf("%s is not permitted inside <%s> (%s content)", child, e.Parent, ModelOf(e.Parent).Content)
}

// Is matches ErrChildNotPermitted.
func (e *ChildNotPermittedError) Is(target error) bool {
	return target == ErrChildNotPermitted
}

// Code returns the diagnostic code.
func (e *ChildNotPermittedError) Code() string { return CodeChildNotPermitted }

// InvalidAttributeValueError reports a value outside its attribute's domain.
type InvalidAttributeValueError struct {
	Attr   AttrKind
	Value  any
	Reason string
}

func (e *InvalidAttributeValueError) Error() string {
	return fmt.Sprintf("invalid value for attribute %q: %s", e.Attr, e.Reason)
}

// Is matches ErrInvalidAttributeValue.
func (e *InvalidAttributeValueError) Is(target error) bool {
	return target == ErrInvalidAttributeValue
}

// Code returns the diagnostic code.
func (e *InvalidAttributeValueError) Code() string { return CodeInvalidAttributeValue }
