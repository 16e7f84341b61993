// Package schema holds the static HTML grammar used by the builders and the
// renderer.
//
// The grammar is split in two tables:
//
//   - the attribute registry, which maps every ElementKind to the closed set of
//     AttrKinds it accepts and gives each AttrKind a value Domain
//   - the content model, which states which children an ElementKind may hold
//
// Both tables are package-level, read-only data built once at init time. They
// are safe to consult from any number of goroutines without locking.
//
// # Lookups
//
//	d, ok := schema.Lookup(schema.Form, schema.AttrMethod) // DomainKeyword, true
//	err := schema.Permits(schema.Input, schema.ChildElement(schema.Div))
//	// err is a *ChildNotPermittedError: input is a void element
//
// # Errors
//
// Violations are reported as *AttributeNotPermittedError,
// *ChildNotPermittedError and *InvalidAttributeValueError. Each matches its
// sentinel (ErrAttributeNotPermitted, ErrChildNotPermitted,
// ErrInvalidAttributeValue) with errors.Is.
package schema
