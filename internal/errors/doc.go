// Package errors provides structured, actionable diagnostics for markup
// documents and the markup command.
//
// Library packages report typed errors (schema.ChildNotPermittedError and
// friends). This package turns them into diagnostics that:
//   - Show the document file and position of the offending node
//   - Show the node path inside the tree
//   - Explain what went wrong in plain language
//   - Suggest a fix, listing what the schema accepts instead
//
// # Error Categories
//
// Errors are organized into categories:
//   - schema: a document violates the element, attribute or content tables
//   - source: a document file cannot be read or decoded
//   - render: writing output failed
//   - config: markup.json or markup.toml is invalid
//   - server: preview server and cache errors
//   - publish: uploading rendered output failed
//
// # Error Codes
//
// Each error has a unique code (e.g., "M102") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.Classify(builderErr)
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR M102: Child not permitted
//	//
//	//   pages/index.yaml:12:9
//	//   at /1/0/2
//	//
//	//     11 │     - input:
//	//   → 12 │         children:
//	//        │         ^
//	//     13 │           - div: {}
//	//
//	//   <div> is not permitted inside <input> (void content)
//	//
//	//   Hint: <input> is a void element and takes no children
package errors
