package errors

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vango-dev/markup/pkg/schema"
	"github.com/vango-dev/markup/pkg/source"
	"github.com/vango-dev/markup/pkg/vdom"
)

// Category represents the type of error.
type Category string

const (
	CategorySchema  Category = "schema"
	CategorySource  Category = "source"
	CategoryRender  Category = "render"
	CategoryConfig  Category = "config"
	CategoryServer  Category = "server"
	CategoryPublish Category = "publish"
	CategoryCLI     Category = "cli"
)

// Location represents a position in a document file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line == 0 {
		return l.File
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// MarkupError is a structured error with source location, node path and
// suggestions.
type MarkupError struct {
	// Code is a unique error identifier (e.g., "M101").
	Code string

	// Category is the error type (schema, source, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the document position where the error occurred.
	Location *Location

	// Path is the node path inside the document tree, such as "/1/0".
	Path string

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is markup showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MarkupError) Error() string {
	msg := e.Message
	if e.Wrapped != nil {
		msg = e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MarkupError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a document position to the error and loads the
// surrounding lines when the file is readable.
func (e *MarkupError) WithLocation(file string, line, column int) *MarkupError {
	e.Location = &Location{File: file, Line: line, Column: column}
	if line > 0 {
		e.Context = readContextLines(file, line, 5)
	}
	return e
}

// WithPath records the node path of the error.
func (e *MarkupError) WithPath(path string) *MarkupError {
	e.Path = path
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MarkupError) WithSuggestion(s string) *MarkupError {
	e.Suggestion = s
	return e
}

// WithExample adds an example to the error.
func (e *MarkupError) WithExample(ex string) *MarkupError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *MarkupError) WithDetail(d string) *MarkupError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *MarkupError) WithContext(lines []string) *MarkupError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *MarkupError) Wrap(err error) *MarkupError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a MarkupError from a registered error code.
func New(code string) *MarkupError {
	template, ok := registry[code]
	if !ok {
		return &MarkupError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MarkupError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new MarkupError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *MarkupError {
	return &MarkupError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a MarkupError.
func FromError(err error, code string) *MarkupError {
	if err == nil {
		return nil
	}
	var me *MarkupError
	if errors.As(err, &me) {
		return me
	}
	return New(code).Wrap(err)
}

// Positioned is implemented by errors that know where in a document file
// they occurred.
type Positioned interface {
	Position() (file string, line, column int)
}

// Pathed is implemented by errors that know the node path they occurred at.
type Pathed interface {
	NodePath() string
}

// Classify turns any error from the markup packages into a diagnostic.
// Schema errors get their registered code, the schema error's own message
// as detail, and a suggestion built from the registry. Position and path
// are taken from the first error in the chain that carries them.
func Classify(err error) *MarkupError {
	if err == nil {
		return nil
	}
	var me *MarkupError
	if errors.As(err, &me) {
		return me
	}

	var out *MarkupError
	var (
		attrErr  *schema.AttributeNotPermittedError
		childErr *schema.ChildNotPermittedError
		valueErr *schema.InvalidAttributeValueError
	)
	switch {
	case errors.As(err, &attrErr):
		out = New(schema.CodeAttributeNotPermitted).WithSuggestion(suggestAttributes(attrErr.Element))
	case errors.As(err, &childErr):
		out = New(schema.CodeChildNotPermitted).WithSuggestion(suggestChildren(childErr.Parent))
	case errors.As(err, &valueErr):
		out = New(schema.CodeInvalidAttributeValue)
		if valueErr.Attr.Valid() {
			out.WithSuggestion(fmt.Sprintf("%q takes %s", valueErr.Attr, valueErr.Attr.Domain()))
		}
	case errors.Is(err, vdom.ErrMalformedNode), errors.Is(err, vdom.ErrNodeCycle):
		out = New("M104")
	case errors.Is(err, vdom.ErrUnknownElement):
		out = New("M105").WithSuggestion("run `markup schema` to list the supported elements")
	case errors.Is(err, vdom.ErrPatchTarget):
		out = New("M106")
	case errors.Is(err, source.ErrUnsupportedFormat):
		out = New("M201")
	case errors.Is(err, source.ErrSyntax):
		out = New("M202")
	case errors.Is(err, source.ErrMalformed):
		out = New("M203").WithExample("ul:\n  - li: one\n  - li:\n      text: two\n      id: second")
	default:
		out = New("M901")
	}
	out.Wrap(err)
	if out.Code != "M901" {
		out.Detail = err.Error()
	}

	var pos Positioned
	if errors.As(err, &pos) {
		file, line, col := pos.Position()
		out.WithLocation(file, line, col)
	}
	var p Pathed
	if errors.As(err, &p) {
		out.WithPath(p.NodePath())
	}
	return out
}

func suggestAttributes(e schema.ElementKind) string {
	var names []string
	for _, a := range schema.Attributes(e) {
		if !schema.IsGlobal(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("<%s> accepts only global attributes", e)
	}
	return fmt.Sprintf("<%s> accepts the global attributes and %s", e, strings.Join(names, ", "))
}

func suggestChildren(e schema.ElementKind) string {
	if schema.IsVoid(e) {
		return fmt.Sprintf("<%s> is a void element and takes no children", e)
	}
	if slots := schema.Slots(e); len(slots) > 0 {
		tags := make([]string, len(slots))
		for i, s := range slots {
			tags[i] = "<" + s.String() + ">"
		}
		return fmt.Sprintf("<%s> holds exactly %s, in that order", e, strings.Join(tags, " and "))
	}
	return fmt.Sprintf("<%s> takes %s content", e, schema.ModelOf(e).Content)
}
