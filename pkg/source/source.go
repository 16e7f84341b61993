package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/markup/pkg/vdom"
)

// Format identifies a document encoding.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatYAML
	FormatTOML
)

var formatNames = [...]string{"", "json", "yaml", "toml"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Sentinel errors for use with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrSyntax            = errors.New("document syntax error")
	ErrMalformed         = errors.New("malformed document node")
)

// Extensions lists the file extensions FormatOf recognises.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// FormatOf returns the format for a file name by extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// IsDocument reports whether name has a document extension.
func IsDocument(name string) bool {
	_, err := FormatOf(name)
	return err == nil
}

// Error locates a decoding or schema error inside a document.
type Error struct {
	File   string
	Line   int
	Column int
	Path   vdom.Path
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Line, e.Column)
	}
	if e.Path != nil {
		fmt.Fprintf(&b, "at %s: ", e.Path)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Position returns the file, line and column of the error.
func (e *Error) Position() (file string, line, column int) {
	return e.File, e.Line, e.Column
}

// NodePath returns the node path of the error, or "" when the error is not
// tied to a node.
func (e *Error) NodePath() string {
	if e.Path == nil {
		return ""
	}
	return e.Path.String()
}

// Parse builds a tree from data.
func Parse(data []byte, f Format) (*vdom.Node, error) {
	var (
		v   *value
		err error
	)
	switch f {
	case FormatJSON:
		v, err = decodeJSON(data)
	case FormatYAML:
		v, err = decodeYAML(data)
	case FormatTOML:
		v, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return build(v)
}

// Decode reads all of r and builds a tree from it.
func Decode(r io.Reader, f Format) (*vdom.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, f)
}

// DecodeFile builds a tree from the document file at path. Errors inside
// the document are *Error values naming the file.
func DecodeFile(path string) (*vdom.Node, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, &Error{File: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Parse(data, f)
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			se.File = path
			return nil, se
		}
		return nil, &Error{File: path, Err: err}
	}
	return n, nil
}
