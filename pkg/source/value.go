package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type valueKind uint8

const (
	scalarValue valueKind = iota
	listValue
	mapValue
)

// value is a decoded document node with map keys kept in document order.
type value struct {
	kind   valueKind
	scalar any
	items  []*value
	keys   []string
	fields []*value

	line, column int
}

func (v *value) describe() string {
	switch v.kind {
	case listValue:
		return "list"
	case mapValue:
		return "map"
	}
	if v.scalar == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v.scalar)
}

func (v *value) errorf(format string, args ...any) *Error {
	return &Error{
		Line:   v.line,
		Column: v.column,
		Err:    fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...),
	}
}

// YAML

func decodeYAML(data []byte) (*value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
	}
	if doc.Kind == 0 {
		return nil, &Error{Err: fmt.Errorf("%w: empty document", ErrMalformed)}
	}
	return fromYAML(&doc)
}

func fromYAML(n *yaml.Node) (*value, error) {
	v := &value{line: n.Line, column: n.Column}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, v.errorf("empty document")
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.ScalarNode:
		v.kind = scalarValue
		if err := n.Decode(&v.scalar); err != nil {
			return nil, &Error{Line: n.Line, Column: n.Column, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}
		if _, ok := v.scalar.(time.Time); ok {
			v.scalar = n.Value
		}
	case yaml.SequenceNode:
		v.kind = listValue
		for _, c := range n.Content {
			item, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			v.items = append(v.items, item)
		}
	case yaml.MappingNode:
		v.kind = mapValue
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, (&value{line: k.Line, column: k.Column}).errorf("map keys must be strings")
			}
			field, err := fromYAML(val)
			if err != nil {
				return nil, err
			}
			v.keys = append(v.keys, k.Value)
			v.fields = append(v.fields, field)
		}
	}
	return v, nil
}

// JSON

func decodeJSON(data []byte) (*value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSON(dec, data)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		line, col := lineColumn(data, skipSpace(data, int(dec.InputOffset())))
		return nil, &Error{Line: line, Column: col, Err: fmt.Errorf("%w: trailing data after document", ErrSyntax)}
	}
	return v, nil
}

func readJSON(dec *json.Decoder, data []byte) (*value, error) {
	start := skipSpace(data, int(dec.InputOffset()))
	line, col := lineColumn(data, start)
	tok, err := dec.Token()
	if err != nil {
		return nil, jsonSyntax(err, data, line, col)
	}

	v := &value{line: line, column: col}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v.kind = mapValue
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, jsonSyntax(err, data, line, col)
				}
				key, _ := kt.(string)
				field, err := readJSON(dec, data)
				if err != nil {
					return nil, err
				}
				v.keys = append(v.keys, key)
				v.fields = append(v.fields, field)
			}
		case '[':
			v.kind = listValue
			for dec.More() {
				item, err := readJSON(dec, data)
				if err != nil {
					return nil, err
				}
				v.items = append(v.items, item)
			}
		}
		// Closing delimiter.
		if _, err := dec.Token(); err != nil {
			return nil, jsonSyntax(err, data, line, col)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			v.scalar = i
		} else if f, err := t.Float64(); err == nil {
			v.scalar = f
		} else {
			return nil, v.errorf("number %s out of range", t)
		}
	default:
		v.scalar = t
	}
	return v, nil
}

func jsonSyntax(err error, data []byte, line, col int) *Error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		line, col = lineColumn(data, int(se.Offset))
	}
	return &Error{Line: line, Column: col, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
}

// skipSpace returns the offset of the next token at or after off.
func skipSpace(data []byte, off int) int {
	for off < len(data) {
		switch data[off] {
		case ' ', '\t', '\r', '\n', ',', ':':
			off++
		default:
			return off
		}
	}
	return off
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(data []byte, off int) (int, int) {
	if off > len(data) {
		off = len(data)
	}
	line := 1 + bytes.Count(data[:off], []byte{'\n'})
	col := off - bytes.LastIndexByte(data[:off], '\n')
	return line, col
}

// TOML

func decodeTOML(data []byte) (*value, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		e := &Error{Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		var pe toml.ParseError
		if errors.As(err, &pe) {
			e.Line, e.Column = lineColumn(data, pe.Position.Start)
		}
		return nil, e
	}
	return fromGo(doc)
}

// fromGo converts values decoded by the TOML package. Tables are unordered,
// so their keys are sorted.
func fromGo(x any) (*value, error) {
	switch t := x.(type) {
	case map[string]any:
		v := &value{kind: mapValue}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			field, err := fromGo(t[k])
			if err != nil {
				return nil, err
			}
			v.keys = append(v.keys, k)
			v.fields = append(v.fields, field)
		}
		return v, nil
	case []map[string]any:
		v := &value{kind: listValue}
		for _, item := range t {
			iv, err := fromGo(item)
			if err != nil {
				return nil, err
			}
			v.items = append(v.items, iv)
		}
		return v, nil
	case []any:
		v := &value{kind: listValue}
		for _, item := range t {
			iv, err := fromGo(item)
			if err != nil {
				return nil, err
			}
			v.items = append(v.items, iv)
		}
		return v, nil
	case time.Time:
		return &value{kind: scalarValue, scalar: t.Format(time.RFC3339)}, nil
	default:
		return &value{kind: scalarValue, scalar: t}, nil
	}
}
