package render

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Replacement entities. Attribute values additionally escape whitespace
// characters that would otherwise be normalised by attribute parsing.
var (
	textEntities = [utf8.RuneSelf]string{
		'&':  "&amp;",
		'<':  "&lt;",
		'>':  "&gt;",
		'"':  "&quot;",
		'\'': "&#39;",
	}
	attrEntities = [utf8.RuneSelf]string{
		'&':  "&amp;",
		'<':  "&lt;",
		'>':  "&gt;",
		'"':  "&quot;",
		'\'': "&#39;",
		'\n': "&#10;",
		'\r': "&#13;",
		'\t': "&#9;",
	}
)

// stringWriter is satisfied by *bufio.Writer and *strings.Builder.
type stringWriter interface {
	io.Writer
	io.ByteWriter
	WriteString(s string) (int, error)
	WriteRune(r rune) (int, error)
}

// writeEscaped writes s with every character in entities replaced. Runs of
// safe bytes are copied in one write; invalid UTF-8 is written as U+FFFD.
func writeEscaped(w stringWriter, s string, entities *[utf8.RuneSelf]string) {
	last := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if rep := entities[c]; rep != "" {
				w.WriteString(s[last:i])
				w.WriteString(rep)
				last = i + 1
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			w.WriteString(s[last:i])
			w.WriteRune(utf8.RuneError)
			last = i + 1
		}
		i += size
	}
	w.WriteString(s[last:])
}

// escapeHTML escapes text for safe inclusion in element content.
func escapeHTML(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	writeEscaped(&sb, s, &textEntities)
	return sb.String()
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute
// value.
func escapeAttr(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	writeEscaped(&sb, s, &attrEntities)
	return sb.String()
}

// rawTextSafe neutralises end-tag openers inside raw text elements, so
// stylesheet content cannot close its element early.
func rawTextSafe(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}
