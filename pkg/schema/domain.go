package schema

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DomainKind is the shape of an attribute value.
type DomainKind uint8

const (
	DomainText    DomainKind = iota + 1 // free text
	DomainURL                           // URL reference
	DomainKeyword                       // one of an enumerated set
	DomainBool                          // presence-only
	DomainNumber                        // decimal number
)

// String returns the string representation of the DomainKind.
func (k DomainKind) String() string {
	switch k {
	case DomainText:
		return "text"
	case DomainURL:
		return "url"
	case DomainKeyword:
		return "keyword"
	case DomainBool:
		return "bool"
	case DomainNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Domain describes the values an attribute kind accepts.
type Domain struct {
	Kind DomainKind

	// Keywords is the closed set for DomainKeyword.
	Keywords []string

	// Integer restricts DomainNumber to whole numbers.
	Integer bool

	// NonNegative restricts DomainNumber to values >= 0.
	NonNegative bool
}

// Text is the free text domain.
func Text() Domain { return Domain{Kind: DomainText} }

// URL is the URL reference domain.
func URL() Domain { return Domain{Kind: DomainURL} }

// Bool is the presence-only domain.
func Bool() Domain { return Domain{Kind: DomainBool} }

// Number is the decimal number domain.
func Number() Domain { return Domain{Kind: DomainNumber} }

// Integer is the whole number domain.
func Integer() Domain { return Domain{Kind: DomainNumber, Integer: true} }

// Count is the non-negative whole number domain.
func Count() Domain { return Domain{Kind: DomainNumber, Integer: true, NonNegative: true} }

func keywords(words ...string) Domain {
	return Domain{Kind: DomainKeyword, Keywords: words}
}

// Allows reports whether keyword is part of a keyword domain.
func (d Domain) Allows(keyword string) bool {
	return d.Kind == DomainKeyword && slices.Contains(d.Keywords, keyword)
}

// String describes the domain for diagnostics.
func (d Domain) String() string {
	switch d.Kind {
	case DomainKeyword:
		return "one of " + strings.Join(d.Keywords, ", ")
	case DomainNumber:
		switch {
		case d.Integer && d.NonNegative:
			return "non-negative integer"
		case d.Integer:
			return "integer"
		default:
			return "number"
		}
	default:
		return d.Kind.String()
	}
}

// Check validates a value already in canonical stored form. Presence-only
// domains carry no text.
func (d Domain) Check(value string) error {
	if d.Kind == DomainBool {
		if value != "" {
			return fmt.Errorf("presence-only attribute carries value %q", value)
		}
		return nil
	}
	_, _, err := d.normalize(value)
	return err
}

// normalize converts a Go value into the canonical stored form for the
// domain. For DomainBool the text result is always empty.
func (d Domain) normalize(v any) (string, bool, error) {
	switch d.Kind {
	case DomainBool:
		b, ok := v.(bool)
		if !ok {
			return "", false, fmt.Errorf("expected bool, got %T", v)
		}
		return "", b, nil

	case DomainNumber:
		text, err := d.number(v)
		return text, false, err

	case DomainText, DomainURL, DomainKeyword:
		s, ok := toString(v)
		if !ok {
			return "", false, fmt.Errorf("expected string, got %T", v)
		}
		if err := checkText(s); err != nil {
			return "", false, err
		}
		if d.Kind == DomainURL {
			if _, err := url.Parse(s); err != nil {
				return "", false, fmt.Errorf("invalid URL: %w", err)
			}
		}
		if d.Kind == DomainKeyword && !d.Allows(s) {
			return "", false, fmt.Errorf("%q is not %s", s, d)
		}
		return s, false, nil
	}
	return "", false, fmt.Errorf("unknown domain")
}

// checkText rejects values that cannot be carried by markup text even
// after escaping.
func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("value is not valid UTF-8")
	}
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' || r == 0x7f {
			return fmt.Errorf("value contains control character %U", r)
		}
	}
	return nil
}

type stringer interface{ String() string }

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case stringer:
		return s.String(), true
	default:
		return "", false
	}
}

var (
	numberPattern  = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)
	integerPattern = regexp.MustCompile(`^-?[0-9]+$`)
)

// number formats v for a DomainNumber. Integer kinds are formatted exactly;
// strings must already follow the markup number grammar and are kept as
// written.
func (d Domain) number(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return d.signed(int64(n))
	case int8:
		return d.signed(int64(n))
	case int16:
		return d.signed(int64(n))
	case int32:
		return d.signed(int64(n))
	case int64:
		return d.signed(n)
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		return d.float(float64(n), 32)
	case float64:
		return d.float(n, 64)
	case string:
		return d.numeral(n)
	default:
		return "", fmt.Errorf("expected number, got %T", v)
	}
}

func (d Domain) signed(n int64) (string, error) {
	if d.NonNegative && n < 0 {
		return "", fmt.Errorf("%d is negative", n)
	}
	return strconv.FormatInt(n, 10), nil
}

func (d Domain) float(f float64, bits int) (string, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return "", fmt.Errorf("%v is not a finite number", f)
	case d.Integer && f != math.Trunc(f):
		return "", fmt.Errorf("%v is not an integer", f)
	case d.NonNegative && f < 0:
		return "", fmt.Errorf("%v is negative", f)
	}
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(f, 'f', -1, bits), nil
}

func (d Domain) numeral(s string) (string, error) {
	pattern := numberPattern
	if d.Integer {
		pattern = integerPattern
	}
	if !pattern.MatchString(s) {
		return "", fmt.Errorf("%q is not %s", s, article(d.String()))
	}
	if d.NonNegative && s[0] == '-' {
		return "", fmt.Errorf("%q is negative", s)
	}
	if !d.Integer {
		if f, err := strconv.ParseFloat(s, 64); err != nil || math.IsInf(f, 0) {
			return "", fmt.Errorf("%q is out of range", s)
		}
	}
	return s, nil
}

func article(noun string) string {
	if strings.IndexByte("aeiou", noun[0]) >= 0 {
		return "an " + noun
	}
	return "a " + noun
}
