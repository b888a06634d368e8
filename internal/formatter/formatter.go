// Package formatter prints container trees as JSON text, either compact or
// indented.
package formatter

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonobj/internal/models"
)

// Style selects the output layout.
type Style int

const (
	// StyleCompact emits no whitespace at all.
	StyleCompact Style = iota
	// StylePretty puts each member on its own line, indented four spaces per
	// level, with a newline before every closing bracket.
	StylePretty
)

const indentStep = 4

func (s Style) String() string {
	if s == StylePretty {
		return "pretty"
	}
	return "compact"
}

// ParseStyle maps a style name to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pretty":
		return StylePretty, nil
	case "compact":
		return StyleCompact, nil
	}
	return 0, fmt.Errorf("unknown output style '%s'", name)
}

// Formatter prints containers in one Style. It holds no mutable state and may
// be shared between goroutines.
type Formatter struct {
	style Style
}

// NewFormatter creates a Formatter for style.
func NewFormatter(style Style) *Formatter {
	return &Formatter{style: style}
}

// Style returns the layout this formatter produces.
func (f *Formatter) Style() Style { return f.style }

// Format renders c. A nil container renders as an empty object.
func (f *Formatter) Format(c models.Container) string {
	return string(f.AppendFormat(nil, c))
}

// AppendFormat appends the rendering of c to dst.
func (f *Formatter) AppendFormat(dst []byte, c models.Container) []byte {
	if c == nil {
		c = models.NewObject()
	}
	return f.appendContainer(dst, c, 0)
}

// Compact renders c without whitespace.
func Compact(c models.Container) string {
	return NewFormatter(StyleCompact).Format(c)
}

// Pretty renders c indented.
func Pretty(c models.Container) string {
	return NewFormatter(StylePretty).Format(c)
}

// appendContainer writes c whose opening bracket sits at depth; members go one
// level deeper.
func (f *Formatter) appendContainer(dst []byte, c models.Container, depth int) []byte {
	pretty := f.style == StylePretty
	inner := depth + indentStep

	switch n := c.(type) {
	case *models.Object:
		dst = append(dst, '{')
		if pretty {
			dst = append(dst, '\n')
		}
		i, last := 0, n.Len()-1
		n.Range(func(key string, v models.Value) bool {
			if pretty {
				dst = appendIndent(dst, inner)
			}
			dst = appendString(dst, key)
			dst = append(dst, ':')
			if pretty {
				dst = append(dst, ' ')
			}
			dst = f.appendValue(dst, v, inner)
			dst = f.appendSeparator(dst, i < last)
			i++
			return true
		})
		dst = f.appendCloser(dst, depth)
		return append(dst, '}')

	case *models.Array:
		dst = append(dst, '[')
		if pretty {
			dst = append(dst, '\n')
		}
		vals := n.Values()
		for i, v := range vals {
			if pretty {
				dst = appendIndent(dst, inner)
			}
			dst = f.appendValue(dst, v, inner)
			dst = f.appendSeparator(dst, i < len(vals)-1)
		}
		dst = f.appendCloser(dst, depth)
		return append(dst, ']')
	}
	return dst
}

func (f *Formatter) appendSeparator(dst []byte, more bool) []byte {
	if !more {
		return dst
	}
	dst = append(dst, ',')
	if f.style == StylePretty {
		dst = append(dst, '\n')
	}
	return dst
}

func (f *Formatter) appendCloser(dst []byte, depth int) []byte {
	if f.style != StylePretty {
		return dst
	}
	dst = append(dst, '\n')
	return appendIndent(dst, depth)
}

func (f *Formatter) appendValue(dst []byte, v models.Value, depth int) []byte {
	switch v.Kind() {
	case models.KindString:
		return appendString(dst, v.Str())
	case models.KindNumber:
		return append(dst, models.FormatNumber(v.Num())...)
	case models.KindBool:
		if v.Bool() {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case models.KindObject, models.KindArray:
		return f.appendContainer(dst, v.Container(), depth)
	}
	return append(dst, "null"...)
}

func appendIndent(dst []byte, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

// appendString quotes s, escaping exactly the characters the lexer decodes.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
