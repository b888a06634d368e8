// Package lexer splits JSON text into classified tokens, one per call.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonobj/internal/errors"
)

const maxKeywordLen = 5

// Lexer produces tokens from an input buffer. It only moves forward and keeps
// no state besides the cursor.
type Lexer struct {
	buf string
	pos int
}

// New returns a lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{buf: input}
}

// Offset returns the current cursor position.
func (l *Lexer) Offset() int {
	return l.pos
}

// Next returns the next token. Once EndOfInput has been returned every further
// call returns EndOfInput again.
func (l *Lexer) Next() Token {
	for l.pos < len(l.buf) {
		ch := l.buf[l.pos]
		start := l.pos
		switch ch {
		case ' ', '\t', '\n', '\r':
			l.pos++
			continue
		case '{':
			l.pos++
			return Token{Type: OpenObject, Offset: start}
		case '}':
			l.pos++
			return Token{Type: CloseObject, Offset: start}
		case '[':
			l.pos++
			return Token{Type: OpenArray, Offset: start}
		case ']':
			l.pos++
			return Token{Type: CloseArray, Offset: start}
		case ':':
			l.pos++
			return Token{Type: Colon, Offset: start}
		case ',':
			l.pos++
			return Token{Type: Comma, Offset: start}
		case '"':
			return l.lexString()
		}

		switch {
		case isDigit(ch) || ch == '-' || ch == '.':
			return l.lexNumber()
		case isAlpha(ch):
			return l.lexKeyword()
		}
		l.pos++
		return l.fail(start, errors.ErrUndefinedCharacter, fmt.Sprintf("%q", ch))
	}
	return Token{Type: EndOfInput, Offset: l.pos}
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	for isNumberChar(l.buf[l.pos]) {
		l.pos++
		if l.pos >= len(l.buf) {
			return l.fail(start, errors.ErrPrematureEOF, "inside a number")
		}
	}
	text := l.buf[start:l.pos]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.fail(start, errors.ErrMalformedNumber, strconv.Quote(text))
	}
	return Token{Type: Number, Text: text, Num: f, Offset: start}
}

func (l *Lexer) lexKeyword() Token {
	start := l.pos
	for n := 0; n < maxKeywordLen && isAlpha(l.buf[l.pos]); n++ {
		l.pos++
		if l.pos >= len(l.buf) {
			return l.fail(start, errors.ErrPrematureEOF, "inside a keyword")
		}
	}
	word := l.buf[start:l.pos]
	if tok, ok := keyword(word); ok {
		tok.Offset = start
		return tok
	}
	return l.fail(start, errors.ErrBadKeyword, strconv.Quote(word))
}

func (l *Lexer) lexString() Token {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for {
		if l.pos >= len(l.buf) {
			return l.fail(start, errors.ErrPrematureEOF, "inside a string")
		}
		ch := l.buf[l.pos]
		l.pos++
		if ch == '"' {
			break
		}
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		if l.pos >= len(l.buf) {
			return l.fail(start, errors.ErrPrematureEOF, "inside a string")
		}
		esc := l.buf[l.pos]
		l.pos++
		decoded, ok := unescape(esc)
		if !ok {
			return l.fail(start, errors.ErrUndefinedEscape, fmt.Sprintf("\\%c", esc))
		}
		sb.WriteByte(decoded)
	}

	text := sb.String()
	if tok, ok := keyword(text); ok {
		tok.Quoted = true
		tok.Offset = start
		return tok
	}
	if isNumberText(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Token{Type: Number, Text: text, Num: f, Quoted: true, Offset: start}
		}
	}
	return Token{Type: String, Text: text, Quoted: true, Offset: start}
}

func (l *Lexer) fail(offset int, err error, msg string) Token {
	return Token{Type: SyntaxError, Text: msg, Offset: offset, Err: err}
}

func keyword(word string) (Token, bool) {
	switch word {
	case "true":
		return Token{Type: Boolean, Text: word, Bool: true}, true
	case "false":
		return Token{Type: Boolean, Text: word, Bool: false}, true
	case "null":
		return Token{Type: Null, Text: word}, true
	}
	return Token{}, false
}

// unescape maps the character after a backslash to the byte it stands for.
func unescape(c byte) (byte, bool) {
	switch c {
	case '"', '\\':
		return c, true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 't':
		return '\t', true
	}
	return 0, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isNumberChar(c byte) bool { return isDigit(c) || c == '.' || c == '-' }

func isNumberText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNumberChar(s[i]) {
			return false
		}
	}
	return true
}
