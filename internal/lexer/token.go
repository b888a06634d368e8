package lexer

import (
	"fmt"

	"github.com/mcncl/jsonobj/internal/models"
)

// TokenType classifies a lexical unit.
type TokenType int

const (
	OpenObject TokenType = iota
	CloseObject
	OpenArray
	CloseArray
	Colon
	Comma
	String
	Number
	Boolean
	Null
	SyntaxError
	EndOfInput
)

var tokenNames = [...]string{
	OpenObject:  "'{'",
	CloseObject: "'}'",
	OpenArray:   "'['",
	CloseArray:  "']'",
	Colon:       "':'",
	Comma:       "','",
	String:      "string",
	Number:      "number",
	Boolean:     "boolean",
	Null:        "null",
	SyntaxError: "syntax error",
	EndOfInput:  "end of input",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// Token is one classified lexical unit. Tokens are plain values and are never
// modified after the lexer returns them.
type Token struct {
	Type TokenType
	// Text is the decoded contents of a string, the literal text of a number,
	// or the description of a syntax error.
	Text string
	Num  float64
	Bool bool
	// Quoted is set when the token was read from a quoted string, including
	// quoted strings that were reclassified as numbers, booleans or null.
	Quoted bool
	// Offset is the byte position where the token starts.
	Offset int
	// Err is the sentinel behind a SyntaxError token.
	Err error
}

// IsScalar reports whether the token carries a value that can be stored.
func (t Token) IsScalar() bool {
	switch t.Type {
	case String, Number, Boolean, Null:
		return true
	}
	return false
}

// IsKey reports whether the token may name an object member.
func (t Token) IsKey() bool {
	return t.Quoted || t.Type == Number
}

// Value converts a scalar token to a stored value. Non-scalar tokens yield the
// invalid value.
func (t Token) Value() models.Value {
	switch t.Type {
	case String:
		return models.StringValue(t.Text)
	case Number:
		return models.NumberValue(t.Num)
	case Boolean:
		return models.BoolValue(t.Bool)
	case Null:
		return models.NullValue()
	}
	return models.Value{}
}

func (t Token) String() string {
	switch t.Type {
	case String, Number:
		return fmt.Sprintf("%s %q", t.Type, t.Text)
	case SyntaxError:
		return fmt.Sprintf("%s: %s", t.Type, t.Text)
	}
	return t.Type.String()
}
