package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrNoInput         = errors.New("no input provided: please specify files or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrUnknownRecord   = errors.New("unknown record")
	ErrInvalidCast     = errors.New("invalid cast")
)

// Syntax errors raised by the lexer and the parser
var (
	ErrMissingKey         = errors.New("expecting a string key")
	ErrMissingColon       = errors.New("expecting a colon after the key")
	ErrPrematureEOF       = errors.New("premature end of input")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrExpectedValue      = errors.New("expecting a value, object, or array")
	ErrUndefinedCharacter = errors.New("undefined character")
	ErrUndefinedEscape    = errors.New("undefined escape sequence")
	ErrBadKeyword         = errors.New("expecting one of true, false or null")
	ErrMalformedNumber    = errors.New("malformed number")
	ErrInvalidRoot        = errors.New("document root must be an object or an array")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeSyntax  ErrorType = "syntax"
	ErrorTypeCast    ErrorType = "cast"
	ErrorTypeSchema  ErrorType = "schema"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewSyntaxError creates a new error for malformed JSON text. The offset is the
// byte position of the token that could not be accepted.
func NewSyntaxError(offset int, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSyntax,
		Message: fmt.Sprintf("syntax error at offset %d", offset),
		Err:     err,
	}
}

// NewCastError creates a new error for an accessor asked for a kind the stored
// value cannot be converted to
func NewCastError(key, from, to string) *AppError {
	return &AppError{
		Type:    ErrorTypeCast,
		Message: fmt.Sprintf("cannot read key '%s' holding %s as %s", key, from, to),
		Err:     ErrInvalidCast,
	}
}

// NewSchemaError creates a new error related to record binding
func NewSchemaError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSchema,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// IsSyntax reports whether err is a syntax error raised while parsing
func IsSyntax(err error) bool {
	return errors.Is(err, &AppError{Type: ErrorTypeSyntax})
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeSyntax:
			return fmt.Sprintf("JSON syntax error: %v (%s)", appErr.Err, appErr.Message)
		case ErrorTypeCast:
			return fmt.Sprintf("Type error: %s", appErr.Message)
		case ErrorTypeSchema:
			return fmt.Sprintf("Record error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify files or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
