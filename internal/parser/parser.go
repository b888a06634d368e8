package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/lexer"
	"github.com/mcncl/jsonobj/internal/models"
)

// State is what the innermost open container expects next.
type State int

const (
	// ExpectKey: an object member name, or '}' if the object is still empty.
	ExpectKey State = iota
	// ExpectColon: the ':' after a member name.
	ExpectColon
	// ExpectValue: a scalar, '{' or '[', or ']' if the array is still empty.
	ExpectValue
	// ExpectCloserOrComma: ',' or the closer matching the container.
	ExpectCloserOrComma
)

func (s State) String() string {
	switch s {
	case ExpectKey:
		return "ExpectKey"
	case ExpectColon:
		return "ExpectColon"
	case ExpectValue:
		return "ExpectValue"
	case ExpectCloserOrComma:
		return "ExpectCloserOrComma"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// frame is a container open for writing.
type frame struct {
	obj   *models.Object
	arr   *models.Array
	state State
	key   string
	empty bool
}

func (f *frame) store(v models.Value) {
	if f.arr != nil {
		f.arr.AddValue(v)
	} else {
		f.obj.AddValue(f.key, v)
	}
	f.empty = false
}

// Parser rebuilds a container tree from tokens using an explicit stack of open
// frames. A Parser is not safe for concurrent use; it may be reused for
// sequential parses.
type Parser struct {
	stack  []*frame
	root   models.Container
	done   bool
	logger log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used by the Try* methods to report the errors
// they swallow.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser ready to accept tokens.
func New(opts ...Option) *Parser {
	p := &Parser{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset discards any partial document so the parser can start over.
func (p *Parser) Reset() {
	p.stack = p.stack[:0]
	p.root = nil
	p.done = false
}

// Done reports whether a complete document has been read.
func (p *Parser) Done() bool { return p.done }

// Root returns the document once Done reports true.
func (p *Parser) Root() models.Container { return p.root }

// Depth returns the number of open frames.
func (p *Parser) Depth() int { return len(p.stack) }

// State returns the expectation of the innermost open frame. The second result
// is false when no frame is open.
func (p *Parser) State() (State, bool) {
	if len(p.stack) == 0 {
		return 0, false
	}
	return p.stack[len(p.stack)-1].state, true
}

// Feed advances the parser by one token.
func (p *Parser) Feed(tok lexer.Token) error {
	if tok.Type == lexer.SyntaxError {
		return errors.NewSyntaxError(tok.Offset, fmt.Errorf("%w: %s", tok.Err, tok.Text))
	}
	if p.done {
		if tok.Type == lexer.EndOfInput {
			return nil
		}
		return unexpected(tok)
	}
	if len(p.stack) == 0 {
		return p.begin(tok)
	}
	if tok.Type == lexer.EndOfInput {
		return errors.NewSyntaxError(tok.Offset, errors.ErrPrematureEOF)
	}

	top := p.stack[len(p.stack)-1]
	switch top.state {
	case ExpectKey:
		if tok.Type == lexer.CloseObject && top.empty {
			p.pop()
			return nil
		}
		if !tok.IsKey() {
			return errors.NewSyntaxError(tok.Offset, fmt.Errorf("%w, got %s", errors.ErrMissingKey, tok.Type))
		}
		top.key = tok.Text
		top.state = ExpectColon

	case ExpectColon:
		if tok.Type != lexer.Colon {
			return errors.NewSyntaxError(tok.Offset, fmt.Errorf("%w, got %s", errors.ErrMissingColon, tok.Type))
		}
		top.state = ExpectValue

	case ExpectValue:
		switch {
		case tok.Type == lexer.CloseArray && top.arr != nil && top.empty:
			p.pop()
		case tok.IsScalar():
			top.store(tok.Value())
			top.state = ExpectCloserOrComma
		case tok.Type == lexer.OpenObject:
			child := models.NewObject()
			top.store(models.ObjectValue(child))
			top.state = ExpectCloserOrComma
			p.push(&frame{obj: child, state: ExpectKey, empty: true})
		case tok.Type == lexer.OpenArray:
			child := models.NewArray()
			top.store(models.ArrayValue(child))
			top.state = ExpectCloserOrComma
			p.push(&frame{arr: child, state: ExpectValue, empty: true})
		default:
			return errors.NewSyntaxError(tok.Offset, fmt.Errorf("%w, got %s", errors.ErrExpectedValue, tok.Type))
		}

	case ExpectCloserOrComma:
		switch {
		case tok.Type == lexer.Comma && top.arr != nil:
			top.state = ExpectValue
		case tok.Type == lexer.Comma:
			top.state = ExpectKey
		case tok.Type == lexer.CloseArray && top.arr != nil,
			tok.Type == lexer.CloseObject && top.obj != nil:
			p.pop()
		default:
			return unexpected(tok)
		}
	}
	return nil
}

// begin opens the root frame. Empty input is an empty object.
func (p *Parser) begin(tok lexer.Token) error {
	switch tok.Type {
	case lexer.EndOfInput:
		p.root = models.NewObject()
		p.done = true
	case lexer.OpenObject:
		obj := models.NewObject()
		p.root = obj
		p.push(&frame{obj: obj, state: ExpectKey, empty: true})
	case lexer.OpenArray:
		arr := models.NewArray()
		p.root = arr
		p.push(&frame{arr: arr, state: ExpectValue, empty: true})
	default:
		return errors.NewSyntaxError(tok.Offset, fmt.Errorf("%w, got %s", errors.ErrInvalidRoot, tok.Type))
	}
	return nil
}

func (p *Parser) push(f *frame) {
	p.stack = append(p.stack, f)
}

func (p *Parser) pop() {
	p.stack[len(p.stack)-1] = nil
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		p.done = true
	}
}

func unexpected(tok lexer.Token) error {
	return errors.NewSyntaxError(tok.Offset, fmt.Errorf("%w %s", errors.ErrUnexpectedToken, tok.Type))
}

// Parse reads one document from text. Anything after the document's closing
// bracket is not examined.
func (p *Parser) Parse(text string) (models.Container, error) {
	p.Reset()
	lex := lexer.New(text)
	for !p.done {
		if err := p.Feed(lex.Next()); err != nil {
			p.Reset()
			return nil, err
		}
	}
	return p.root, nil
}

// TryParse is Parse without the error: malformed text yields nil.
func (p *Parser) TryParse(text string) models.Container {
	root, err := p.Parse(text)
	if err != nil {
		level.Debug(p.logger).Log("msg", "discarding malformed document", "err", err)
		return nil
	}
	return root
}

// ParseFile reads and parses the file at path.
func (p *Parser) ParseFile(path string) (models.Container, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(text)
}

// TryParseFile is ParseFile that logs and swallows any error, returning nil.
func (p *Parser) TryParseFile(path string) models.Container {
	root, err := p.ParseFile(path)
	if err != nil {
		level.Warn(p.logger).Log("msg", "failed to parse file", "path", path, "err", err)
		return nil
	}
	return root
}

// Parse reads one document from text with a fresh parser.
func Parse(text string) (models.Container, error) {
	return New().Parse(text)
}

// TryParse reads one document from text, returning nil when it is malformed.
func TryParse(text string) models.Container {
	return New().TryParse(text)
}

// ParseReader reads everything from reader and parses it as one document.
func ParseReader(reader io.Reader) (models.Container, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return Parse(string(data))
}

// ParseFile parses the file at path with a fresh parser.
func ParseFile(path string) (models.Container, error) {
	return New().ParseFile(path)
}

// TryParseFile parses the file at path, returning nil on any failure.
func TryParseFile(path string) models.Container {
	return New().TryParseFile(path)
}

// ReadFile returns the content of the file at filePath. A missing file is an
// input error wrapping ErrFileNotFound.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	return string(data), nil
}
