package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mcncl/jsonobj/internal/config"
	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/logger"
	"github.com/mcncl/jsonobj/internal/models"
	"github.com/mcncl/jsonobj/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .jsonobj.yml." short:"c" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Fmt    FmtCmd    `cmd:"" default:"withargs" help:"Parse JSON and print it pretty or compact."`
	Get    GetCmd    `cmd:"" help:"Read one key of a JSON object with type coercion."`
	Encode EncodeCmd `cmd:"" help:"Wrap a JSON document in a base64 envelope."`
	Decode DecodeCmd `cmd:"" help:"Unwrap a base64 envelope (or plain JSON) and print the document."`
	Infer  InferCmd  `cmd:"" help:"Infer record declarations from a sample document."`
	Check  CheckCmd  `cmd:"" help:"Report which inputs are well-formed."`
	Record RecordCmd `cmd:"" help:"Read inputs through a named record and print the normalized object."`
}

// Context holds the runtime context shared by every command
type Context struct {
	Debug  bool
	Config *config.Config
	Logger log.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("jsonobj"),
		kong.Description("Parse, format, query and bind JSON documents"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	ctx, err := newContext(CLI.Config, CLI.Debug, os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		err = kctx.Run(ctx)
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonobj --help\n")
		os.Exit(1)
	}
}

// newContext loads the configuration and builds the logger. An empty
// configPath falls back to the nearest config file, then to defaults.
func newContext(configPath string, debug bool, stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, "", "", 0)
	if err != nil {
		return nil, err
	}

	debug = debug || cfg.Dev.Debug
	ctx := &Context{
		Debug:  debug,
		Config: cfg,
		Logger: logger.New(stderr, debug),
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
	if configPath != "" {
		level.Debug(ctx.Logger).Log("msg", "loaded config", "path", configPath)
	}
	return ctx, nil
}

// newParser returns a parser that logs through the context logger
func (ctx *Context) newParser() *parser.Parser {
	return parser.New(parser.WithLogger(ctx.Logger))
}

// newFormatter returns the formatter for the configured style, or compact when
// compact is set
func (ctx *Context) newFormatter(compact bool) *formatter.Formatter {
	if compact {
		return formatter.NewFormatter(formatter.StyleCompact)
	}
	return formatter.NewFormatter(ctx.Config.Style())
}

// parseInput parses the file at path, or stdin when path is empty
func (ctx *Context) parseInput(path string) (models.Container, error) {
	if path != "" {
		return ctx.newParser().ParseFile(path)
	}
	text, err := ctx.readStdin()
	if err != nil {
		return nil, err
	}
	return ctx.newParser().Parse(text)
}

// readText returns the raw content of the file at path, or stdin when path
// is empty
func (ctx *Context) readText(path string) (string, error) {
	if path == "" {
		return ctx.readStdin()
	}
	return parser.ReadFile(path)
}

// readStdin reads piped input, or prompts for pasted input when stdin is a
// terminal
func (ctx *Context) readStdin() (string, error) {
	if isTerminal(ctx.Stdin) {
		return ctx.readInteractiveInput()
	}

	// Empty piped input is passed on; the parser turns it into an empty object.
	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	return string(data), nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func (ctx *Context) readInteractiveInput() (string, error) {
	fmt.Fprintln(ctx.Stderr, "jsonobj Interactive Mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(ctx.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}

// writeOutput writes text to the file at path, or to stdout when path is empty
func (ctx *Context) writeOutput(path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(ctx.Stderr, "Output written to %s\n", path)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, strings.TrimRight(text, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
