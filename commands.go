package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/mcncl/jsonobj/internal/analyzer"
	"github.com/mcncl/jsonobj/internal/batch"
	"github.com/mcncl/jsonobj/internal/envelope"
	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/generator"
	"github.com/mcncl/jsonobj/internal/models"
)

// FmtCmd parses documents and prints them
type FmtCmd struct {
	Files   []string `arg:"" optional:"" help:"JSON files to format. Reads stdin when omitted." type:"path"`
	Compact bool     `help:"Print without whitespace." short:"C"`
	Base64  bool     `help:"Print the base64 envelope of the compact form." short:"b"`
	Output  string   `help:"Write to this file instead of stdout (single input only)." short:"o" type:"path"`
	Workers int      `help:"Number of files formatted concurrently." short:"w"`
}

// Run executes the fmt command
func (c *FmtCmd) Run(ctx *Context) error {
	render := ctx.newFormatter(c.Compact).Format
	if c.Base64 || ctx.Config.Output.Base64 {
		render = envelope.ToBase64
	}

	if len(c.Files) <= 1 {
		path := ""
		if len(c.Files) == 1 {
			path = c.Files[0]
		}
		doc, err := ctx.parseInput(path)
		if err != nil {
			return err
		}
		return ctx.writeOutput(c.Output, render(doc))
	}

	if c.Output != "" {
		return errors.NewOutputError("--output needs exactly one input", nil)
	}

	workers := ctx.Config.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	runner, err := batch.NewRunner(workers, nil, batch.WithRender(render), batch.WithLogger(ctx.Logger))
	if err != nil {
		return err
	}
	defer runner.Release()

	results := runner.RunFiles(context.Background(), c.Files)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(ctx.Stderr, "%s: %s\n", res.Name, errors.UserFriendlyError(res.Err))
			continue
		}
		if err := ctx.writeOutput("", fmt.Sprintf("==> %s <==\n%s", res.Name, res.Output)); err != nil {
			return err
		}
	}

	if failed := batch.Failed(results); failed > 0 {
		return errors.NewInputError(fmt.Sprintf("%d of %d files could not be formatted", failed, len(results)), nil)
	}
	return nil
}

// GetCmd reads one key through the accessor layer
type GetCmd struct {
	Key     string `arg:"" help:"Key to read from the root object."`
	File    string `arg:"" optional:"" help:"JSON file. Reads stdin when omitted." type:"path"`
	As      string `help:"Kind to read the value as." enum:"string,int,long,double,bool,object" default:"string" short:"a"`
	Default string `help:"Value printed when the key is missing, null or unparsable."`
}

// Run executes the get command
func (c *GetCmd) Run(ctx *Context) error {
	doc, err := ctx.parseInput(c.File)
	if err != nil {
		return err
	}
	obj, ok := doc.(*models.Object)
	if !ok {
		return errors.NewInputError("get needs a document whose root is an object", nil)
	}

	out, err := c.read(ctx, obj)
	if err != nil {
		return err
	}
	return ctx.writeOutput("", out)
}

func (c *GetCmd) read(ctx *Context, obj *models.Object) (string, error) {
	switch c.As {
	case "int":
		def, err := parseDefault(c.Default, "int", func(s string) (int, error) { return strconv.Atoi(s) })
		if err != nil {
			return "", err
		}
		v, err := obj.AsInt(c.Key, def)
		return strconv.Itoa(v), err
	case "long":
		def, err := parseDefault(c.Default, "long", func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
		if err != nil {
			return "", err
		}
		v, err := obj.AsLong(c.Key, def)
		return strconv.FormatInt(v, 10), err
	case "double":
		def, err := parseDefault(c.Default, "double", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
		if err != nil {
			return "", err
		}
		v, err := obj.AsDouble(c.Key, def)
		return models.FormatNumber(v), err
	case "bool":
		def, err := parseDefault(c.Default, "bool", strconv.ParseBool)
		if err != nil {
			return "", err
		}
		v, err := obj.AsBool(c.Key, def)
		return strconv.FormatBool(v), err
	case "object":
		child := obj.AsObject(c.Key)
		if child == nil {
			if c.Default != "" {
				return c.Default, nil
			}
			return "null", nil
		}
		return ctx.newFormatter(false).Format(child), nil
	default:
		return obj.AsString(c.Key, c.Default)
	}
}

func parseDefault[T any](s, kind string, parse func(string) (T, error)) (T, error) {
	var zero T
	if s == "" {
		return zero, nil
	}
	v, err := parse(strings.TrimSpace(s))
	if err != nil {
		return zero, errors.NewInputError(fmt.Sprintf("default '%s' is not a valid %s", s, kind), err)
	}
	return v, nil
}

// EncodeCmd wraps a document in a base64 envelope
type EncodeCmd struct {
	File string `arg:"" optional:"" help:"JSON file. Reads stdin when omitted." type:"path"`
}

// Run executes the encode command
func (c *EncodeCmd) Run(ctx *Context) error {
	doc, err := ctx.parseInput(c.File)
	if err != nil {
		return err
	}
	return ctx.writeOutput("", envelope.ToBase64(doc))
}

// DecodeCmd unwraps a base64 envelope
type DecodeCmd struct {
	File    string `arg:"" optional:"" help:"File holding the envelope. Reads stdin when omitted." type:"path"`
	Compact bool   `help:"Print without whitespace." short:"C"`
}

// Run executes the decode command
func (c *DecodeCmd) Run(ctx *Context) error {
	text, err := ctx.readText(c.File)
	if err != nil {
		return err
	}
	doc, err := envelope.FromBase64(text)
	if err != nil {
		return err
	}
	if doc == nil {
		return errors.NewInputError("envelope is empty", errors.ErrEmptyInput)
	}
	return ctx.writeOutput("", ctx.newFormatter(c.Compact).Format(doc))
}

// InferCmd infers record declarations from a sample document
type InferCmd struct {
	File    string `arg:"" optional:"" help:"Sample JSON file. Reads stdin when omitted." type:"path"`
	Name    string `help:"Name of the root record." short:"n"`
	Package string `help:"Package name for generated Go code." short:"p"`
	YAML    bool   `help:"Emit a records block for the config file instead of Go code." name:"yaml"`
	Output  string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

// Run executes the infer command
func (c *InferCmd) Run(ctx *Context) error {
	doc, err := ctx.parseInput(c.File)
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		name = ctx.Config.RootName
	}
	result, err := analyzer.NewAnalyzerWithConfig(ctx.Config).Analyze(doc, name)
	if err != nil {
		return err
	}
	level.Debug(ctx.Logger).Log("msg", "inferred records", "records", len(result.Records), "skipped", len(result.Skipped))

	gen := generator.NewGeneratorWithHeader(ctx.Config.Output.FileHeader)
	var out string
	if c.YAML {
		out, err = gen.GenerateYAML(result)
	} else {
		pkg := c.Package
		if pkg == "" {
			pkg = ctx.Config.Package
		}
		out, err = gen.GenerateStructs(result, pkg)
	}
	if err != nil {
		return err
	}
	return ctx.writeOutput(c.Output, out)
}

// CheckCmd reports whether each input parses
type CheckCmd struct {
	Files []string `arg:"" optional:"" help:"JSON files to check. Reads stdin when omitted." type:"path"`
}

// Run executes the check command
func (c *CheckCmd) Run(ctx *Context) error {
	p := ctx.newParser()
	invalid := 0

	report := func(name string, doc models.Container) error {
		status := "ok"
		if doc == nil {
			status = "invalid"
			invalid++
		}
		return ctx.writeOutput("", fmt.Sprintf("%s: %s", name, status))
	}

	if len(c.Files) == 0 {
		text, err := ctx.readStdin()
		if err != nil {
			return err
		}
		if err := report("<stdin>", p.TryParse(text)); err != nil {
			return err
		}
	}
	for _, path := range c.Files {
		if err := report(path, p.TryParseFile(path)); err != nil {
			return err
		}
	}

	if invalid > 0 {
		total := len(c.Files)
		if total == 0 {
			total = 1
		}
		return errors.NewInputError(fmt.Sprintf("%d of %d documents are malformed", invalid, total), nil)
	}
	return nil
}

// RecordCmd binds documents to a declared record
type RecordCmd struct {
	Name    string   `arg:"" help:"Record name, as declared in the config file or built in (Bundle)."`
	Files   []string `arg:"" optional:"" help:"JSON files or envelopes. Reads stdin when omitted." type:"path"`
	Compact bool     `help:"Print without whitespace." short:"C"`
}

// Run executes the record command
func (c *RecordCmd) Run(ctx *Context) error {
	reg, err := ctx.Config.Registry()
	if err != nil {
		return err
	}
	rec, err := reg.Lookup(c.Name)
	if err != nil {
		level.Debug(ctx.Logger).Log("msg", "record lookup failed", "err", err)
		return errors.NewSchemaError(
			fmt.Sprintf("no record named '%s' (known records: %s)", c.Name, strings.Join(reg.Names(), ", ")),
			errors.ErrUnknownRecord,
		)
	}

	paths := c.Files
	if len(paths) == 0 {
		paths = []string{""}
	}

	f := ctx.newFormatter(c.Compact)
	for _, path := range paths {
		text, err := ctx.readText(path)
		if err != nil {
			return err
		}
		doc, err := envelope.FromBase64(text)
		if err != nil {
			return err
		}
		vals, err := rec.UnwrapContainer(doc)
		if err != nil {
			return err
		}
		if err := ctx.writeOutput("", f.Format(rec.Wrap(vals))); err != nil {
			return err
		}
	}
	return nil
}
