package generator

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonobj/internal/analyzer"
	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/schema"
)

// Generator renders inferred records as Go struct definitions or as a YAML
// records block that the config file accepts
type Generator struct {
	header string
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// NewGeneratorWithHeader creates a Generator that writes header as a comment
// above the package clause
func NewGeneratorWithHeader(header string) *Generator {
	return &Generator{header: header}
}

// GenerateStructs generates one Go struct per record, root first, with fields
// in declaration order
func (g *Generator) GenerateStructs(result analyzer.Result, packageName string) (string, error) {
	if len(result.Records) == 0 {
		return "", errors.NewOutputError("nothing to generate", errors.ErrEmptyInput)
	}
	if packageName == "" {
		packageName = "main"
	}

	var buf bytes.Buffer

	if g.header != "" {
		for _, line := range strings.Split(strings.TrimRight(g.header, "\n"), "\n") {
			buf.WriteString(fmt.Sprintf("// %s\n", line))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("package %s\n", packageName))

	for _, rec := range result.Records {
		buf.WriteString("\n")
		writeStruct(&buf, rec)
	}

	if len(result.Skipped) > 0 {
		buf.WriteString("\n// Not represented:\n")
		for _, path := range result.Skipped {
			buf.WriteString(fmt.Sprintf("//   %s\n", path))
		}
	}

	return buf.String(), nil
}

func writeStruct(buf *bytes.Buffer, rec schema.Record) {
	buf.WriteString(fmt.Sprintf("type %s struct {\n", rec.Name))

	// Calculate the maximum width for field names and types for proper alignment
	maxNameWidth := 0
	maxTypeWidth := 0
	for _, field := range rec.Fields {
		if n := len(field.Name); n > maxNameWidth {
			maxNameWidth = n
		}
		if n := len(goType(field.Kind)); n > maxTypeWidth {
			maxTypeWidth = n
		}
	}

	for _, field := range rec.Fields {
		buf.WriteString(fmt.Sprintf("\t%-*s %-*s `json:\"%s\"`\n",
			maxNameWidth, field.Name,
			maxTypeWidth, goType(field.Kind),
			field.KeyName()))
	}

	buf.WriteString("}\n")
}

// goType returns the Go type holding values of kind
func goType(kind schema.Kind) string {
	switch kind {
	case schema.KindInt:
		return "int64"
	case schema.KindFloat:
		return "float64"
	case schema.KindBool:
		return "bool"
	default:
		return "string"
	}
}

type recordsDocument struct {
	Records []schema.Record `yaml:"records"`
}

// GenerateYAML renders the records as a config file records block
func (g *Generator) GenerateYAML(result analyzer.Result) (string, error) {
	if len(result.Records) == 0 {
		return "", errors.NewOutputError("nothing to generate", errors.ErrEmptyInput)
	}

	var buf bytes.Buffer
	if g.header != "" {
		for _, line := range strings.Split(strings.TrimRight(g.header, "\n"), "\n") {
			buf.WriteString(fmt.Sprintf("# %s\n", line))
		}
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(recordsDocument{Records: result.Records}); err != nil {
		return "", errors.NewOutputError("failed to encode records", err)
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewOutputError("failed to encode records", err)
	}
	return buf.String(), nil
}
