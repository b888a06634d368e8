package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/schema"
)

// Config represents the complete configuration for jsonobj
type Config struct {
	Package   string          `yaml:"package"`
	RootName  string          `yaml:"root_name"`
	Workers   int             `yaml:"workers"`
	Output    OutputConfig    `yaml:"output"`
	Naming    NamingConfig    `yaml:"naming"`
	Inference InferenceConfig `yaml:"inference"`
	Records   []schema.Record `yaml:"records"`
	Dev       DevConfig       `yaml:"dev"`
}

// OutputConfig controls how documents are printed
type OutputConfig struct {
	Style      string `yaml:"style"`
	Base64     bool   `yaml:"base64"`
	FileHeader string `yaml:"file_header"`
}

// NamingConfig controls record keys and generated Go field names
type NamingConfig struct {
	KeyStyle         string            `yaml:"key_style"`
	PascalCaseFields bool              `yaml:"pascal_case_fields"`
	FieldMappings    map[string]string `yaml:"field_mappings"`
}

// InferenceConfig controls how records are inferred from sample documents
type InferenceConfig struct {
	Mappings   []KindMapping `yaml:"mappings"`
	SkipFields []string      `yaml:"skip_fields"`
}

// KindMapping forces the kind of fields whose key matches Pattern
type KindMapping struct {
	Pattern string      `yaml:"pattern"`
	Kind    schema.Kind `yaml:"kind"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Package:  "main",
		RootName: "Record",
		Workers:  4,
		Output: OutputConfig{
			Style: formatter.StylePretty.String(),
		},
		Naming: NamingConfig{
			KeyStyle:         string(schema.KeyStyleAsIs),
			PascalCaseFields: true,
			FieldMappings:    make(map[string]string),
		},
		Inference: InferenceConfig{
			Mappings: []KindMapping{},
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, errors.NewConfigError("failed to compile patterns", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonobj.yml", ".jsonobj.yaml", "jsonobj.yml", "jsonobj.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Inference.Mappings {
		mapping := &c.Inference.Mappings[i]
		regex, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return fmt.Errorf("invalid kind mapping pattern '%s': %w", mapping.Pattern, err)
		}
		mapping.regex = regex
	}
	return nil
}

// Validate checks option values and every declared record
func (c *Config) Validate() error {
	if _, err := formatter.ParseStyle(c.Output.Style); err != nil {
		return errors.NewConfigError("invalid output.style", err)
	}
	if _, err := schema.ParseKeyStyle(c.Naming.KeyStyle); err != nil {
		return errors.NewConfigError("invalid naming.key_style", err)
	}
	if c.Workers < 0 {
		return errors.NewConfigError(fmt.Sprintf("workers must not be negative, got %d", c.Workers), nil)
	}
	for _, mapping := range c.Inference.Mappings {
		if !mapping.Kind.Valid() {
			return errors.NewConfigError(fmt.Sprintf("mapping '%s' has unknown kind '%s'", mapping.Pattern, mapping.Kind), nil)
		}
	}
	for _, rec := range c.Records {
		if err := rec.Validate(); err != nil {
			return errors.NewConfigError("invalid record declaration", err)
		}
	}
	return nil
}

// MatchesField checks if this kind mapping matches the given key
func (km *KindMapping) MatchesField(key string) bool {
	if km.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(km.Pattern)
		if err != nil {
			return false
		}
		km.regex = regex
	}
	return km.regex.MatchString(key)
}

// Style returns the configured output style, pretty when unset or invalid
func (c *Config) Style() formatter.Style {
	style, err := formatter.ParseStyle(c.Output.Style)
	if err != nil {
		return formatter.StylePretty
	}
	return style
}

// KeyStyle returns the configured record key style
func (c *Config) KeyStyle() schema.KeyStyle {
	style, err := schema.ParseKeyStyle(c.Naming.KeyStyle)
	if err != nil {
		return schema.KeyStyleAsIs
	}
	return style
}

// Registry returns the built-in records plus every declared record, with keys
// filled in according to the key style
func (c *Config) Registry() (*schema.Registry, error) {
	style := c.KeyStyle()
	records := make([]schema.Record, len(c.Records))
	for i, rec := range c.Records {
		records[i] = rec.WithKeyStyle(style)
	}
	reg, err := schema.NewRegistry(records...)
	if err != nil {
		return nil, errors.NewConfigError("invalid record declaration", err)
	}
	return reg, nil
}

// GetFieldName returns the Go field name for a JSON key, applying naming rules
func (c *Config) GetFieldName(jsonKey string) string {
	// Check custom mappings first
	if mapped, exists := c.Naming.FieldMappings[jsonKey]; exists {
		return mapped
	}

	if c.Naming.PascalCaseFields {
		return strcase.ToCamel(jsonKey)
	}

	return jsonKey
}

// FindKindMapping finds the first kind mapping that matches the key
func (c *Config) FindKindMapping(key string) (KindMapping, bool) {
	for _, mapping := range c.Inference.Mappings {
		if mapping.MatchesField(key) {
			return mapping, true
		}
	}
	return KindMapping{}, false
}

// ShouldSkipField checks if a key is excluded from inference
func (c *Config) ShouldSkipField(key string) bool {
	for _, skip := range c.Inference.SkipFields {
		if skip == key {
			return true
		}
	}
	return false
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty strings
// and a zero worker count leave the file or default value in place.
func LoadConfigWithCLI(configPath, cliStyle, cliPackage string, cliWorkers int) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliStyle != "" {
		cfg.Output.Style = cliStyle
	}
	if cliPackage != "" && cliPackage != "main" {
		cfg.Package = cliPackage
	}
	if cliWorkers > 0 {
		cfg.Workers = cliWorkers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
