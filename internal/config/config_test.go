package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/schema"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "main", cfg.Package)
	assert.Equal(t, "Record", cfg.RootName)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "pretty", cfg.Output.Style)
	assert.False(t, cfg.Output.Base64)
	assert.Equal(t, formatter.StylePretty, cfg.Style())
	assert.Equal(t, schema.KeyStyleAsIs, cfg.KeyStyle())
	assert.True(t, cfg.Naming.PascalCaseFields)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
package: "store"
root_name: "Book"
workers: 8
output:
  style: compact
  base64: true
naming:
  key_style: snake
  field_mappings:
    "user_id": "UserID"
inference:
  mappings:
    - pattern: ".*_id$"
      kind: int
  skip_fields:
    - internal
records:
  - name: Book
    fields:
      - name: Title
        kind: string
        default: untitled
      - name: PageCount
        kind: int
        default: -1
      - name: Price
        key: cost
        kind: float
dev:
  debug: true
`

	cfg, err := LoadConfig(writeConfig(t, yamlContent))
	require.NoError(t, err)

	assert.Equal(t, "store", cfg.Package)
	assert.Equal(t, "Book", cfg.RootName)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, formatter.StyleCompact, cfg.Style())
	assert.True(t, cfg.Output.Base64)
	assert.Equal(t, schema.KeyStyleSnake, cfg.KeyStyle())
	assert.Equal(t, "UserID", cfg.Naming.FieldMappings["user_id"])
	assert.True(t, cfg.Naming.PascalCaseFields, "unset keys keep their defaults")
	assert.True(t, cfg.Dev.Debug)

	require.Len(t, cfg.Inference.Mappings, 1)
	assert.Equal(t, schema.KindInt, cfg.Inference.Mappings[0].Kind)
	assert.True(t, cfg.ShouldSkipField("internal"))

	require.Len(t, cfg.Records, 1)
	book := cfg.Records[0]
	assert.Equal(t, "Book", book.Name)
	require.Len(t, book.Fields, 3)
	assert.Equal(t, "untitled", book.Fields[0].DefaultValue())
	assert.Equal(t, int64(-1), book.Fields[1].DefaultValue())
	assert.Equal(t, "cost", book.Fields[2].KeyName())
}

func TestConfig_Registry(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
naming:
  key_style: snake
records:
  - name: Author
    fields:
      - name: FullName
        kind: string
      - name: BirthYear
        key: born
        kind: int
`))
	require.NoError(t, err)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.Equal(t, []string{"Author", "Bundle"}, reg.Names())

	author, err := reg.Lookup("author")
	require.NoError(t, err)
	assert.Equal(t, "full_name", author.Fields[0].KeyName())
	assert.Equal(t, "born", author.Fields[1].KeyName())

	bundle, err := reg.Lookup("Bundle")
	require.NoError(t, err)
	assert.Equal(t, "ServerId", bundle.Fields[0].KeyName(), "built-in records keep their keys")
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
package: "models"
invalid_yaml: [unclosed array
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_LoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad style", "output:\n  style: yaml\n", "invalid output.style"},
		{"bad key style", "naming:\n  key_style: kebab\n", "invalid naming.key_style"},
		{"negative workers", "workers: -2\n", "workers must not be negative"},
		{"bad pattern", "inference:\n  mappings:\n    - pattern: \"[x\"\n      kind: int\n", "failed to compile patterns"},
		{"bad mapping kind", "inference:\n  mappings:\n    - pattern: x\n      kind: date\n", "unknown kind 'date'"},
		{"bad record", "records:\n  - name: Empty\n", "invalid record declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".jsonobj.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`package: "found"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(nestedDir))

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `package: "found"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestKindMapping_MatchesPattern(t *testing.T) {
	mapping := KindMapping{Pattern: ".*_id$", Kind: schema.KindInt}

	assert.True(t, mapping.MatchesField("user_id"))
	assert.True(t, mapping.MatchesField("product_id"))
	assert.False(t, mapping.MatchesField("username"))
	assert.False(t, mapping.MatchesField("id_number"))
}

func TestKindMapping_InvalidPattern(t *testing.T) {
	mapping := KindMapping{Pattern: "[invalid regex", Kind: schema.KindInt}

	// Should not panic and should return false for invalid regex
	assert.False(t, mapping.MatchesField("user_id"))
}

func TestConfig_GetFieldName(t *testing.T) {
	cfg := &Config{
		Naming: NamingConfig{
			PascalCaseFields: true,
			FieldMappings: map[string]string{
				"user_id": "UserID",
				"api_key": "APIKey",
			},
		},
	}

	assert.Equal(t, "UserID", cfg.GetFieldName("user_id"))
	assert.Equal(t, "APIKey", cfg.GetFieldName("api_key"))
	assert.Equal(t, "UserName", cfg.GetFieldName("user_name"))
	assert.Equal(t, "FirstName", cfg.GetFieldName("first_name"))

	cfg.Naming.PascalCaseFields = false
	assert.Equal(t, "user_name", cfg.GetFieldName("user_name"))
}

func TestConfig_FindKindMapping(t *testing.T) {
	cfg := &Config{
		Inference: InferenceConfig{
			Mappings: []KindMapping{
				{Pattern: ".*_id$", Kind: schema.KindInt},
				{Pattern: "^price", Kind: schema.KindFloat},
			},
		},
	}

	mapping, found := cfg.FindKindMapping("user_id")
	assert.True(t, found)
	assert.Equal(t, schema.KindInt, mapping.Kind)

	mapping, found = cfg.FindKindMapping("price_usd")
	assert.True(t, found)
	assert.Equal(t, schema.KindFloat, mapping.Kind)

	_, found = cfg.FindKindMapping("username")
	assert.False(t, found)
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeConfig(t, `
package: "models"
workers: 2
output:
  style: pretty
  base64: true
`)

	cfg, err := LoadConfigWithCLI(path, "compact", "api", 16)
	require.NoError(t, err)

	// CLI > config file > defaults
	assert.Equal(t, formatter.StyleCompact, cfg.Style())
	assert.Equal(t, "api", cfg.Package)
	assert.Equal(t, 16, cfg.Workers)
	assert.True(t, cfg.Output.Base64)
	assert.Equal(t, "Record", cfg.RootName)
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	path := writeConfig(t, "package: \"models\"\nworkers: 2\n")

	cfg, err := LoadConfigWithCLI(path, "", "", 0)
	require.NoError(t, err)

	assert.Equal(t, "models", cfg.Package)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, formatter.StylePretty, cfg.Style())
}

func TestLoadConfigWithCLI_InvalidStyle(t *testing.T) {
	_, err := LoadConfigWithCLI("", "fancy", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output.style")
}
