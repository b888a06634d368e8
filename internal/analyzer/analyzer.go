package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonobj/internal/config"
	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/models"
	"github.com/mcncl/jsonobj/internal/schema"
)

// DefaultRootName is the default name for the root record if not specified.
const DefaultRootName = "Record"

// Result holds the records inferred from one document, root first.
type Result struct {
	Records []schema.Record
	// Skipped lists key paths that could not become record fields
	Skipped []string
}

// Root returns the record inferred for the document itself.
func (r Result) Root() schema.Record {
	if len(r.Records) == 0 {
		return schema.Record{}
	}
	return r.Records[0]
}

// Analyzer infers record declarations from sample documents.
//
// Records hold scalar fields only, so every nested object becomes a record of
// its own and arrays of objects become one record merged from all elements.
type Analyzer struct {
	// recordNames tracks generated record names to avoid collisions
	recordNames map[string]int
	result      Result
	config      *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{
		recordNames: make(map[string]int),
		config:      cfg,
	}
}

// Analyze infers the records describing doc. A root array must hold objects;
// they are merged into the root record.
func (a *Analyzer) Analyze(doc models.Container, rootName string) (Result, error) {
	a.recordNames = make(map[string]int)
	a.result = Result{}

	if rootName == "" {
		rootName = DefaultRootName
	}
	rootName = a.generateUniqueName(recordName(rootName))

	var objects []*models.Object
	switch root := doc.(type) {
	case *models.Object:
		objects = []*models.Object{root}
	case *models.Array:
		var ok bool
		if objects, ok = objectElements(root); !ok {
			return Result{}, errors.NewSchemaError("cannot infer a record from an array that does not hold only objects", nil)
		}
	default:
		return Result{}, errors.NewSchemaError("cannot infer a record from an empty document", errors.ErrEmptyInput)
	}

	// the root record keeps slot 0 while nested records are appended
	a.result.Records = append(a.result.Records, schema.Record{Name: rootName})
	rec := a.analyzeObjects(objects, rootName, "")
	a.result.Records[0] = rec

	if len(rec.Fields) == 0 {
		return Result{}, errors.NewSchemaError(fmt.Sprintf("record %s would have no fields", rootName), nil)
	}
	return a.result, nil
}

// analyzeObjects builds one record from the union of the keys in objects,
// appending records for nested containers as they are met. The caller places
// the returned record.
func (a *Analyzer) analyzeObjects(objects []*models.Object, name, path string) schema.Record {
	rec := schema.Record{Name: name}
	index := make(map[string]int)
	fieldNames := make(map[string]int)
	// fields seen only as null so far take the kind of the first non-null value
	nullOnly := make(map[string]bool)
	// nested objects are merged per key across all objects
	nested := make(map[string][]*models.Object)
	var nestedKeys []string
	addNested := func(key string, objs ...*models.Object) {
		if _, ok := nested[key]; !ok {
			nestedKeys = append(nestedKeys, key)
		}
		nested[key] = append(nested[key], objs...)
	}
	skipped := make(map[string]bool)

	for _, obj := range objects {
		obj.Range(func(key string, v models.Value) bool {
			if a.config.ShouldSkipField(key) {
				return true
			}

			switch v.Kind() {
			case models.KindObject:
				addNested(key, v.Object())
				return true
			case models.KindArray:
				if objs, ok := objectElements(v.Array()); ok && len(objs) > 0 {
					addNested(key, objs...)
				} else if !skipped[key] {
					skipped[key] = true
					a.skip(joinPath(path, key), "empty or scalar array")
				}
				return true
			}

			kind := a.fieldKind(key, v)
			if i, seen := index[key]; seen {
				switch {
				case v.IsNull():
				case nullOnly[key]:
					rec.Fields[i].Kind = kind
					nullOnly[key] = false
				default:
					rec.Fields[i].Kind = mergeKinds(rec.Fields[i].Kind, kind)
				}
				return true
			}

			nullOnly[key] = v.IsNull()
			index[key] = len(rec.Fields)
			rec.Fields = append(rec.Fields, schema.Field{
				Name: uniqueFieldName(fieldNames, a.getFieldName(key)),
				Key:  key,
				Kind: kind,
			})
			return true
		})
	}

	for _, key := range nestedKeys {
		a.addNested(key, joinPath(path, key), nested[key])
	}
	return rec
}

// addNested appends the record for objects found under key, named after the
// singular form of key.
func (a *Analyzer) addNested(key, path string, objects []*models.Object) {
	name := a.generateUniqueName(recordName(singularize(key)))
	slot := len(a.result.Records)
	a.result.Records = append(a.result.Records, schema.Record{Name: name})

	rec := a.analyzeObjects(objects, name, path)
	if len(rec.Fields) == 0 {
		a.result.Records = append(a.result.Records[:slot], a.result.Records[slot+1:]...)
		a.skip(path, "object without scalar members")
		return
	}
	a.result.Records[slot] = rec
}

func (a *Analyzer) skip(path, reason string) {
	a.result.Skipped = append(a.result.Skipped, fmt.Sprintf("%s (%s)", path, reason))
}

// fieldKind maps a stored scalar to a field kind. Configured mappings win.
func (a *Analyzer) fieldKind(key string, v models.Value) schema.Kind {
	if mapping, ok := a.config.FindKindMapping(key); ok {
		return mapping.Kind
	}
	switch v.Kind() {
	case models.KindNumber:
		if isIntegral(v.Num()) {
			return schema.KindInt
		}
		return schema.KindFloat
	case models.KindBool:
		return schema.KindBool
	}
	// strings and nulls
	return schema.KindString
}

// generateUniqueName ensures that the record name is unique by appending a number if needed.
func (a *Analyzer) generateUniqueName(baseName string) string {
	name := baseName
	count := a.recordNames[baseName]
	if count > 0 {
		name = fmt.Sprintf("%s%d", baseName, count)
	}
	a.recordNames[baseName] = count + 1
	return name
}

// getFieldName returns the Go field name for a JSON key using configuration
func (a *Analyzer) getFieldName(jsonKey string) string {
	name := a.config.GetFieldName(jsonKey)
	if !isIdentifier(name) {
		name = recordName(name)
	}
	return name
}

// mergeKinds widens a field seen with different kinds across array elements.
func mergeKinds(prev, next schema.Kind) schema.Kind {
	if prev == next {
		return prev
	}
	if (prev == schema.KindInt && next == schema.KindFloat) || (prev == schema.KindFloat && next == schema.KindInt) {
		return schema.KindFloat
	}
	return schema.KindString
}

func objectElements(arr *models.Array) ([]*models.Object, bool) {
	vals := arr.Values()
	objects := make([]*models.Object, 0, len(vals))
	for _, v := range vals {
		if v.Kind() != models.KindObject {
			return nil, false
		}
		objects = append(objects, v.Object())
	}
	return objects, true
}

func isIntegral(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64
}

// recordName converts a JSON key to a Go-style PascalCase identifier.
func recordName(key string) string {
	name := strcase.ToCamel(key)
	if name == "" || !isIdentifier(name) {
		var b strings.Builder
		for _, r := range name {
			if r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		name = b.String()
	}
	if name == "" {
		return "Field"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "F" + name
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func uniqueFieldName(used map[string]int, name string) string {
	count := used[name]
	used[name] = count + 1
	if count > 0 {
		return fmt.Sprintf("%s%d", name, count)
	}
	return name
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// singularize attempts to convert a plural name to a singular one.
var knownSingulars = map[string]string{
	"series":    "series",
	"status":    "status",
	"analysis":  "analysis",
	"species":   "species",
	"news":      "news",
	"children":  "child",
	"people":    "person",
	"data":      "data",
	"media":     "media",
	"addresses": "address",
}

func singularize(plural string) string {
	if singular, ok := knownSingulars[strings.ToLower(plural)]; ok {
		// Preserve original casing if the first letter was capitalized
		if plural != "" && strings.ToUpper(plural[:1]) == plural[:1] {
			return strings.ToUpper(singular[:1]) + singular[1:]
		}
		return singular
	}

	lowerPlural := strings.ToLower(plural)

	if strings.HasSuffix(lowerPlural, "ies") && len(lowerPlural) > 3 {
		return plural[:len(plural)-3] + "y"
	}

	// Avoid removing 's' from words like 'bus', 'class', 'status'
	if strings.HasSuffix(lowerPlural, "ss") ||
		strings.HasSuffix(lowerPlural, "us") ||
		strings.HasSuffix(lowerPlural, "is") {
		return plural
	}

	if strings.HasSuffix(lowerPlural, "s") && len(lowerPlural) > 1 {
		return plural[:len(plural)-1]
	}

	return plural
}
