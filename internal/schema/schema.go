// Package schema binds explicit record declarations to JSON objects
package schema

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/models"
)

// Kind is the scalar type of a record field
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
)

// Valid reports whether k is one of the supported field kinds
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindBool:
		return true
	}
	return false
}

// KeyStyle controls how field names become JSON keys when a field does not
// declare its key explicitly
type KeyStyle string

const (
	KeyStyleAsIs   KeyStyle = "as_is"
	KeyStylePascal KeyStyle = "pascal"
	KeyStyleCamel  KeyStyle = "camel"
	KeyStyleSnake  KeyStyle = "snake"
)

// ParseKeyStyle maps a configuration value to a KeyStyle
func ParseKeyStyle(s string) (KeyStyle, error) {
	switch style := KeyStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case "":
		return KeyStyleAsIs, nil
	case KeyStyleAsIs, KeyStylePascal, KeyStyleCamel, KeyStyleSnake:
		return style, nil
	}
	return "", fmt.Errorf("unknown key style '%s'", s)
}

// Apply converts a field name into a key
func (s KeyStyle) Apply(name string) string {
	switch s {
	case KeyStylePascal:
		return strcase.ToCamel(name)
	case KeyStyleCamel:
		return strcase.ToLowerCamel(name)
	case KeyStyleSnake:
		return strcase.ToSnake(name)
	default:
		return name
	}
}

// Field declares one member of a record.
//
// Values held for a field are string, int64, float64 or bool according to
// Kind. Default is converted to that type; when it is absent or cannot be
// converted the zero value is used.
type Field struct {
	Name    string `yaml:"name"`
	Key     string `yaml:"key,omitempty"`
	Kind    Kind   `yaml:"kind"`
	Default any    `yaml:"default,omitempty"`
}

// KeyName returns the JSON key the field is stored under
func (f Field) KeyName() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Name
}

// DefaultValue returns the field default converted to the field kind
func (f Field) DefaultValue() any {
	if v, ok := convert(f.Kind, f.Default); ok {
		return v
	}
	return zero(f.Kind)
}

// encode converts v into a JSON value, substituting the default when v is
// missing or of the wrong type
func (f Field) encode(v any) models.Value {
	c, ok := convert(f.Kind, v)
	if !ok {
		c = f.DefaultValue()
	}
	switch t := c.(type) {
	case string:
		return models.StringValue(t)
	case int64:
		return models.NumberValue(float64(t))
	case float64:
		return models.NumberValue(t)
	case bool:
		return models.BoolValue(t)
	}
	return models.NullValue()
}

// decode reads the field from obj through the accessor layer
func (f Field) decode(obj *models.Object) (any, error) {
	key := f.KeyName()
	switch f.Kind {
	case KindString:
		return obj.AsString(key, f.DefaultValue().(string))
	case KindInt:
		return obj.AsLong(key, f.DefaultValue().(int64))
	case KindFloat:
		return obj.AsDouble(key, f.DefaultValue().(float64))
	case KindBool:
		return obj.AsBool(key, f.DefaultValue().(bool))
	}
	return nil, fmt.Errorf("unsupported field kind '%s'", f.Kind)
}

// Record declares a named, ordered set of fields
type Record struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Values holds field values keyed by field name
type Values map[string]any

// String returns the named string value, or "" when absent
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the named int value, or 0 when absent
func (v Values) Int(name string) int64 {
	n, _ := v[name].(int64)
	return n
}

// Float returns the named float value, or 0 when absent
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Bool returns the named bool value, or false when absent
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Validate checks that the record is usable for binding
func (r Record) Validate() error {
	if r.Name == "" {
		return errors.NewSchemaError("record has no name", nil)
	}
	if len(r.Fields) == 0 {
		return errors.NewSchemaError(fmt.Sprintf("record %s declares no fields", r.Name), nil)
	}

	names := make(map[string]struct{}, len(r.Fields))
	keys := make(map[string]struct{}, len(r.Fields))
	for i, f := range r.Fields {
		if f.Name == "" {
			return errors.NewSchemaError(fmt.Sprintf("record %s field %d has no name", r.Name, i), nil)
		}
		if !f.Kind.Valid() {
			return errors.NewSchemaError(fmt.Sprintf("record %s field %s has unknown kind '%s'", r.Name, f.Name, f.Kind), nil)
		}
		if _, dup := names[f.Name]; dup {
			return errors.NewSchemaError(fmt.Sprintf("record %s declares field %s twice", r.Name, f.Name), nil)
		}
		if _, dup := keys[f.KeyName()]; dup {
			return errors.NewSchemaError(fmt.Sprintf("record %s maps two fields to key '%s'", r.Name, f.KeyName()), nil)
		}
		if f.Default != nil {
			if _, ok := convert(f.Kind, f.Default); !ok {
				return errors.NewSchemaError(fmt.Sprintf("record %s field %s default %v is not a %s", r.Name, f.Name, f.Default, f.Kind), nil)
			}
		}
		names[f.Name] = struct{}{}
		keys[f.KeyName()] = struct{}{}
	}
	return nil
}

// WithKeyStyle returns a copy of r whose fields without an explicit key are
// keyed by style applied to the field name
func (r Record) WithKeyStyle(style KeyStyle) Record {
	out := Record{Name: r.Name, Fields: make([]Field, len(r.Fields))}
	for i, f := range r.Fields {
		if f.Key == "" {
			f.Key = style.Apply(f.Name)
		}
		out.Fields[i] = f
	}
	return out
}

// Wrap builds an object holding every declared field in declaration order.
// Missing values and values of the wrong type are replaced by the field
// default.
func (r Record) Wrap(vals Values) *models.Object {
	obj := models.NewObject()
	for _, f := range r.Fields {
		obj.AddValue(f.KeyName(), f.encode(vals[f.Name]))
	}
	return obj
}

// Unwrap reads every declared field from obj. Keys the record does not declare
// are ignored.
func (r Record) Unwrap(obj *models.Object) (Values, error) {
	if obj == nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("record %s: nothing to read", r.Name), errors.ErrEmptyInput)
	}

	vals := make(Values, len(r.Fields))
	for _, f := range r.Fields {
		v, err := f.decode(obj)
		if err != nil {
			return nil, errors.NewSchemaError(fmt.Sprintf("record %s field %s", r.Name, f.Name), err)
		}
		vals[f.Name] = v
	}
	return vals, nil
}

// UnwrapContainer is Unwrap for a parsed document, which must be an object
func (r Record) UnwrapContainer(c models.Container) (Values, error) {
	obj, ok := c.(*models.Object)
	if !ok || obj == nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("record %s must be read from an object", r.Name), nil)
	}
	return r.Unwrap(obj)
}

func zero(k Kind) any {
	switch k {
	case KindString:
		return ""
	case KindInt:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindBool:
		return false
	}
	return nil
}

// convert coerces v to the Go type used for kind k
func convert(k Kind, v any) (any, bool) {
	switch k {
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindInt:
		return toInt64(v)
	case KindFloat:
		return toFloat64(v)
	case KindBool:
		b, ok := v.(bool)
		return b, ok
	}
	return nil, false
}

func toInt64(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return nil, false
}

func toFloat64(v any) (any, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i.(int64)), true
	}
	return nil, false
}
