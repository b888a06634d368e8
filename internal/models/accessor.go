package models

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsonobj/internal/errors"
)

// The accessors below read a key with a caller-supplied default. A missing key
// or a null value yields the default. Scalars are coerced between string,
// number and boolean; a string that does not parse as the requested kind also
// yields the default. Only a container stored where a scalar is requested is
// an error.

// AsString reads key as a string. Numbers are rendered in their shortest form
// and booleans as true or false.
func (o *Object) AsString(key, def string) (string, error) {
	v, ok := o.Get(key)
	if !ok {
		return def, nil
	}
	switch v.kind {
	case KindNull:
		return def, nil
	case KindString:
		return v.str, nil
	case KindNumber:
		return FormatNumber(v.num), nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	}
	return def, errors.NewCastError(key, v.kind.String(), "string")
}

// AsInt reads key as an int, truncating stored numbers toward zero.
func (o *Object) AsInt(key string, def int) (int, error) {
	v, ok := o.Get(key)
	if !ok {
		return def, nil
	}
	switch v.kind {
	case KindNull:
		return def, nil
	case KindString:
		n, err := strconv.Atoi(strings.TrimSpace(v.str))
		if err != nil {
			return def, nil
		}
		return n, nil
	case KindNumber:
		return int(v.num), nil
	case KindBool:
		return boolToInt(v.b), nil
	}
	return def, errors.NewCastError(key, v.kind.String(), "int")
}

// AsLong reads key as an int64, truncating stored numbers toward zero.
func (o *Object) AsLong(key string, def int64) (int64, error) {
	v, ok := o.Get(key)
	if !ok {
		return def, nil
	}
	switch v.kind {
	case KindNull:
		return def, nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		if err != nil {
			return def, nil
		}
		return n, nil
	case KindNumber:
		return int64(v.num), nil
	case KindBool:
		return int64(boolToInt(v.b)), nil
	}
	return def, errors.NewCastError(key, v.kind.String(), "long")
}

// AsDouble reads key as a float64.
func (o *Object) AsDouble(key string, def float64) (float64, error) {
	v, ok := o.Get(key)
	if !ok {
		return def, nil
	}
	switch v.kind {
	case KindNull:
		return def, nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return def, nil
		}
		return f, nil
	case KindNumber:
		return v.num, nil
	case KindBool:
		return float64(boolToInt(v.b)), nil
	}
	return def, errors.NewCastError(key, v.kind.String(), "double")
}

// AsBool reads key as a bool. Strings match true and false without regard to
// case; numbers are true when their integer part is non-zero.
func (o *Object) AsBool(key string, def bool) (bool, error) {
	v, ok := o.Get(key)
	if !ok {
		return def, nil
	}
	switch v.kind {
	case KindNull:
		return def, nil
	case KindString:
		s := strings.TrimSpace(v.str)
		switch {
		case strings.EqualFold(s, "true"):
			return true, nil
		case strings.EqualFold(s, "false"):
			return false, nil
		}
		return def, nil
	case KindNumber:
		return int64(v.num) != 0, nil
	case KindBool:
		return v.b, nil
	}
	return def, errors.NewCastError(key, v.kind.String(), "bool")
}

// AsObject returns the child container stored under key, or nil when the key
// is missing or holds a scalar.
func (o *Object) AsObject(key string) Container {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	return v.Container()
}

// AsArray returns the array stored under key, or nil.
func (o *Object) AsArray(key string) *Array {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	return v.arr
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
