package models

// Equal reports whether two containers have the same shape, the same keys in
// the same order, and equal values throughout. A nil container, typed or
// not, only equals another nil container.
func Equal(a, b Container) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.IsArray() != b.IsArray() || a.Len() != b.Len() {
		return false
	}
	switch x := a.(type) {
	case *Object:
		y := b.(*Object)
		for i, k := range x.keys {
			if y.keys[i] != k || !EqualValues(x.vals[i], y.vals[i]) {
				return false
			}
		}
	case *Array:
		y := b.(*Array)
		for i := range x.vals {
			if !EqualValues(x.vals[i], y.vals[i]) {
				return false
			}
		}
	}
	return true
}

func isNil(c Container) bool {
	switch x := c.(type) {
	case nil:
		return true
	case *Object:
		return x == nil
	case *Array:
		return x == nil
	}
	return false
}

// EqualValues compares two values, descending into containers.
func EqualValues(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBool:
		return a.b == b.b
	case KindObject:
		return Equal(a.obj, b.obj)
	case KindArray:
		return Equal(a.arr, b.arr)
	}
	return true
}
