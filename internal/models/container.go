package models

// Container is a parsed JSON document node: exactly one of *Object or *Array.
// The shape of a container is fixed when it is created.
type Container interface {
	IsArray() bool
	Len() int
	container()
}

// Object is an insertion-ordered mapping of unique string keys to values.
type Object struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (*Object) container() {}

// IsArray is always false for objects.
func (*Object) IsArray() bool { return false }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// AddValue inserts v under key, or overwrites the existing value in place so
// the key keeps its original position. An empty key or an invalid value is
// ignored.
func (o *Object) AddValue(key string, v Value) {
	if key == "" || !v.IsValid() {
		return
	}
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// SetValue overwrites the value of an existing key and does nothing when the
// key is not present.
func (o *Object) SetValue(key string, v Value) {
	if !v.IsValid() {
		return
	}
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
	}
}

// AddObject attaches a child container under key.
func (o *Object) AddObject(key string, child Container) {
	o.AddValue(key, ContainerValue(child))
}

// HasKey reports whether key is present, including keys holding null.
func (o *Object) HasKey(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Range calls fn for each member in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// Array is an ordered list of values.
type Array struct {
	vals []Value
}

// NewArray returns an empty array.
func NewArray() *Array {
	return &Array{}
}

func (*Array) container() {}

// IsArray is always true for arrays.
func (*Array) IsArray() bool { return true }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.vals) }

// AddValue appends v. An invalid value is ignored.
func (a *Array) AddValue(v Value) {
	if !v.IsValid() {
		return
	}
	a.vals = append(a.vals, v)
}

// AddObject appends a child container.
func (a *Array) AddObject(child Container) {
	a.AddValue(ContainerValue(child))
}

// At returns the i'th element, or the invalid Value when i is out of range.
func (a *Array) At(i int) Value {
	if i < 0 || i >= len(a.vals) {
		return Value{}
	}
	return a.vals[i]
}

// Values returns a copy of the elements in order.
func (a *Array) Values() []Value {
	vals := make([]Value, len(a.vals))
	copy(vals, a.vals)
	return vals
}

// New creates an empty container of the requested shape.
func New(isArray bool) Container {
	if isArray {
		return NewArray()
	}
	return NewObject()
}
