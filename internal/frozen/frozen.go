package frozen

import (
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// Map is a read-only string-keyed mapping. The zero value is an empty map.
type Map struct {
	m map[string]any
}

// List is a read-only sequence. The zero value is an empty list.
type List struct {
	s []any
}

// Freeze returns a deep, read-only copy of v.
// Maps with string-like keys become Map, slices and arrays become List,
// and pointers are followed. Structs are deep-copied with their type kept,
// so their exported map, slice and pointer fields no longer alias v;
// unexported fields are copied shallowly. Every other value is stored as-is.
func Freeze(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case Map, List:
		return val
	case map[string]any:
		return freezeMap(val)
	case []any:
		l := List{s: make([]any, len(val))}
		for i, e := range val {
			l.s[i] = Freeze(e)
		}
		return l
	}
	return freezeReflect(reflect.ValueOf(v))
}

// FreezeMap is Freeze for the common case of a string-keyed map.
func FreezeMap(m map[string]any) Map {
	return freezeMap(m)
}

func freezeMap(m map[string]any) Map {
	out := Map{m: make(map[string]any, len(m))}
	for k, e := range m {
		out.m[k] = Freeze(e)
	}
	return out
}

func freezeReflect(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Freeze(rv.Elem().Interface())
	case reflect.Map:
		if rv.IsNil() {
			return Map{}
		}
		out := Map{m: make(map[string]any, rv.Len())}
		it := rv.MapRange()
		for it.Next() {
			out.m[keyString(it.Key())] = Freeze(it.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List{}
		}
		l := List{s: make([]any, rv.Len())}
		for i := range rv.Len() {
			l.s[i] = Freeze(rv.Index(i).Interface())
		}
		return l
	case reflect.Struct:
		return deepCopy(rv).Interface()
	default:
		return rv.Interface()
	}
}

// deepCopy returns a copy of rv of the same type that shares no maps,
// slices or pointers with it through exported fields.
func deepCopy(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}
		p := reflect.New(rv.Type().Elem())
		p.Elem().Set(deepCopy(rv.Elem()))
		return p
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(deepCopy(rv.Elem()))
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out.SetMapIndex(it.Key(), deepCopy(it.Value()))
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := range rv.Len() {
			out.Index(i).Set(deepCopy(rv.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := range rv.Len() {
			out.Index(i).Set(deepCopy(rv.Index(i)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(rv.Type()).Elem()
		out.Set(rv)
		for i := range rv.NumField() {
			if f := out.Field(i); f.CanSet() {
				f.Set(deepCopy(rv.Field(i)))
			}
		}
		return out
	default:
		return rv
	}
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// Thaw returns a deep mutable copy of v: Map becomes map[string]any and
// List becomes []any. Structs are copied; other values are returned
// unchanged.
func Thaw(v any) any {
	switch val := v.(type) {
	case Map:
		return val.Thaw()
	case List:
		return val.Thaw()
	default:
		return read(v)
	}
}

// read hands out stored values. Structs are copied again on every read so
// that a write through one reader is not seen by the next.
func read(v any) any {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Struct {
		return deepCopy(rv).Interface()
	}
	return v
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.m) }

// Get returns the frozen value stored under key.
func (m Map) Get(key string) (any, bool) {
	v, ok := m.m[key]
	return read(v), ok
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m.m[key]
	return ok
}

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// All iterates entries in key order.
func (m Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.Keys() {
			if !yield(k, read(m.m[k])) {
				return
			}
		}
	}
}

// Thaw returns a deep mutable copy of the map.
func (m Map) Thaw() map[string]any {
	out := make(map[string]any, len(m.m))
	for k, v := range m.m {
		out[k] = Thaw(v)
	}
	return out
}

// Len returns the number of elements.
func (l List) Len() int { return len(l.s) }

// At returns the element at index i. It panics if i is out of range.
func (l List) At(i int) any { return read(l.s[i]) }

// All iterates elements in order.
func (l List) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range l.s {
			if !yield(i, read(v)) {
				return
			}
		}
	}
}

// Thaw returns a deep mutable copy of the list.
func (l List) Thaw() []any {
	out := make([]any, len(l.s))
	for i, v := range l.s {
		out[i] = Thaw(v)
	}
	return out
}

// MarshalYAML renders the map as a plain mapping.
func (m Map) MarshalYAML() (any, error) { return m.Thaw(), nil }

// MarshalYAML renders the list as a plain sequence.
func (l List) MarshalYAML() (any, error) { return l.Thaw(), nil }

// MarshalJSON renders the map as a JSON object.
func (m Map) MarshalJSON() ([]byte, error) { return json.Marshal(m.Thaw()) }

// MarshalJSON renders the list as a JSON array.
func (l List) MarshalJSON() ([]byte, error) { return json.Marshal(l.Thaw()) }
