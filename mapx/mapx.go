// Package mapx resolves bracketed field names such as "user[wallet][address]"
// against decoded request data (map[string]any, []any, primitives).
//
// Lookup walks the bracket segments from the last one to the first, which is
// the order existing login clients rely on: for "a[b][c]" the key "c"
// is looked up in the root first, then "b" inside that value, then "a".
// The first non-container value found is the result, even if segments remain.
package mapx

import (
	"reflect"
	"strconv"
	"strings"
)

// Path is a parsed field name. The zero value has no segments and never
// resolves.
type Path struct {
	field    string
	segments []string
}

// ParsePath drops every ']' and splits on '['. "a[b][c]" yields a, b, c.
func ParsePath(field string) Path {
	return Path{
		field:    field,
		segments: strings.Split(strings.ReplaceAll(field, "]", ""), "["),
	}
}

func (p Path) String() string { return p.field }

// Segments returns a copy of the parsed segments in field order.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Lookup resolves p against root. The boolean is false when root is absent,
// when any visited segment is missing, or when the traversal ends on a
// container instead of a scalar.
func (p Path) Lookup(root any) (any, bool) {
	if root == nil {
		return nil, false
	}
	node := root
	for i := len(p.segments) - 1; i >= 0; i-- {
		v, ok := child(node, p.segments[i])
		if !ok {
			return nil, false
		}
		if !isContainer(v) {
			return v, true
		}
		node = v
	}
	return nil, false
}

// Lookup is shorthand for ParsePath(field).Lookup(root).
func Lookup(root any, field string) (any, bool) {
	return ParsePath(field).Lookup(root)
}

func child(node any, key string) (any, bool) {
	rv := indirect(reflect.ValueOf(node))
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	}
	return nil, false
}

// isContainer reports object-like values: maps, slices and null.
func isContainer(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}
