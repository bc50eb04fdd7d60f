package typed

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Type describes the expected runtime shape of a field value. Implementations
// are pure descriptors; acceptance never mutates the value.
type Type interface {
	// Name is the human-readable type name used in issue hints.
	Name() string
	// Accepts reports whether v conforms to the descriptor.
	Accepts(v any) bool
}

// String returns the descriptor for string values.
func String() Type { return stringType{} }

// Bool returns the descriptor for boolean values.
func Bool() Type { return boolType{} }

// Int returns the descriptor for integer values. All Go integer kinds are
// accepted, as is an integral json.Number coming off the JSON bridge.
func Int() Type { return intType{} }

// Float returns the descriptor for floating-point values. json.Number is
// accepted so JSON-sourced numbers survive without coercion.
func Float() Type { return floatType{} }

// Any returns the descriptor accepting every value.
func Any() Type { return anyType{} }

// SliceOf returns the descriptor for sequences whose elements all conform to
// elem.
func SliceOf(elem Type) Type { return sliceType{elem: elem} }

// MapOf returns the descriptor for string-keyed mappings whose values all
// conform to elem.
func MapOf(elem Type) Type { return mapType{elem: elem} }

// OneOf returns the union of the given descriptors. A value is accepted when
// any member accepts it.
func OneOf(types ...Type) Type { return unionType{types: types} }

// Object returns the descriptor for a nested validated class. A constructed
// *Instance of reg conforms directly; the validator additionally converts a
// raw map[string]any by recursive construction.
func Object(reg *Registry) Type { return objectType{reg: reg} }

// Ref returns a descriptor that resolves the named class through cache on
// first use. It allows recursive and forward-referencing declarations.
func Ref(cache *RegistryCache, name string) Type { return refType{cache: cache, name: name} }

// classType is implemented by descriptors backed by a validated class. The
// validator uses it to recurse into nested mappings.
type classType interface {
	registry() (*Registry, error)
}

type stringType struct{}

func (stringType) Name() string { return "string" }
func (stringType) Accepts(v any) bool {
	_, ok := v.(string)
	return ok
}

type boolType struct{}

func (boolType) Name() string { return "bool" }
func (boolType) Accepts(v any) bool {
	_, ok := v.(bool)
	return ok
}

type intType struct{}

func (intType) Name() string { return "int" }
func (intType) Accepts(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	default:
		return false
	}
}

type floatType struct{}

func (floatType) Name() string { return "float" }
func (floatType) Accepts(v any) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, err := strconv.ParseFloat(string(n), 64)
		return err == nil
	default:
		return false
	}
}

type anyType struct{}

func (anyType) Name() string       { return "any" }
func (anyType) Accepts(_ any) bool { return true }

type sliceType struct{ elem Type }

func (t sliceType) Name() string { return "[]" + t.elem.Name() }
func (t sliceType) Accepts(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if !t.elem.Accepts(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

type mapType struct{ elem Type }

func (t mapType) Name() string { return "map[string]" + t.elem.Name() }
func (t mapType) Accepts(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return false
	}
	it := rv.MapRange()
	for it.Next() {
		if !t.elem.Accepts(it.Value().Interface()) {
			return false
		}
	}
	return true
}

type unionType struct{ types []Type }

func (t unionType) Name() string {
	names := make([]string, 0, len(t.types))
	for _, m := range t.types {
		names = append(names, m.Name())
	}
	return strings.Join(names, "|")
}

func (t unionType) Accepts(v any) bool {
	for _, m := range t.types {
		if m.Accepts(v) {
			return true
		}
	}
	return false
}

type objectType struct{ reg *Registry }

func (t objectType) Name() string {
	if t.reg == nil {
		return "object"
	}
	return t.reg.name
}

func (t objectType) Accepts(v any) bool {
	inst, ok := v.(*Instance)
	return ok && inst.reg == t.reg
}

func (t objectType) registry() (*Registry, error) {
	if t.reg == nil {
		return nil, Issues{Issue{Path: "/", Code: CodeDeclaration, Message: "nil registry in Object type"}}
	}
	return t.reg, nil
}

type refType struct {
	cache *RegistryCache
	name  string
}

func (t refType) Name() string { return t.name }

func (t refType) Accepts(v any) bool {
	reg, err := t.registry()
	if err != nil {
		return false
	}
	inst, ok := v.(*Instance)
	return ok && inst.reg == reg
}

func (t refType) registry() (*Registry, error) {
	cache := t.cache
	if cache == nil {
		cache = DefaultCache
	}
	reg, ok := cache.Lookup(t.name)
	if !ok {
		return nil, Issues{Issue{Path: "/", Code: CodeDeclaration, Message: "unresolved class reference", Hint: t.name}}
	}
	return reg, nil
}

// valueEqual compares a candidate against a declared choice. Numeric values
// compare by value across integer kinds, floats, and json.Number so a choice
// declared as 23 matches the json.Number("23") the JSON bridge produces.
func valueEqual(a, b any) bool {
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
