/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package semantic provides the "is instance of declared type" predicate the
// type synthesizer relies on for its type checks.
//
// A semantic type is the declared type of a field: a name used in messages
// and a predicate deciding whether a runtime value belongs to it. The
// built-in types classify values by their reflect.Kind, so named types such
// as `type Cents int64` are accepted wherever Int is declared, the same way
// a subclass is an instance of its base.
//
// Containers are only ever inspected as containers: List accepts []int and
// []string alike, and nothing in this package looks at element types.
package semantic

import (
	"reflect"
	"unicode/utf8"
)

// Type is a declared semantic type.
//
// Implementations MUST be safe for concurrent use; compiled primitives call
// Accepts from any goroutine constructing an instance.
type Type interface {
	// Name returns the name used in declarations and error messages.
	Name() string

	// Accepts reports whether v is an instance of the type.
	Accepts(v any) bool
}

// Coercer is implemented by semantic types that can convert decoded JSON or
// YAML values into their canonical Go representation, for example a float64
// 3 into the int 3 for Int.
//
// Coerce returns v unchanged when it has no conversion to offer; the type
// check that follows decides whether the value is acceptable.
type Coercer interface {
	Coerce(v any) (any, error)
}

type kindType struct {
	name   string
	kinds  []reflect.Kind
	coerce func(v any) any
}

func (k kindType) Name() string { return k.name }

func (k kindType) Accepts(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	for _, want := range k.kinds {
		if kind == want {
			return true
		}
	}
	return false
}

func (k kindType) Coerce(v any) (any, error) {
	v = normalize(v)
	if k.coerce == nil {
		return v, nil
	}
	return k.coerce(v), nil
}

var (
	intKinds   = []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr}
	floatKinds = []reflect.Kind{reflect.Float32, reflect.Float64}
)

// Built-in semantic types.
var (
	// Int accepts signed and unsigned integers of any width.
	Int Type = kindType{name: "int", kinds: intKinds, coerce: coerceInt}

	// Float accepts float32 and float64 values.
	Float Type = kindType{name: "float", kinds: floatKinds, coerce: coerceFloat}

	// Number accepts anything Int or Float accepts.
	Number Type = kindType{name: "number", kinds: append(append([]reflect.Kind{}, intKinds...), floatKinds...)}

	// String accepts string values.
	String Type = kindType{name: "string", kinds: []reflect.Kind{reflect.String}}

	// Bool accepts boolean values.
	Bool Type = kindType{name: "bool", kinds: []reflect.Kind{reflect.Bool}}

	// List accepts slices and arrays, without looking at their elements.
	List Type = kindType{name: "list", kinds: []reflect.Kind{reflect.Slice, reflect.Array}}

	// Map accepts maps, without looking at their keys or values.
	Map Type = kindType{name: "map", kinds: []reflect.Kind{reflect.Map}}

	// Any accepts every value, including nil.
	Any Type = anyType{}
)

type anyType struct{}

func (anyType) Name() string     { return "any" }
func (anyType) Accepts(any) bool { return true }

type reflectType struct {
	t reflect.Type
}

// Of returns the semantic type of the Go type T.
//
// A value is accepted when its dynamic type is T or, when T is an interface,
// when it implements T.
func Of[T any]() Type {
	return reflectType{t: reflect.TypeFor[T]()}
}

func (r reflectType) Name() string { return r.t.String() }

func (r reflectType) Accepts(v any) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if r.t.Kind() == reflect.Interface {
		return vt.Implements(r.t)
	}
	return vt == r.t
}

type funcType struct {
	name string
	fn   func(any) bool
}

// Func returns a semantic type backed by an arbitrary predicate.
func Func(name string, accepts func(v any) bool) Type {
	return funcType{name: name, fn: accepts}
}

func (f funcType) Name() string       { return f.name }
func (f funcType) Accepts(v any) bool { return f.fn(v) }

// TypeName returns the runtime type name of v as used in mismatch messages.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Size returns the size of v and whether v is sized at all.
//
// Strings are measured in Unicode code points. Slices, arrays, maps and
// channels report len. Any other value implementing `Len() int` reports its
// Len.
func Size(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if l, ok := v.(interface{ Len() int }); ok {
		return l.Len(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	default:
		return 0, false
	}
}

var builtins = map[string]Type{
	"int":     Int,
	"integer": Int,
	"float":   Float,
	"number":  Number,
	"string":  String,
	"str":     String,
	"bool":    Bool,
	"boolean": Bool,
	"list":    List,
	"array":   List,
	"map":     Map,
	"object":  Map,
	"any":     Any,
}

// Lookup returns the built-in semantic type registered under name.
func Lookup(name string) (Type, bool) {
	t, ok := builtins[name]
	return t, ok
}
