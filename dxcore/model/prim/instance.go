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

package prim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"gopkg.in/yaml.v3"
)

// Instance is an immutable value of a declared Type.
//
// Slice and map field values are copied when the instance is constructed
// and again when they are read, so callers never share that storage with
// the instance. The copy is shallow: elements that are themselves slices,
// maps or pointers are still shared.
//
// Instances are only produced by the constructors of a Type, after every
// compiled check has passed. The zero Instance belongs to no type: it fails
// Validate and every operation that needs field values.
type Instance struct {
	typ    *Type
	values []any
}

var (
	_ model.Model                 = (*Instance)(nil)
	_ model.Comparable[*Instance] = (*Instance)(nil)
	_ model.Ordered[*Instance]    = (*Instance)(nil)
	_ model.Hashable              = (*Instance)(nil)
)

func (i *Instance) constructed() bool {
	return i != nil && i.typ != nil
}

func (i *Instance) unconstructed() error {
	return fmt.Errorf("dxprim: %w", errors.ErrUnconstructed)
}

// Type returns the type the instance belongs to, or nil for the zero
// Instance.
func (i *Instance) Type() *Type {
	if i == nil {
		return nil
	}
	return i.typ
}

// Get returns the value of the named field.
func (i *Instance) Get(name string) (any, bool) {
	if !i.constructed() {
		return nil, false
	}
	idx, ok := i.typ.index[name]
	if !ok {
		return nil, false
	}
	return detach(i.values[idx]), true
}

// Values returns the field values in declaration order.
func (i *Instance) Values() []any {
	if !i.constructed() {
		return nil
	}
	out := make([]any, len(i.values))
	for idx, v := range i.values {
		out[idx] = detach(v)
	}
	return out
}

// AsMap returns the field values keyed by field name.
func (i *Instance) AsMap() map[string]any {
	if !i.constructed() {
		return nil
	}
	m := make(map[string]any, len(i.values))
	for idx, f := range i.typ.fields {
		m[f.Name] = detach(i.values[idx])
	}
	return m
}

// Set always fails: instances cannot change after construction.
func (i *Instance) Set(name string, _ any) error {
	return &errors.FrozenError{Type: i.TypeName(), Field: name}
}

// With returns a new instance with the given fields replaced and every
// other field copied. The new instance goes through the full constructor,
// so it is validated like any other.
func (i *Instance) With(changes map[string]any) (*Instance, error) {
	if !i.constructed() {
		return nil, i.unconstructed()
	}
	kwargs := i.AsMap()
	for name, v := range changes {
		if _, ok := i.typ.index[name]; !ok {
			return nil, &errors.ArgumentError{Type: i.typ.name, Reason: fmt.Sprintf("got an unexpected keyword argument %q", name)}
		}
		kwargs[name] = v
	}
	return i.typ.Construct(nil, kwargs)
}

// Destructure returns the values of the positional fields, in the order
// named by Type.MatchArgs.
func (i *Instance) Destructure() ([]any, error) {
	if !i.constructed() {
		return nil, i.unconstructed()
	}
	if !i.typ.opts.matchSupport {
		return nil, fmt.Errorf("%w: %s does not support destructuring", errors.ErrNotSupported, i.typ.name)
	}
	var out []any
	for idx, f := range i.typ.fields {
		if !f.KeywordOnly {
			out = append(out, detach(i.values[idx]))
		}
	}
	return out, nil
}

// Validate returns nil for every constructed instance: the checks ran when
// it was built and its fields cannot change since. The zero Instance fails.
func (i *Instance) Validate() error {
	if !i.constructed() {
		return i.unconstructed()
	}
	return nil
}

// IsZero reports whether the instance was never constructed.
func (i *Instance) IsZero() bool {
	return !i.constructed()
}

// TypeName returns the name of the instance's type.
func (i *Instance) TypeName() string {
	if !i.constructed() {
		return "Instance"
	}
	return i.typ.name
}

// String returns the structural form, for example "D(even=2, keyword=0)".
// Fields declared with Repr(false) are left out. When representation is
// disabled for the type, String returns an identity form instead.
func (i *Instance) String() string {
	if !i.constructed() {
		return "<unconstructed>"
	}
	if !i.typ.opts.representation {
		return fmt.Sprintf("<%s object at %p>", i.typ.name, i)
	}

	var b strings.Builder
	b.WriteString(i.typ.name)
	b.WriteByte('(')
	first := true
	for idx, f := range i.typ.fields {
		if !f.Repr {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(formatValue(i.values[idx]))
	}
	b.WriteByte(')')
	return b.String()
}

// Redacted returns the same form as String. Fields that must stay out of
// logs are declared with Repr(false) and are already absent from it.
func (i *Instance) Redacted() string {
	return i.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case *Instance:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	return fmt.Sprintf("%v", v)
}

// MarshalJSON encodes the instance as a JSON object with one member per
// field, in declaration order.
func (i *Instance) MarshalJSON() ([]byte, error) {
	if !i.constructed() {
		return nil, i.unconstructed()
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, f := range i.typ.fields {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(i.values[idx])
		if err != nil {
			return nil, fmt.Errorf("dxprim: cannot marshal %s.%s: %w", i.typ.name, f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the instance as a YAML mapping with one entry per
// field, in declaration order.
func (i *Instance) MarshalYAML() (any, error) {
	if !i.constructed() {
		return nil, i.unconstructed()
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for idx, f := range i.typ.fields {
		var val yaml.Node
		if err := val.Encode(i.values[idx]); err != nil {
			return nil, fmt.Errorf("dxprim: cannot marshal %s.%s: %w", i.typ.name, f.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
			&val,
		)
	}
	return node, nil
}

// Get returns the named field of i as a T.
func Get[T any](i *Instance, name string) (T, error) {
	var zero T
	v, ok := i.Get(name)
	if !ok {
		return zero, &errors.ArgumentError{Type: i.TypeName(), Reason: fmt.Sprintf("has no field %q", name)}
	}
	t, ok := v.(T)
	if !ok {
		return zero, &errors.TypeMismatchError{
			Type:     i.TypeName(),
			Field:    name,
			Expected: reflect.TypeFor[T]().String(),
			Actual:   semantic.TypeName(v),
		}
	}
	return t, nil
}

// detach returns a shallow copy of slice and map values. Anything else,
// including nil slices and maps, is returned unchanged.
func detach(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		c := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(c, rv)
		return c.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), iter.Value())
		}
		return c.Interface()
	}
	return v
}
