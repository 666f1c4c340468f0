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
	"maps"
	"slices"
	"strings"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"gopkg.in/yaml.v3"
)

// FieldInfo describes one field of a built Type.
type FieldInfo struct {
	// Name is the field name used by keyword arguments, Get and the string form.
	Name string

	// Type is the declared semantic type.
	Type semantic.Type

	// Repr reports whether the field appears in the string form.
	Repr bool

	// Compare reports whether the field takes part in equality and ordering.
	Compare bool

	// Hash reports whether the field takes part in hashing.
	Hash bool

	// KeywordOnly reports whether the field can only be passed by name.
	KeywordOnly bool

	// Checks lists the checks compiled for the field, in execution order.
	Checks []rule.Kind

	hasDefault bool
	def        any
	factory    func() any
}

// HasDefault reports whether the constructor may omit the field.
func (f FieldInfo) HasDefault() bool { return f.hasDefault || f.factory != nil }

// Default returns the value used when the field is omitted, calling the
// default factory when there is one.
func (f FieldInfo) Default() (any, bool) {
	if f.factory != nil {
		return f.factory(), true
	}
	return f.def, f.hasDefault
}

// Type is a built domain primitive type. It is immutable and safe for
// concurrent use.
//
// A *Type is itself a semantic.Type accepting its own instances, so a
// primitive can be declared as the type of another primitive's field.
type Type struct {
	name   string
	fields []FieldInfo
	index  map[string]int
	steps  []step
	opts   options
}

var (
	_ semantic.Type    = (*Type)(nil)
	_ semantic.Coercer = (*Type)(nil)
)

func newType(name string, fields []FieldInfo, steps []step, opts options) *Type {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &Type{name: name, fields: fields, index: index, steps: steps, opts: opts}
}

// Name returns the declared type name.
func (t *Type) Name() string { return t.name }

// String returns the declared type name.
func (t *Type) String() string { return t.name }

// NumField returns the number of fields.
func (t *Type) NumField() int { return len(t.fields) }

// Fields returns the field descriptors in declaration order.
func (t *Type) Fields() []FieldInfo { return slices.Clone(t.fields) }

// Field returns the descriptor of the named field.
func (t *Type) Field(name string) (FieldInfo, bool) {
	i, ok := t.index[name]
	if !ok {
		return FieldInfo{}, false
	}
	return t.fields[i], true
}

// Checks returns the compiled validation routine in execution order.
func (t *Type) Checks() []Check {
	out := make([]Check, len(t.steps))
	for i, s := range t.steps {
		out[i] = Check{Field: s.field, Kind: s.kind}
	}
	return out
}

// KeywordOnly reports whether every field must be passed by name.
func (t *Type) KeywordOnly() bool { return t.opts.keywordOnly }

// Equality reports whether structural equality is enabled.
func (t *Type) Equality() bool { return t.opts.equality }

// Ordering reports whether the derived order is enabled.
func (t *Type) Ordering() bool { return t.opts.ordering }

// Representation reports whether the structural string form is enabled.
func (t *Type) Representation() bool { return t.opts.representation }

// MatchSupport reports whether positional destructuring is enabled.
func (t *Type) MatchSupport() bool { return t.opts.matchSupport }

// MatchArgs returns the names of the positional fields, in the order
// Destructure returns their values.
func (t *Type) MatchArgs() ([]string, error) {
	if !t.opts.matchSupport {
		return nil, fmt.Errorf("%w: %s does not support destructuring", errors.ErrNotSupported, t.name)
	}
	return t.positional(), nil
}

func (t *Type) positional() []string {
	var names []string
	for _, f := range t.fields {
		if !f.KeywordOnly {
			names = append(names, f.Name)
		}
	}
	return names
}

// Accepts reports whether v is an instance of t.
func (t *Type) Accepts(v any) bool {
	i, ok := v.(*Instance)
	return ok && i != nil && i.typ == t
}

// Coerce builds an instance of t from a decoded object. Instances and any
// other value are returned unchanged for the type check to judge.
func (t *Type) Coerce(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	return t.fromMap(m)
}

// New constructs an instance from positional arguments.
func (t *Type) New(args ...any) (*Instance, error) {
	return t.Construct(args, nil)
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(args ...any) *Instance {
	i, err := t.New(args...)
	if err != nil {
		panic(err)
	}
	return i
}

// Construct builds an instance from positional and keyword arguments.
//
// Positional arguments fill the fields that are not keyword-only, in
// declaration order. Keyword arguments fill any field by name. Omitted
// fields take their default; default factories run once per construction.
// The validation routine then runs exactly once, and the first failed check
// is returned. No instance is returned on error.
func (t *Type) Construct(args []any, kwargs map[string]any) (*Instance, error) {
	positional := t.positional()
	if len(args) > len(positional) {
		return nil, &errors.ArgumentError{
			Type:   t.name,
			Reason: fmt.Sprintf("takes %d positional arguments but %d were given", len(positional), len(args)),
		}
	}

	values := make([]any, len(t.fields))
	set := make([]bool, len(t.fields))
	for i, arg := range args {
		idx := t.index[positional[i]]
		values[idx] = arg
		set[idx] = true
	}

	for _, name := range slices.Sorted(maps.Keys(kwargs)) {
		idx, ok := t.index[name]
		if !ok {
			return nil, &errors.ArgumentError{Type: t.name, Reason: fmt.Sprintf("got an unexpected keyword argument %q", name)}
		}
		if set[idx] {
			return nil, &errors.ArgumentError{Type: t.name, Reason: fmt.Sprintf("got multiple values for argument %q", name)}
		}
		values[idx] = kwargs[name]
		set[idx] = true
	}

	var missing []string
	for idx, f := range t.fields {
		if set[idx] {
			continue
		}
		v, ok := f.Default()
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", f.Name))
			continue
		}
		values[idx] = v
	}
	if len(missing) > 0 {
		return nil, &errors.ArgumentError{
			Type:   t.name,
			Reason: "missing required arguments: " + strings.Join(missing, ", "),
		}
	}

	for idx, v := range values {
		values[idx] = detach(v)
	}
	if err := t.validate(values); err != nil {
		return nil, err
	}
	return &Instance{typ: t, values: values}, nil
}

func (t *Type) validate(values []any) error {
	for _, s := range t.steps {
		if err := s.check(values[s.index]); err != nil {
			return err
		}
	}
	return nil
}

// FromJSON decodes a JSON object and constructs an instance from its
// members, passed as keyword arguments. Numbers are converted to the
// declared field type where that is lossless, so 3 decodes to an int for an
// Int field and to a float64 for a Float field.
func (t *Type) FromJSON(data []byte) (*Instance, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &errors.UnmarshalError{Type: t.name, Data: data, Reason: err.Error()}
	}
	if m == nil {
		return nil, &errors.UnmarshalError{Type: t.name, Data: data, Reason: "expected a JSON object"}
	}
	return t.fromMap(m)
}

// FromYAML decodes a YAML mapping and constructs an instance from it, the
// same way as FromJSON.
func (t *Type) FromYAML(data []byte) (*Instance, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &errors.UnmarshalError{Type: t.name, Data: data, Reason: err.Error()}
	}
	if m == nil {
		return nil, &errors.UnmarshalError{Type: t.name, Data: data, Reason: "expected a YAML mapping"}
	}
	return t.fromMap(m)
}

func (t *Type) fromMap(m map[string]any) (*Instance, error) {
	kwargs := make(map[string]any, len(m))
	for name, v := range m {
		f, ok := t.Field(name)
		if !ok {
			kwargs[name] = v
			continue
		}
		coerced, err := semantic.Coerce(f.Type, v)
		if err != nil {
			return nil, err
		}
		kwargs[name] = coerced
	}

	return t.Construct(nil, kwargs)
}
