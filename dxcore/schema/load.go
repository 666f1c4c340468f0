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

package schema

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/field"
	"dirpx.dev/dxprim/dxcore/model/prim"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

type loader struct {
	predicates map[string]rule.PredicateFunc
	types      map[string]semantic.Type
	logger     *slog.Logger
}

// Option configures Load.
type Option func(*loader)

// WithPredicate registers a Go predicate under the name documents use in
// "predicate".
func WithPredicate(name string, fn rule.PredicateFunc) Option {
	return func(l *loader) { l.predicates[name] = fn }
}

// WithType registers a semantic type under its Name, making it usable as a
// field type. Registered types shadow built-ins of the same name.
func WithType(t semantic.Type) Option {
	return func(l *loader) { l.types[t.Name()] = t }
}

// WithLogger sets the logger for load progress and for the types built
// from the document. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

// LoadFile reads and loads the schema document at path.
func LoadFile(path string, opts ...Option) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dxprim: read schema: %w", err)
	}
	return Load(data, opts...)
}

// Load decodes a YAML or JSON schema document and builds every type it
// declares, in order.
//
// A failing type does not stop the load: every failure is collected and
// returned together, and no registry is returned in that case. A type that
// refers to a failed type fails as well.
func Load(data []byte, opts ...Option) (*Registry, error) {
	l := &loader{
		predicates: make(map[string]rule.PredicateFunc),
		types:      make(map[string]semantic.Type),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, &errors.UnmarshalError{Type: "Document", Data: data, Reason: err.Error()}
	}
	if err := doc.Version.Validate(); err != nil {
		return nil, err
	}

	reg := newRegistry(doc.Version)
	c := rxmerr.NewCollector()

	for i, spec := range doc.Types {
		if _, dup := reg.Lookup(spec.Name); dup {
			c.Append(fmt.Errorf("types[%d] (%s): duplicate type", i, spec.Name))
			continue
		}
		t, err := l.build(spec, reg)
		if err != nil {
			c.Append(fmt.Errorf("types[%d] (%s): %w", i, spec.Name, err))
			continue
		}
		reg.add(t)
	}

	if err := c.Err(); err != nil {
		l.logger.Debug("schema rejected", slog.String("version", doc.Version.String()), slog.Any("error", err))
		return nil, err
	}

	l.logger.Debug("schema loaded",
		slog.String("version", doc.Version.String()),
		slog.Int("types", reg.Len()),
	)
	return reg, nil
}

func (l *loader) build(spec TypeSpec, reg *Registry) (*prim.Type, error) {
	opts := []prim.Option{prim.WithLogger(l.logger)}
	if spec.KeywordOnly {
		opts = append(opts, prim.KeywordOnly())
	}
	if spec.Equality != nil {
		opts = append(opts, prim.Equality(*spec.Equality))
	}
	if spec.Ordering != nil {
		opts = append(opts, prim.Ordering(*spec.Ordering))
	}
	if spec.Representation != nil {
		opts = append(opts, prim.Representation(*spec.Representation))
	}
	if spec.MatchSupport != nil {
		opts = append(opts, prim.MatchSupport(*spec.MatchSupport))
	}

	decl := prim.Declare(spec.Name, opts...)
	for _, f := range spec.Fields {
		typ, ok := l.resolve(f.Type, reg)
		if !ok {
			return nil, fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
		}
		r, err := l.rule(f, typ)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		decl.Field(f.Name, typ, r)
	}
	return decl.Build()
}

// resolve looks a field type up among the document's own types, then the
// registered ones, then the built-ins.
func (l *loader) resolve(name string, reg *Registry) (semantic.Type, bool) {
	if t, ok := reg.Lookup(name); ok {
		return t, true
	}
	if t, ok := l.types[name]; ok {
		return t, true
	}
	return semantic.Lookup(name)
}

func (l *loader) rule(f FieldSpec, typ semantic.Type) (*rule.Rule, error) {
	spec := f.Rules
	if spec == nil {
		return nil, nil
	}

	var opts []rule.Option
	if spec.CheckType != nil {
		opts = append(opts, rule.CheckType(*spec.CheckType))
	}
	if spec.LessThan != nil {
		opts = append(opts, rule.LessThan(*spec.LessThan))
	}
	if spec.GreaterThan != nil {
		opts = append(opts, rule.GreaterThan(*spec.GreaterThan))
	}
	if spec.MaxLength != nil {
		opts = append(opts, rule.MaxLength(*spec.MaxLength))
	}
	if spec.MinLength != nil {
		opts = append(opts, rule.MinLength(*spec.MinLength))
	}
	if spec.Pattern != nil {
		opts = append(opts, rule.Pattern(*spec.Pattern))
	}
	if spec.Predicate != "" {
		fn, ok := l.predicates[spec.Predicate]
		if !ok {
			return nil, fmt.Errorf("unknown predicate %q", spec.Predicate)
		}
		opts = append(opts, rule.Predicate(fn))
	}
	if spec.Expr != "" {
		opts = append(opts, rule.Expr(spec.Expr))
	}
	if spec.Field != nil {
		o, err := override(spec.Field, typ)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rule.Storage(o))
	}
	return rule.New(opts...), nil
}

func override(spec *OverrideSpec, typ semantic.Type) (*field.Override, error) {
	var opts []field.Option
	if spec.Repr != nil {
		opts = append(opts, field.Repr(*spec.Repr))
	}
	if spec.Compare != nil {
		opts = append(opts, field.Compare(*spec.Compare))
	}
	if spec.Hash != nil {
		opts = append(opts, field.Hash(*spec.Hash))
	}
	if spec.KeywordOnly {
		opts = append(opts, field.KeywordOnly())
	}
	if spec.HasDefault() {
		var raw any
		if err := spec.Default.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid default: %w", err)
		}
		v, err := semantic.Coerce(typ, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid default: %w", err)
		}
		opts = append(opts, defaultOption(v))
	}
	return field.New(opts...), nil
}

// defaultOption gives every instance its own copy of a decoded list or map
// default.
func defaultOption(v any) field.Option {
	switch x := v.(type) {
	case []any:
		return field.DefaultFunc(func() any { return slices.Clone(x) })
	case map[string]any:
		return field.DefaultFunc(func() any { return maps.Clone(x) })
	}
	return field.Default(v)
}
