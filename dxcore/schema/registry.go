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
	"fmt"
	"slices"

	"dirpx.dev/dxprim/dxcore/model/prim"
	"dirpx.dev/dxprim/dxcore/model/rule"
)

// Registry holds the types built from one schema document. It is immutable
// once returned by Load and safe for concurrent use.
type Registry struct {
	version Version
	types   map[string]*prim.Type
	order   []string
}

func newRegistry(v Version) *Registry {
	return &Registry{version: v, types: make(map[string]*prim.Type)}
}

func (r *Registry) add(t *prim.Type) {
	r.types[t.Name()] = t
	r.order = append(r.order, t.Name())
}

// Version returns the format version of the document.
func (r *Registry) Version() Version { return r.version }

// Len returns the number of types.
func (r *Registry) Len() int { return len(r.order) }

// Names returns the type names in document order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// Lookup returns the named type.
func (r *Registry) Lookup(name string) (*prim.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// MustLookup is like Lookup but panics when the type does not exist.
func (r *Registry) MustLookup(name string) *prim.Type {
	t, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("dxprim: schema has no type %q", name))
	}
	return t
}

// TypeDescription summarizes a built type for documentation and debugging.
type TypeDescription struct {
	Name   string             `yaml:"name" json:"name"`
	Fields []FieldDescription `yaml:"fields" json:"fields"`
}

// FieldDescription summarizes one field and the checks compiled for it.
type FieldDescription struct {
	Name        string      `yaml:"name" json:"name"`
	Type        string      `yaml:"type" json:"type"`
	KeywordOnly bool        `yaml:"keyword_only,omitempty" json:"keyword_only,omitempty"`
	Default     bool        `yaml:"has_default,omitempty" json:"has_default,omitempty"`
	Checks      []rule.Kind `yaml:"checks,omitempty" json:"checks,omitempty"`
}

// Describe summarizes every type in document order.
func (r *Registry) Describe() []TypeDescription {
	out := make([]TypeDescription, 0, len(r.order))
	for _, name := range r.order {
		t := r.types[name]
		d := TypeDescription{Name: name}
		for _, f := range t.Fields() {
			d.Fields = append(d.Fields, FieldDescription{
				Name:        f.Name,
				Type:        f.Type.Name(),
				KeywordOnly: f.KeywordOnly,
				Default:     f.HasDefault(),
				Checks:      f.Checks,
			})
		}
		out = append(out, d)
	}
	return out
}
