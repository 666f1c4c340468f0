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

// Package field provides per-field storage overrides for declared
// primitives: whether a field shows up in the string form, whether it takes
// part in equality, ordering and hashing, whether it has a default, and
// whether it can only be passed by name.
//
// An Override is opaque to the rule compiler. The synthesizer only asks it
// questions when finalizing a type; it never changes what gets validated.
package field

import "errors"

// Override configures how one field behaves at the record level.
//
// The zero value is not useful; build overrides with New. An Override is
// immutable once built and may be shared between declarations.
type Override struct {
	repr       bool
	compare    bool
	hash       *bool
	kwOnly     bool
	hasDefault bool
	def        any
	factory    func() any
}

// Option configures an Override.
type Option func(*Override)

// New returns an Override with the given options applied on top of the
// defaults: shown in the string form, compared, hashed like it is compared,
// positional, no default.
func New(opts ...Option) *Override {
	o := &Override{repr: true, compare: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Repr sets whether the field appears in the string form.
func Repr(show bool) Option {
	return func(o *Override) { o.repr = show }
}

// Compare sets whether the field takes part in equality and ordering.
func Compare(compare bool) Option {
	return func(o *Override) { o.compare = compare }
}

// Hash sets whether the field takes part in hashing. When never set, the
// field is hashed exactly when it is compared.
func Hash(hash bool) Option {
	return func(o *Override) { o.hash = &hash }
}

// KeywordOnly makes the field a named-only constructor argument.
func KeywordOnly() Option {
	return func(o *Override) { o.kwOnly = true }
}

// Default sets the value used when the constructor does not receive the field.
func Default(v any) Option {
	return func(o *Override) {
		o.hasDefault = true
		o.def = v
	}
}

// DefaultFunc sets a function called on every construction that does not
// receive the field. Use it for mutable defaults such as slices and maps.
func DefaultFunc(fn func() any) Option {
	return func(o *Override) { o.factory = fn }
}

// InRepr reports whether the field appears in the string form.
func (o *Override) InRepr() bool { return o.repr }

// InCompare reports whether the field takes part in equality and ordering.
func (o *Override) InCompare() bool { return o.compare }

// InHash reports whether the field takes part in hashing.
func (o *Override) InHash() bool {
	if o.hash == nil {
		return o.compare
	}
	return *o.hash
}

// IsKeywordOnly reports whether the field can only be passed by name.
func (o *Override) IsKeywordOnly() bool { return o.kwOnly }

// DefaultValue returns the static default and whether one was set.
func (o *Override) DefaultValue() (any, bool) { return o.def, o.hasDefault }

// Factory returns the default factory, or nil.
func (o *Override) Factory() func() any { return o.factory }

// HasDefault reports whether the field may be omitted by the constructor.
func (o *Override) HasDefault() bool { return o.hasDefault || o.factory != nil }

// Validate reports an inconsistent override.
func (o *Override) Validate() error {
	if o.hasDefault && o.factory != nil {
		return errors.New("cannot specify both a default and a default func")
	}
	return nil
}
