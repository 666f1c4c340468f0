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
	"log/slog"
	"strings"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
)

// Declaration collects the fields of a type before it is built.
//
// A Declaration is not safe for concurrent use. It may be built more than
// once; each Build produces an independent Type.
type Declaration struct {
	name   string
	fields []fieldDecl
	opts   options
}

type fieldDecl struct {
	name string
	typ  semantic.Type
	rule *rule.Rule
}

type options struct {
	keywordOnly    bool
	equality       bool
	ordering       bool
	representation bool
	matchSupport   bool
	logger         *slog.Logger
}

// Option configures a declared type.
type Option func(*options)

// KeywordOnly makes every field of the type a named-only constructor
// argument.
func KeywordOnly() Option {
	return func(o *options) { o.keywordOnly = true }
}

// Equality enables or disables structural equality and hashing. When
// disabled, instances are only equal to themselves.
func Equality(enabled bool) Option {
	return func(o *options) { o.equality = enabled }
}

// Ordering enables or disables the derived order. Ordering requires
// equality.
func Ordering(enabled bool) Option {
	return func(o *options) { o.ordering = enabled }
}

// Representation enables or disables the structural string form. When
// disabled, String returns an identity form.
func Representation(enabled bool) Option {
	return func(o *options) { o.representation = enabled }
}

// MatchSupport enables or disables positional destructuring.
func MatchSupport(enabled bool) Option {
	return func(o *options) { o.matchSupport = enabled }
}

// WithLogger sets the logger receiving a debug record for every built type.
// A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Declare starts the declaration of a type. Equality, ordering,
// representation and match support are enabled unless turned off by opts.
func Declare(name string, opts ...Option) *Declaration {
	o := options{
		equality:       true,
		ordering:       true,
		representation: true,
		matchSupport:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Declaration{name: name, opts: o}
}

// Field appends a field. A nil rule declares an ordinary field without
// checks or override.
func (d *Declaration) Field(name string, typ semantic.Type, r *rule.Rule) *Declaration {
	d.fields = append(d.fields, fieldDecl{name: name, typ: typ, rule: r})
	return d
}

// Build compiles the declaration into a Type.
//
// Every problem found in the declaration is reported together in one
// *errors.DeclarationError: invalid or duplicate names, missing semantic
// types, patterns or expressions that do not compile, inconsistent overrides,
// ordering without equality, and a positional field without a default that
// follows one with a default.
func (d *Declaration) Build() (*Type, error) {
	var issues []string

	if !isIdentifier(d.name) {
		issues = append(issues, "type name "+quote(d.name)+" is not a valid identifier")
	}
	if d.opts.ordering && !d.opts.equality {
		issues = append(issues, "ordering requires equality")
	}

	plan, planIssues := extractPlan(d.fields)
	issues = append(issues, planIssues...)

	steps, compileIssues := compile(d.name, plan)
	issues = append(issues, compileIssues...)

	fields, fieldIssues := finalizeFields(plan, d.opts.keywordOnly)
	issues = append(issues, fieldIssues...)

	if len(issues) > 0 {
		return nil, &errors.DeclarationError{Type: d.name, Issues: issues}
	}

	t := newType(d.name, fields, steps, d.opts)
	d.opts.logger.Debug("compiled primitive",
		slog.String("type", t.name),
		slog.Int("fields", len(fields)),
		slog.Int("checks", len(steps)),
		slog.String("match_args", strings.Join(t.positional(), ",")),
	)
	return t, nil
}

// MustBuild is like Build but panics on error. It is meant for package-level
// type declarations.
func (d *Declaration) MustBuild() *Type {
	t, err := d.Build()
	if err != nil {
		panic(err)
	}
	return t
}
