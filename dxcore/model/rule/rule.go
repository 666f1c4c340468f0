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

// Package rule declares the validation rules attached to one field of a
// domain primitive.
//
// A Rule is a passive bundle of optional parameters: whether to check the
// runtime type, exclusive numeric bounds, inclusive size bounds, a pattern,
// a custom predicate and an optional storage override. Absent parameters are
// skipped. Rules are built with New and a list of options; the fields of the
// Rule itself are not exported, so the representation can evolve without
// breaking callers.
//
// Building a Rule never fails. Whether its parameters make sense together
// (a lower bound above the upper bound, a pattern on an int field) is not
// checked here; such rules simply reject every value at construction time.
// Parameters that cannot be compiled at all, such as an invalid regular
// expression, are reported when the declaring type is built.
//
// Example:
//
//	percent := rule.New(rule.GreaterThan(-1), rule.LessThan(101))
//	slug := rule.New(rule.MinLength(3), rule.MaxLength(32), rule.Pattern(`[a-z0-9-]+`))
//	odd := rule.New(rule.Satisfies(func(n int) bool { return n%2 == 1 }))
package rule

import "dirpx.dev/dxprim/dxcore/model/field"

// PredicateFunc is a custom acceptance function.
//
// The value is rejected only when the predicate returns false, either as a
// bool or as a named type whose underlying type is bool. Any other result,
// including nil, 0 or an empty string, accepts it.
type PredicateFunc func(value any) any

// Rule is the set of validation parameters attached to one field.
//
// A Rule is immutable once built and may be attached to several fields or
// several declarations.
type Rule struct {
	checkType   bool
	lessThan    *float64
	greaterThan *float64
	maxLength   *int
	minLength   *int
	pattern     *string
	predicate   PredicateFunc
	expression  string
	override    *field.Override
}

// Option sets one parameter of a Rule.
type Option func(*Rule)

// New builds a Rule from options. The type check is enabled unless
// CheckType(false) is given; every other parameter is absent unless set.
func New(opts ...Option) *Rule {
	r := &Rule{checkType: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckType enables or disables the runtime type check.
func CheckType(check bool) Option {
	return func(r *Rule) { r.checkType = check }
}

// LessThan sets an exclusive upper bound.
func LessThan(bound float64) Option {
	return func(r *Rule) { r.lessThan = &bound }
}

// GreaterThan sets an exclusive lower bound.
func GreaterThan(bound float64) Option {
	return func(r *Rule) { r.greaterThan = &bound }
}

// MaxLength sets an inclusive upper bound on the size of the value.
func MaxLength(n int) Option {
	return func(r *Rule) { r.maxLength = &n }
}

// MinLength sets an inclusive lower bound on the size of the value.
func MinLength(n int) Option {
	return func(r *Rule) { r.minLength = &n }
}

// Pattern sets a regular expression the whole string value must match.
// The expression is anchored at both ends by the compiler.
func Pattern(expr string) Option {
	return func(r *Rule) { r.pattern = &expr }
}

// Predicate sets the custom predicate.
func Predicate(fn PredicateFunc) Option {
	return func(r *Rule) { r.predicate = fn }
}

// Satisfies sets a typed boolean predicate. A value that is not a T is
// rejected without calling fn.
func Satisfies[T any](fn func(T) bool) Option {
	return Predicate(func(v any) any {
		t, ok := v.(T)
		if !ok {
			return false
		}
		return fn(t)
	})
}

// Expr sets an expression predicate evaluated with `value` bound to the field
// value and `field` to the field name, for example "value % 2 == 1". It runs
// after the Go predicate and follows the same exactly-false rule.
func Expr(expression string) Option {
	return func(r *Rule) { r.expression = expression }
}

// Storage attaches a storage override that replaces the field's record-level
// behavior (default value, visibility, equality and hashing participation,
// keyword-only placement).
func Storage(o *field.Override) Option {
	return func(r *Rule) { r.override = o }
}

// ChecksType reports whether the runtime type check is enabled.
func (r *Rule) ChecksType() bool { return r.checkType }

// UpperBound returns the exclusive upper bound and whether it is set.
func (r *Rule) UpperBound() (float64, bool) { return deref(r.lessThan) }

// LowerBound returns the exclusive lower bound and whether it is set.
func (r *Rule) LowerBound() (float64, bool) { return deref(r.greaterThan) }

// MaxLen returns the maximum size and whether it is set.
func (r *Rule) MaxLen() (int, bool) { return deref(r.maxLength) }

// MinLen returns the minimum size and whether it is set.
func (r *Rule) MinLen() (int, bool) { return deref(r.minLength) }

// Regexp returns the pattern and whether it is set.
func (r *Rule) Regexp() (string, bool) { return deref(r.pattern) }

// Func returns the custom predicate, or nil.
func (r *Rule) Func() PredicateFunc { return r.predicate }

// Expression returns the expression predicate, or "".
func (r *Rule) Expression() string { return r.expression }

// Override returns the storage override, or nil.
func (r *Rule) Override() *field.Override { return r.override }

// Kinds lists the checks this rule compiles into, in compile order.
func (r *Rule) Kinds() []Kind {
	var kinds []Kind
	if r.checkType {
		kinds = append(kinds, KindTypeCheck)
	}
	if r.lessThan != nil {
		kinds = append(kinds, KindLessThan)
	}
	if r.greaterThan != nil {
		kinds = append(kinds, KindGreaterThan)
	}
	if r.maxLength != nil {
		kinds = append(kinds, KindMaxLength)
	}
	if r.minLength != nil {
		kinds = append(kinds, KindMinLength)
	}
	if r.pattern != nil {
		kinds = append(kinds, KindPattern)
	}
	if r.predicate != nil || r.expression != "" {
		kinds = append(kinds, KindPredicate)
	}
	return kinds
}

// IsZero reports whether the rule compiles into no checks and carries no
// override, making the field it is attached to an ordinary field.
func (r *Rule) IsZero() bool {
	return r == nil || (len(r.Kinds()) == 0 && r.override == nil)
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
