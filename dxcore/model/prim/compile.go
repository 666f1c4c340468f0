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
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// step is one compiled check bound to the position of the field it checks.
type step struct {
	index int
	field string
	kind  rule.Kind
	check func(v any) error
}

// Check describes one compiled check of a Type.
type Check struct {
	Field string
	Kind  rule.Kind
}

// compile turns the plan into the validation routine: the checks of every
// field, field by field in declaration order, each field's checks in
// rule.Kind order.
func compile(typeName string, plan []fieldPlan) ([]step, []string) {
	var steps []step
	var issues []string

	for _, p := range plan {
		if p.rule == nil {
			continue
		}
		c := checker{typeName: typeName, field: p.name, typ: p.typ}
		r := p.rule

		add := func(kind rule.Kind, check func(any) error) {
			steps = append(steps, step{index: p.index, field: p.name, kind: kind, check: check})
		}

		if r.ChecksType() && p.typ != nil {
			add(rule.KindTypeCheck, c.typeCheck)
		}
		if b, ok := r.UpperBound(); ok {
			add(rule.KindLessThan, c.lessThan(b))
		}
		if b, ok := r.LowerBound(); ok {
			add(rule.KindGreaterThan, c.greaterThan(b))
		}
		if n, ok := r.MaxLen(); ok {
			add(rule.KindMaxLength, c.maxLength(n))
		}
		if n, ok := r.MinLen(); ok {
			add(rule.KindMinLength, c.minLength(n))
		}
		if pattern, ok := r.Regexp(); ok {
			re, err := regexp.Compile(`^(?:` + pattern + `)$`)
			if err != nil {
				issues = append(issues, fmt.Sprintf("field %q: invalid pattern: %v", p.name, err))
			} else {
				add(rule.KindPattern, c.pattern(pattern, re))
			}
		}

		var prog *vm.Program
		if e := r.Expression(); e != "" {
			var err error
			prog, err = expr.Compile(e)
			if err != nil {
				issues = append(issues, fmt.Sprintf("field %q: invalid expression: %v", p.name, err))
			}
		}
		if fn := r.Func(); fn != nil || prog != nil {
			add(rule.KindPredicate, c.predicate(fn, prog))
		}
	}

	return steps, issues
}

// checker builds the check closures of one field.
type checker struct {
	typeName string
	field    string
	typ      semantic.Type
}

func (c checker) mismatch(expected string, v any) error {
	return &errors.TypeMismatchError{
		Type:     c.typeName,
		Field:    c.field,
		Expected: expected,
		Actual:   semantic.TypeName(v),
	}
}

func (c checker) violation(kind rule.Kind, v any, format string, args ...any) error {
	return &errors.ConstraintError{
		Type:       c.typeName,
		Field:      c.field,
		Constraint: kind.String(),
		Reason:     fmt.Sprintf(format, args...),
		Value:      v,
	}
}

func (c checker) typeCheck(v any) error {
	if !c.typ.Accepts(v) {
		return c.mismatch(c.typ.Name(), v)
	}
	return nil
}

func (c checker) lessThan(bound float64) func(any) error {
	return func(v any) error {
		n, ok := asNumber(v)
		if !ok {
			return c.mismatch("number", v)
		}
		if cmp, ok := n.cmpFloat(bound); !ok || cmp >= 0 {
			return c.violation(rule.KindLessThan, v, "expected %s to be less than %s", c.field, formatBound(bound))
		}
		return nil
	}
}

func (c checker) greaterThan(bound float64) func(any) error {
	return func(v any) error {
		n, ok := asNumber(v)
		if !ok {
			return c.mismatch("number", v)
		}
		if cmp, ok := n.cmpFloat(bound); !ok || cmp <= 0 {
			return c.violation(rule.KindGreaterThan, v, "expected %s to be greater than %s", c.field, formatBound(bound))
		}
		return nil
	}
}

func (c checker) maxLength(limit int) func(any) error {
	return func(v any) error {
		size, ok := semantic.Size(v)
		if !ok {
			return c.mismatch("sized value", v)
		}
		if size > limit {
			return c.violation(rule.KindMaxLength, v, "expected %s to have a length no greater than %d", c.field, limit)
		}
		return nil
	}
}

func (c checker) minLength(limit int) func(any) error {
	return func(v any) error {
		size, ok := semantic.Size(v)
		if !ok {
			return c.mismatch("sized value", v)
		}
		if size < limit {
			return c.violation(rule.KindMinLength, v, "expected %s to have a length no less than %d", c.field, limit)
		}
		return nil
	}
}

func (c checker) pattern(pattern string, re *regexp.Regexp) func(any) error {
	return func(v any) error {
		if v == nil {
			return c.mismatch("string", v)
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return c.mismatch("string", v)
		}
		if !re.MatchString(rv.String()) {
			return c.violation(rule.KindPattern, v, "expected %s to match the regex %s", c.field, pattern)
		}
		return nil
	}
}

// predicate runs the Go predicate, then the expression. Either rejects the
// value only by producing exactly the bool false.
func (c checker) predicate(fn rule.PredicateFunc, prog *vm.Program) func(any) error {
	return func(v any) error {
		if fn != nil && isFalse(fn(v)) {
			return &errors.PredicateError{Type: c.typeName, Field: c.field}
		}
		if prog == nil {
			return nil
		}
		out, err := expr.Run(prog, map[string]any{"value": v, "field": c.field})
		if err != nil {
			return &errors.PredicateError{Type: c.typeName, Field: c.field, Cause: err}
		}
		if isFalse(out) {
			return &errors.PredicateError{Type: c.typeName, Field: c.field}
		}
		return nil
	}
}

func isFalse(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Bool && !rv.Bool()
}

// formatBound prints integral bounds without a fractional part, so a bound
// of 10 reads "10" rather than "10.0" or "1e+01".
func formatBound(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64)
}
