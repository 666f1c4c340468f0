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

package prim_test

import (
	"dirpx.dev/dxprim/dxcore/model/field"
	"dirpx.dev/dxprim/dxcore/model/prim"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
)

func isOdd(x int) bool { return x%2 == 1 }

// declareA is a bounded int without equality, ordering or match support.
func declareA() *prim.Type {
	return prim.Declare("A", prim.Equality(false), prim.Ordering(false), prim.MatchSupport(false)).
		Field("a", semantic.Int, rule.New(rule.GreaterThan(0), rule.LessThan(10))).
		MustBuild()
}

// declareB is a short lowercase word.
func declareB() *prim.Type {
	return prim.Declare("B").
		Field("b", semantic.String, rule.New(rule.MinLength(3), rule.MaxLength(10), rule.Pattern(`^[a-z]+$`))).
		MustBuild()
}

// declareC is a list of three to ten elements.
func declareC() *prim.Type {
	return prim.Declare("C").
		Field("c", semantic.List, rule.New(rule.MinLength(3), rule.MaxLength(10))).
		MustBuild()
}

// declareD mixes predicates with storage overrides: odd is hidden from the
// string form and excluded from equality and hashing, keyword is a
// keyword-only field defaulting to 0.
func declareD() *prim.Type {
	return prim.Declare("D").
		Field("odd", semantic.Int, rule.New(
			rule.Satisfies(isOdd),
			rule.Storage(field.New(field.Repr(false), field.Compare(false), field.Hash(false))),
		)).
		Field("even", semantic.Int, rule.New(rule.Predicate(func(v any) any { return v.(int)%2 == 0 }))).
		Field("keyword", semantic.Int, rule.New(rule.Storage(field.New(field.KeywordOnly(), field.Default(0))))).
		MustBuild()
}

func negativeZero() float64 {
	zero := 0.0
	return -zero
}
