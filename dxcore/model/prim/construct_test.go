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
	"math"
	"testing"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/field"
	"dirpx.dev/dxprim/dxcore/model/prim"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruct_Scenarios(t *testing.T) {
	A, B, C, D := declareA(), declareB(), declareC(), declareD()

	tests := []struct {
		name    string
		typ     *prim.Type
		args    []any
		wantErr error
	}{
		{"A within bounds", A, []any{1}, nil},
		{"A below lower bound", A, []any{-1}, errors.ErrConstraint},
		{"A above upper bound", A, []any{11}, errors.ErrConstraint},
		{"A on the exclusive bound", A, []any{10}, errors.ErrConstraint},
		{"A wrong type", A, []any{"x"}, errors.ErrTypeMismatch},

		{"B word", B, []any{"apple"}, nil},
		{"B too short", B, []any{"a"}, errors.ErrConstraint},
		{"B too long", B, []any{"abcdefghijklmnopqrstuvwxyz"}, errors.ErrConstraint},
		{"B uppercase too long", B, []any{"ABCDEFGHIJKLMNOP"}, errors.ErrConstraint},
		{"B digits", B, []any{"123"}, errors.ErrConstraint},
		{"B wrong type", B, []any{1}, errors.ErrTypeMismatch},

		{"C three items", C, []any{[]int{1, 2, 3}}, nil},
		{"C empty", C, []any{[]int{}}, errors.ErrConstraint},
		{"C eleven items", C, []any{[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}}, errors.ErrConstraint},
		{"C wrong type", C, []any{"a"}, errors.ErrTypeMismatch},

		{"D odd and even", D, []any{1, 2}, nil},
		{"D even odd field", D, []any{2, 2}, errors.ErrPredicate},
		{"D odd even field", D, []any{1, 1}, errors.ErrPredicate},
		{"D too many positional", D, []any{1, 2, 3}, errors.ErrArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := tt.typ.New(tt.args...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.NotNil(t, inst)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, inst)
		})
	}
}

func TestConstruct_ErrorMessages(t *testing.T) {
	A, B, D := declareA(), declareB(), declareD()

	_, err := A.New(11)
	assert.EqualError(t, err, "dxprim: invalid A.a: expected a to be less than 10")

	_, err = A.New(-1)
	assert.EqualError(t, err, "dxprim: invalid A.a: expected a to be greater than 0")

	_, err = A.New("x")
	assert.EqualError(t, err, "dxprim: invalid A.a: expected int but got string")

	_, err = B.New("a")
	assert.EqualError(t, err, "dxprim: invalid B.b: expected b to have a length no less than 3")

	_, err = B.New("abcdefghijk")
	assert.EqualError(t, err, "dxprim: invalid B.b: expected b to have a length no greater than 10")

	_, err = B.New("123")
	assert.EqualError(t, err, "dxprim: invalid B.b: expected b to match the regex ^[a-z]+$")

	_, err = D.New(2, 2)
	assert.EqualError(t, err, "dxprim: invalid D.odd: expected odd to pass the custom predicate")
}

func TestConstruct_ConstraintDetails(t *testing.T) {
	_, err := declareB().New("123")

	var ce *errors.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "B", ce.Type)
	assert.Equal(t, "b", ce.Field)
	assert.Equal(t, rule.PatternStr, ce.Constraint)
	assert.Equal(t, "123", ce.Value)

	_, err = declareA().New(3.5)
	var tm *errors.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "int", tm.Expected)
	assert.Equal(t, "float64", tm.Actual)
}

func TestConstruct_FirstFailureWins(t *testing.T) {
	// Both fields are invalid; the first declared field is reported.
	_, err := declareD().New(2, 1)
	var pe *errors.PredicateError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "odd", pe.Field)

	// Type check runs before bounds even with the type check listed last.
	typ := prim.Declare("T").
		Field("v", semantic.Int, rule.New(rule.LessThan(0), rule.CheckType(true))).
		MustBuild()
	_, err = typ.New("x")
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestConstruct_TypeCheckDisabled(t *testing.T) {
	typ := prim.Declare("T").
		Field("v", semantic.Int, rule.New(rule.CheckType(false), rule.LessThan(10))).
		MustBuild()

	_, err := typ.New(3.5)
	assert.NoError(t, err)

	_, err = typ.New("x")
	assert.ErrorIs(t, err, errors.ErrTypeMismatch, "a bound on a non-number is a shape fault")

	sized := prim.Declare("S").
		Field("v", semantic.Any, rule.New(rule.MaxLength(3))).
		MustBuild()
	_, err = sized.New(42)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestConstruct_Keywords(t *testing.T) {
	D := declareD()

	d, err := D.New(1, 2)
	require.NoError(t, err)
	kw, _ := d.Get("keyword")
	assert.Equal(t, 0, kw)

	d, err = D.Construct([]any{1, 2}, map[string]any{"keyword": 4})
	require.NoError(t, err)
	kw, _ = d.Get("keyword")
	assert.Equal(t, 4, kw)

	d, err = D.Construct(nil, map[string]any{"odd": 3, "even": 4})
	require.NoError(t, err)
	assert.Equal(t, []any{3, 4, 0}, d.Values())

	tests := []struct {
		name   string
		args   []any
		kwargs map[string]any
		reason string
	}{
		{"unknown keyword", []any{1, 2}, map[string]any{"nope": 1}, `unexpected keyword argument "nope"`},
		{"duplicate value", []any{1, 2}, map[string]any{"even": 4}, `multiple values for argument "even"`},
		{"missing field", []any{1}, nil, `missing required arguments: "even"`},
		{"keyword-only passed positionally", []any{1, 2, 0}, nil, "takes 2 positional arguments but 3 were given"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := D.Construct(tt.args, tt.kwargs)
			var ae *errors.ArgumentError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, "D", ae.Type)
			assert.Contains(t, ae.Reason, tt.reason)
		})
	}
}

func TestConstruct_DefaultFactoryRunsPerInstance(t *testing.T) {
	calls := 0
	typ := prim.Declare("Tags").
		Field("tags", semantic.List, rule.New(rule.Storage(field.New(field.DefaultFunc(func() any {
			calls++
			return []string{}
		}))))).
		MustBuild()

	typ.MustNew()
	typ.MustNew()
	assert.Equal(t, 2, calls)

	typ.MustNew([]string{"a"})
	assert.Equal(t, 2, calls, "factory must not run when the field is given")
}

func TestConstruct_DefaultsAreValidated(t *testing.T) {
	typ := prim.Declare("T").
		Field("v", semantic.Int, rule.New(rule.GreaterThan(0), rule.Storage(field.New(field.Default(0))))).
		MustBuild()

	_, err := typ.New()
	assert.ErrorIs(t, err, errors.ErrConstraint)
}

func TestConstruct_NumericKinds(t *testing.T) {
	type cents int64

	typ := prim.Declare("Amount").
		Field("v", semantic.Number, rule.New(rule.GreaterThan(0), rule.LessThan(1.5))).
		MustBuild()

	tests := []struct {
		name string
		v    any
		ok   bool
	}{
		{"int one", 1, true},
		{"uint8 one", uint8(1), true},
		{"named int", cents(1), true},
		{"float below", 1.49, true},
		{"float on bound", 1.5, false},
		{"int two", 2, false},
		{"zero", 0, false},
		{"negative", int8(-3), false},
		{"huge uint", uint64(1 << 63), false},
		{"float32", float32(0.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := typ.New(tt.v)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrConstraint)
			}
		})
	}
}

func TestConstruct_NaNViolatesBounds(t *testing.T) {
	typ := prim.Declare("F").
		Field("v", semantic.Float, rule.New(rule.LessThan(1))).
		MustBuild()

	_, err := typ.New(math.NaN())
	assert.ErrorIs(t, err, errors.ErrConstraint)
}

func TestConstruct_LengthCountsCodePoints(t *testing.T) {
	typ := prim.Declare("Name").
		Field("v", semantic.String, rule.New(rule.MaxLength(5))).
		MustBuild()

	_, err := typ.New("héllo")
	assert.NoError(t, err)
	_, err = typ.New("héllos")
	assert.ErrorIs(t, err, errors.ErrConstraint)
}

func TestConstruct_PatternMustMatchFully(t *testing.T) {
	typ := prim.Declare("Code").
		Field("v", semantic.String, rule.New(rule.Pattern(`[a-z]{3}`))).
		MustBuild()

	_, err := typ.New("abc")
	assert.NoError(t, err)
	_, err = typ.New("abcd")
	assert.ErrorIs(t, err, errors.ErrConstraint)
	_, err = typ.New("xabc")
	assert.ErrorIs(t, err, errors.ErrConstraint)
}

func TestConstruct_PredicateExactFalse(t *testing.T) {
	results := []any{nil, 0, "", true, []int{}}
	for _, r := range results {
		typ := prim.Declare("P").
			Field("v", semantic.Any, rule.New(rule.Predicate(func(any) any { return r }))).
			MustBuild()
		_, err := typ.New(1)
		assert.NoError(t, err, "predicate result %#v must not reject", r)
	}

	type verdict bool
	typ := prim.Declare("P").
		Field("v", semantic.Any, rule.New(rule.Predicate(func(any) any { return verdict(false) }))).
		MustBuild()
	_, err := typ.New(1)
	assert.ErrorIs(t, err, errors.ErrPredicate, "a named bool false rejects like the bool false")

	typ = prim.Declare("P").
		Field("v", semantic.Any, rule.New(rule.Predicate(func(any) any { return verdict(true) }))).
		MustBuild()
	_, err = typ.New(1)
	assert.NoError(t, err)
}

func TestConstruct_ContainersAreCopied(t *testing.T) {
	typ := prim.Declare("Tags").
		Field("m", semantic.Map, rule.New(rule.MaxLength(1))).
		Field("l", semantic.List, rule.New(rule.MaxLength(2))).
		MustBuild()

	m := map[string]int{"a": 1}
	l := []int{1, 2}
	inst, err := typ.New(m, l)
	require.NoError(t, err)
	before, err := inst.Hash()
	require.NoError(t, err)

	m["b"] = 2
	m["c"] = 3
	l[0] = 9

	got, _ := inst.Get("m")
	assert.Equal(t, map[string]int{"a": 1}, got)
	got, _ = inst.Get("l")
	assert.Equal(t, []int{1, 2}, got)
	after, err := inst.Hash()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	read, _ := inst.Get("m")
	read.(map[string]int)["z"] = 26
	inst.Values()[1].([]int)[1] = 7
	inst.AsMap()["l"].([]int)[0] = 8

	assert.Equal(t, "Tags(m=map[a:1], l=[1 2])", inst.String())
	require.NoError(t, inst.Validate())
}

func TestConstruct_Expression(t *testing.T) {
	typ := prim.Declare("Odd").
		Field("v", semantic.Int, rule.New(rule.Expr(`value % 2 == 1`))).
		MustBuild()

	_, err := typ.New(3)
	assert.NoError(t, err)

	_, err = typ.New(4)
	assert.ErrorIs(t, err, errors.ErrPredicate)

	named := prim.Declare("Named").
		Field("code", semantic.String, rule.New(rule.Expr(`field == "code" && len(value) == 2`))).
		MustBuild()
	_, err = named.New("ab")
	assert.NoError(t, err)
	_, err = named.New("abc")
	assert.ErrorIs(t, err, errors.ErrPredicate)
}

func TestConstruct_ExpressionRunsAfterPredicate(t *testing.T) {
	var seen []string
	typ := prim.Declare("T").
		Field("v", semantic.Int, rule.New(
			rule.Expr(`false`),
			rule.Predicate(func(any) any {
				seen = append(seen, "go")
				return false
			}),
		)).
		MustBuild()

	_, err := typ.New(1)
	var pe *errors.PredicateError
	require.ErrorAs(t, err, &pe)
	assert.Nil(t, pe.Cause)
	assert.Equal(t, []string{"go"}, seen)
}

func TestConstruct_ExpressionRuntimeError(t *testing.T) {
	typ := prim.Declare("T").
		Field("v", semantic.Any, rule.New(rule.Expr(`value.missing > 1`))).
		MustBuild()

	_, err := typ.New(3)
	var pe *errors.PredicateError
	require.ErrorAs(t, err, &pe)
	assert.Error(t, pe.Cause)
	assert.ErrorIs(t, err, errors.ErrPredicate)
}

func TestConstruct_ElementsAreNotInspected(t *testing.T) {
	typ := prim.Declare("Ints").
		Field("v", semantic.List, rule.New(rule.MinLength(1))).
		MustBuild()

	_, err := typ.New([]any{"not", "ints"})
	assert.NoError(t, err)
}

func TestMustNew(t *testing.T) {
	A := declareA()
	assert.NotPanics(t, func() { A.MustNew(5) })
	assert.Panics(t, func() { A.MustNew(50) })
}
