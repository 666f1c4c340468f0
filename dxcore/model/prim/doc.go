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

// Package prim synthesizes domain primitives: immutable, self-validating
// record types declared from an ordered list of fields and their rules.
//
// A declaration names the type, lists its fields in order, and attaches an
// optional rule.Rule to each one. Build turns the declaration into a *Type in
// four steps:
//
//  1. Plan extraction. Every field becomes a plan entry holding its position,
//     name, semantic type and rule. A field without a rule is an ordinary
//     field: no checks, no override.
//  2. Check compilation. Each rule compiles into closures in a fixed order:
//     type check, upper bound, lower bound, maximum size, minimum size,
//     pattern, predicate. The closures of all fields are concatenated in
//     declaration order into one validation routine.
//  3. Default erasure. A field whose rule carries a field.Override takes its
//     default value and record-level flags from the override. Any other
//     field has no default.
//  4. Finalization. The resulting Type is sealed. Its constructor assigns
//     every field, runs the validation routine once, and only then hands out
//     the instance.
//
// Instances never change after construction. Equality, ordering, hashing
// and the string form are derived from field values, honouring the per-field
// flags and the type-level options given to Declare.
//
// Example:
//
//	Percent := prim.Declare("Percent").
//	    Field("value", semantic.Int, rule.New(rule.GreaterThan(-1), rule.LessThan(101))).
//	    MustBuild()
//
//	p, err := Percent.New(42)      // Percent(value=42)
//	_, err = Percent.New(142)      // *errors.ConstraintError
//	_, err = Percent.New("42")     // *errors.TypeMismatchError
//
// Types and instances are safe for concurrent use.
package prim
