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

package errors

import (
	"errors"
	"strings"
)

// Sentinel errors wrapped by the typed faults of this package. Use errors.Is
// to classify a failure without caring about its context fields.
var (
	// ErrTypeMismatch is wrapped by TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrPredicate is wrapped by PredicateError.
	ErrPredicate = errors.New("predicate violation")

	// ErrConstraint is wrapped by ConstraintError.
	ErrConstraint = errors.New("constraint violation")

	// ErrArgument is wrapped by ArgumentError.
	ErrArgument = errors.New("invalid arguments")

	// ErrFrozen is wrapped by FrozenError.
	ErrFrozen = errors.New("instance is immutable")

	// ErrDeclaration is wrapped by DeclarationError.
	ErrDeclaration = errors.New("invalid declaration")

	// ErrNotSupported is returned by operations a type was declared without,
	// such as ordering on a type declared with ordering disabled, or by
	// comparisons between values that have no natural order.
	ErrNotSupported = errors.New("operation not supported")

	// ErrUnconstructed is returned by operations on a zero instance, one that
	// was never produced by a type's constructor.
	ErrUnconstructed = errors.New("instance was not constructed")
)

// TypeMismatchError is returned when a field value is not an instance of the
// semantic type a check requires.
//
// Expected and Actual are type names as reported by the semantic type and by
// the Go runtime respectively. Container element types are never inspected,
// so Actual names the container type (for example, "[]int").
type TypeMismatchError struct {
	// Type is the name of the declared primitive.
	Type string

	// Field is the name of the offending field.
	Field string

	// Expected is the name of the type the check required.
	Expected string

	// Actual is the name of the runtime type of the value, or "nil".
	Actual string
}

// Error implements the error interface for TypeMismatchError.
//
// The error message format is:
//
//	"dxprim: invalid {Type}.{Field}: expected {Expected} but got {Actual}"
func (e *TypeMismatchError) Error() string {
	return "dxprim: invalid " + e.Type + "." + e.Field + ": expected " + e.Expected + " but got " + e.Actual
}

// Unwrap returns ErrTypeMismatch for errors.Is compatibility.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// PredicateError is returned when a custom field predicate rejects a value.
//
// Cause is set only when the predicate could not be evaluated at all (for
// example, an expression that failed at runtime); a plain rejection leaves it
// nil.
type PredicateError struct {
	// Type is the name of the declared primitive.
	Type string

	// Field is the name of the field whose predicate rejected the value.
	Field string

	// Cause optionally carries the evaluation failure.
	Cause error
}

// Error implements the error interface for PredicateError.
//
// The error message format is:
//
//	"dxprim: invalid {Type}.{Field}: expected {Field} to pass the custom predicate"
//
// followed by ": {Cause}" when Cause is set.
func (e *PredicateError) Error() string {
	msg := "dxprim: invalid " + e.Type + "." + e.Field + ": expected " + e.Field + " to pass the custom predicate"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrPredicate and, when present, the evaluation cause.
func (e *PredicateError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPredicate, e.Cause}
	}
	return []error{ErrPredicate}
}

// ConstraintError is returned when a bound, length or pattern check fails.
//
// This is the assertion-style tier of the taxonomy: the value has the right
// shape but lies outside the declared range. Constraint names the violated
// rule kind (for example, "less-than" or "pattern") and Reason is the
// human-readable message naming the field and the limit.
type ConstraintError struct {
	// Type is the name of the declared primitive.
	Type string

	// Field is the name of the offending field.
	Field string

	// Constraint is the canonical name of the violated rule kind.
	Constraint string

	// Reason is a short, human-readable explanation of the violation.
	Reason string

	// Value optionally contains the rejected value.
	// May be nil if the value should not be logged.
	Value any
}

// Error implements the error interface for ConstraintError.
//
// The error message format is:
//
//	"dxprim: invalid {Type}.{Field}: {Reason}"
func (e *ConstraintError) Error() string {
	return "dxprim: invalid " + e.Type + "." + e.Field + ": " + e.Reason
}

// Unwrap returns ErrConstraint for errors.Is compatibility.
func (e *ConstraintError) Unwrap() error { return ErrConstraint }

// ArgumentError is returned when a constructor receives arguments that do not
// line up with the declared fields.
type ArgumentError struct {
	// Type is the name of the declared primitive.
	Type string

	// Reason explains which argument was wrong.
	Reason string
}

// Error implements the error interface for ArgumentError.
//
// The error message format is:
//
//	"dxprim: {Type}(): {Reason}"
func (e *ArgumentError) Error() string {
	return "dxprim: " + e.Type + "(): " + e.Reason
}

// Unwrap returns ErrArgument for errors.Is compatibility.
func (e *ArgumentError) Unwrap() error { return ErrArgument }

// FrozenError is returned on any attempt to reassign a field of an instance.
type FrozenError struct {
	// Type is the name of the declared primitive.
	Type string

	// Field is the name of the field the caller tried to assign.
	Field string
}

// Error implements the error interface for FrozenError.
//
// The error message format is:
//
//	"dxprim: cannot assign to field {Type}.{Field}: instance is immutable"
func (e *FrozenError) Error() string {
	return "dxprim: cannot assign to field " + e.Type + "." + e.Field + ": instance is immutable"
}

// Unwrap returns ErrFrozen for errors.Is compatibility.
func (e *FrozenError) Unwrap() error { return ErrFrozen }

// DeclarationError is returned when a type declaration cannot be synthesized.
//
// All issues found in one declaration are reported together so that a caller
// fixing a schema sees every problem at once.
type DeclarationError struct {
	// Type is the name of the declaration, possibly empty when the name
	// itself is the problem.
	Type string

	// Issues lists the problems in declaration order.
	Issues []string
}

// Error implements the error interface for DeclarationError.
//
// The error message format is:
//
//	"dxprim: invalid declaration of {Type}: {Issue}; {Issue}; ..."
func (e *DeclarationError) Error() string {
	name := e.Type
	if name == "" {
		name = "<unnamed>"
	}
	return "dxprim: invalid declaration of " + name + ": " + strings.Join(e.Issues, "; ")
}

// Unwrap returns ErrDeclaration for errors.Is compatibility.
func (e *DeclarationError) Unwrap() error { return ErrDeclaration }
