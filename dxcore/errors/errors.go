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

// Package errors provides the fault taxonomy shared by every dxprim package.
//
// Domain primitives fail in a small number of well-defined ways, and callers
// MUST be able to tell them apart: a value of the wrong shape entirely, a
// value of the right shape rejected by a business rule, and a value of the
// right shape outside its declared range are three different conversations
// with the user. This package centralizes the error types for those faults,
// together with the parse / marshal / unmarshal errors used by enum-like
// types and by the decoders.
//
// The errors in this package are intentionally simple value carriers with
// stable message formats. They are designed to be:
//
//   - easy to construct from the check compiler and the decoders,
//   - easy to recognize via errors.As (each type is a pointer type),
//   - easy to classify via errors.Is (each type unwraps to a sentinel),
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// # Fault Types
//
//   - TypeMismatchError (ErrTypeMismatch)
//     The runtime value of a field is not an instance of its declared
//     semantic type, or a rule was applied to a value it cannot inspect
//     (a bound on a non-number, a length on an unsized value).
//
//   - PredicateError (ErrPredicate)
//     A custom field predicate returned exactly false.
//
//   - ConstraintError (ErrConstraint)
//     A bound, length or pattern check failed. The three sub-cases share
//     this type and differ only by Constraint and Reason.
//
//   - ArgumentError (ErrArgument)
//     The constructor was called with the wrong arguments (too many
//     positional values, unknown names, missing required fields).
//
//   - FrozenError (ErrFrozen)
//     Something attempted to reassign a field of an immutable instance.
//
//   - DeclarationError (ErrDeclaration)
//     A type declaration is inconsistent and cannot be synthesized.
//
//   - ParseError, MarshalError, UnmarshalError
//     Textual and serialized representations that cannot be interpreted.
//
// # Usage
//
//	inst, err := percent.New(120)
//	switch {
//	case errors.Is(err, dxerrors.ErrTypeMismatch):
//	    // wrong shape entirely
//	case errors.Is(err, dxerrors.ErrPredicate):
//	    // rejected by business rule
//	case errors.Is(err, dxerrors.ErrConstraint):
//	    // out of declared range
//	}
package errors

import "strconv"

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Kind"), and
// Value contains the exact string that could not be interpreted. Callers MAY
// pattern-match on Type to provide type-specific guidance to users.
//
// # Example
//
//	func ParseKind(s string) (Kind, error) {
//	    switch s {
//	    case "pattern":
//	        return Pattern, nil
//	    default:
//	        // "dxprim: invalid Kind value: <value>"
//	        return 0, &errors.ParseError{Type: "Kind", Value: s}
//	    }
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Kind").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxprim: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxprim: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error (for example, a
// numeric cast that was never validated).
type MarshalError struct {
	// Type is the logical name of the type being marshaled (for example, "Kind").
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxprim: cannot marshal invalid {Type} value: {Value}"
//
// where Value is rendered as a decimal integer.
func (e *MarshalError) Error() string {
	return "dxprim: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Type identifies the logical type being populated, Data contains the original
// raw payload (typically a JSON or YAML fragment), and Reason provides a
// human-readable description of what went wrong.
//
// Callers MAY wrap UnmarshalError with additional context when propagating it
// further up the stack.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	//
	// Callers MAY choose to log or redact this field depending on privacy
	// and size considerations.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxprim: cannot unmarshal {Type}: {Reason}"
//
// The Data field is intentionally not included in the formatted message.
func (e *UnmarshalError) Error() string {
	return "dxprim: cannot unmarshal " + e.Type + ": " + e.Reason
}
