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

// Package model defines the contracts every dxprim value type honours:
// declared primitive instances, rule kinds, and any hand-written value type a
// caller wants to use side by side with them.
//
// A model validates itself, encodes itself to JSON and YAML, offers a safe
// and an unsafe string form, names its own type, and reports whether it is
// the zero value. These contracts enable the generic helpers of this package
// (ValidateAll, FilterZero, MustValidate, SafeString, ToJSON, ToYAML) and
// fail at compile time when a type does not honour them.
//
// Value types in this module are immutable once constructed. Concurrent
// reads are always safe; no method defined by these contracts mutates its
// receiver, except the Decodable methods, which callers MUST NOT run
// concurrently with any other use of the receiver.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the contracts required for a value
// type: validation, encoding to JSON and YAML, safe logging, type
// identification and zero-value detection.
//
// Decoding is deliberately not part of Model. A declared primitive instance
// cannot be decoded in place because the fields it accepts are owned by its
// type; decoding goes through the type instead. Types that can decode in
// place additionally implement Decodable, and Serializable combines both.
//
// Example:
//
//	type Cents int64
//
//	func (c Cents) Validate() error {
//	    if c < 0 {
//	        return errors.New("Cents MUST NOT be negative")
//	    }
//	    return nil
//	}
//
//	func (c Cents) TypeName() string  { return "Cents" }
//	func (c Cents) IsZero() bool      { return c == 0 }
//	func (c Cents) String() string    { return strconv.FormatInt(int64(c), 10) }
//	func (c Cents) Redacted() string  { return c.String() }
//	// ... MarshalJSON, MarshalYAML
//
//	var _ model.Model = Cents(0)
type Model interface {
	Validatable
	Encodable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that check their own state.
//
// Validate MUST be fast, deterministic and free of side effects. It returns
// nil if and only if the receiver satisfies every invariant of its type. A
// value that was validated when it was constructed and cannot change
// afterwards MAY return nil without re-running its checks.
type Validatable interface {
	// Validate returns nil for a valid receiver, or an error describing the
	// first violated invariant.
	Validate() error
}

// Encodable defines the contract for types that serialize themselves to JSON
// and YAML. Implementations SHOULD refuse to encode an invalid receiver.
type Encodable interface {
	json.Marshaler
	yaml.Marshaler
}

// Decodable defines the contract for types that deserialize into their
// receiver from JSON and YAML. Implementations MUST reject input that would
// produce an invalid value and leave the receiver unchanged in that case.
type Decodable interface {
	json.Unmarshaler
	yaml.Unmarshaler
}

// Serializable combines Encodable and Decodable for types that round-trip
// through JSON and YAML on their own.
type Serializable interface {
	Encodable
	Decodable
}

// Loggable defines the contract for types with a safe and an unsafe string
// form.
//
// String returns the full structural form used in tests, error messages and
// debugging. Redacted returns a form safe to write to logs: fields a type
// marks as hidden MUST NOT appear in it. When a type has nothing to hide the
// two forms MAY be identical.
type Loggable interface {
	// Redacted returns the string form safe for logs.
	Redacted() string

	// String returns the full string form.
	String() string
}

// Identifiable defines the contract for types that name themselves. The name
// is used in error messages and structured log attributes, so it MUST be
// stable for the lifetime of the process.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// hold their zero value, typically a value that was never constructed.
type ZeroCheckable interface {
	IsZero() bool
}

// Comparable defines structural equality between values of the same type.
//
// Equal MUST be reflexive, symmetric and transitive, and MUST agree with
// Hashable.Hash where both are implemented: equal values hash equally.
type Comparable[T any] interface {
	Equal(other T) bool
}

// Ordered defines a total order between values of the same type.
//
// Compare returns a negative number, zero or a positive number when the
// receiver sorts before, equal to or after other. Types whose order is only
// available under some configuration return an error wrapping
// errors.ErrNotSupported instead.
type Ordered[T any] interface {
	Compare(other T) (int, error)
}

// Hashable defines a hash consistent with Comparable.
type Hashable interface {
	Hash() (uint64, error)
}
