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

package rule

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Kind identifies one check a Rule can compile into.
//
// The numeric order of the constants is the order in which the compiler
// emits checks for a field: a type check first, so that every later check
// can assume the value has the declared shape, then bounds, sizes, the
// pattern, and finally the custom predicate. Changing the order of the
// constants changes which error a caller sees for a value that violates
// several rules at once.
type Kind int

const (
	// KindTypeCheck verifies the value is an instance of the declared type.
	KindTypeCheck Kind = iota

	// KindLessThan verifies the value is strictly below the upper bound.
	KindLessThan

	// KindGreaterThan verifies the value is strictly above the lower bound.
	KindGreaterThan

	// KindMaxLength verifies the size of the value does not exceed the maximum.
	KindMaxLength

	// KindMinLength verifies the size of the value reaches the minimum.
	KindMinLength

	// KindPattern verifies a string value fully matches a regular expression.
	KindPattern

	// KindPredicate runs the custom predicate and, when present, the expression.
	KindPredicate
)

// Compile-time check that Kind implements model.Model interface.
var _ model.Model = (*Kind)(nil)

// Canonical string forms of Kind, used in ConstraintError.Constraint, in
// schema documents and in logs. Changing any of these strings is a breaking
// change for consumers that match on them.
const (
	TypeCheckStr   = "type"
	LessThanStr    = "less-than"
	GreaterThanStr = "greater-than"
	MaxLengthStr   = "max-length"
	MinLengthStr   = "min-length"
	PatternStr     = "pattern"
	PredicateStr   = "predicate"
)

// Kinds lists every Kind in compile order.
func Kinds() []Kind {
	return []Kind{KindTypeCheck, KindLessThan, KindGreaterThan, KindMaxLength, KindMinLength, KindPattern, KindPredicate}
}

// String returns the canonical string representation of the Kind, or
// "unknown" for values outside the defined constants.
func (k Kind) String() string {
	switch k {
	case KindTypeCheck:
		return TypeCheckStr
	case KindLessThan:
		return LessThanStr
	case KindGreaterThan:
		return GreaterThanStr
	case KindMaxLength:
		return MaxLengthStr
	case KindMinLength:
		return MinLengthStr
	case KindPattern:
		return PatternStr
	case KindPredicate:
		return PredicateStr
	default:
		return "unknown"
	}
}

// ParseKind converts a textual representation into a Kind.
//
// Matching is case-insensitive. Kebab-case, snake_case and the short names
// used by schema documents are all accepted:
//
//	"less-than", "less_than", "lt"  -> KindLessThan
//	"max-length", "max_length", "len_max" -> KindMaxLength
//
// If the input does not name a Kind, ParseKind returns a *errors.ParseError.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case TypeCheckStr, "check_type", "check-type":
		return KindTypeCheck, nil
	case LessThanStr, "less_than", "lt":
		return KindLessThan, nil
	case GreaterThanStr, "greater_than", "gt":
		return KindGreaterThan, nil
	case MaxLengthStr, "max_length", "len_max":
		return KindMaxLength, nil
	case MinLengthStr, "min_length", "len_min":
		return KindMinLength, nil
	case PatternStr, "regex":
		return KindPattern, nil
	case PredicateStr, "custom_fn", "expr":
		return KindPredicate, nil
	default:
		return KindTypeCheck, &errors.ParseError{Type: "Kind", Value: s}
	}
}

// Valid reports whether the Kind is one of the defined constants.
func (k Kind) Valid() bool {
	return k >= KindTypeCheck && k <= KindPredicate
}

// TypeName returns "Kind".
func (k Kind) TypeName() string {
	return "Kind"
}

// Redacted returns the same string as String; a Kind carries nothing
// sensitive.
func (k Kind) Redacted() string {
	return k.String()
}

// IsZero reports whether the Kind is KindTypeCheck, the zero value.
func (k Kind) IsZero() bool {
	return k == KindTypeCheck
}

// Validate returns a *errors.MarshalError for values outside the defined
// constants.
func (k Kind) Validate() error {
	if !k.Valid() {
		return &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. A valid Kind is serialized as its
// canonical string.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler. Only string input is accepted;
// the numeric values are an implementation detail of the compile order.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler via ParseKind.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
