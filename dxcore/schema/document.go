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

// Package schema declares domain primitives from YAML or JSON documents.
//
// A document lists types in order; each type lists its fields, their
// semantic types and their rules using the same vocabulary as the rule and
// field packages:
//
//	version: 1
//	types:
//	  - name: Percent
//	    fields:
//	      - name: value
//	        type: int
//	        rules:
//	          greater_than: -1
//	          less_than: 101
//	  - name: Discount
//	    fields:
//	      - name: code
//	        type: string
//	        rules: {pattern: "[A-Z0-9]{4,12}"}
//	      - name: percent
//	        type: Percent
//	      - name: note
//	        type: string
//	        rules:
//	          field: {keyword_only: true, default: "", repr: false}
//
// Field types name a built-in semantic type ("int", "string", ...), a type
// registered with WithType, or a type declared earlier in the same
// document. Custom Go predicates are referenced by the name they were
// registered under with WithPredicate; inline predicates are written as
// expressions under "expr".
//
// JSON documents use the same keys. Types produced from a document behave
// exactly like types declared with prim.Declare.
package schema

import "gopkg.in/yaml.v3"

// Document is the decoded form of a schema document.
type Document struct {
	Version Version    `yaml:"version" json:"version"`
	Types   []TypeSpec `yaml:"types" json:"types"`
}

// TypeSpec declares one type. Unset flags take the prim.Declare defaults.
type TypeSpec struct {
	Name           string      `yaml:"name" json:"name"`
	KeywordOnly    bool        `yaml:"keyword_only,omitempty" json:"keyword_only,omitempty"`
	Equality       *bool       `yaml:"equality,omitempty" json:"equality,omitempty"`
	Ordering       *bool       `yaml:"ordering,omitempty" json:"ordering,omitempty"`
	Representation *bool       `yaml:"representation,omitempty" json:"representation,omitempty"`
	MatchSupport   *bool       `yaml:"match_support,omitempty" json:"match_support,omitempty"`
	Fields         []FieldSpec `yaml:"fields" json:"fields"`
}

// FieldSpec declares one field. A field without rules is an ordinary field.
type FieldSpec struct {
	Name  string    `yaml:"name" json:"name"`
	Type  string    `yaml:"type" json:"type"`
	Rules *RuleSpec `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// RuleSpec mirrors the options of rule.New.
type RuleSpec struct {
	CheckType   *bool         `yaml:"check_type,omitempty" json:"check_type,omitempty"`
	LessThan    *float64      `yaml:"less_than,omitempty" json:"less_than,omitempty"`
	GreaterThan *float64      `yaml:"greater_than,omitempty" json:"greater_than,omitempty"`
	MaxLength   *int          `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	MinLength   *int          `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	Pattern     *string       `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Predicate   string        `yaml:"predicate,omitempty" json:"predicate,omitempty"`
	Expr        string        `yaml:"expr,omitempty" json:"expr,omitempty"`
	Field       *OverrideSpec `yaml:"field,omitempty" json:"field,omitempty"`
}

// OverrideSpec mirrors the options of field.New. Default is kept as a raw
// node until the field type is known, so that it can be converted to it; a
// zero Kind means the document gave no default.
type OverrideSpec struct {
	Repr        *bool     `yaml:"repr,omitempty" json:"repr,omitempty"`
	Compare     *bool     `yaml:"compare,omitempty" json:"compare,omitempty"`
	Hash        *bool     `yaml:"hash,omitempty" json:"hash,omitempty"`
	KeywordOnly bool      `yaml:"keyword_only,omitempty" json:"keyword_only,omitempty"`
	Default     yaml.Node `yaml:"default,omitempty" json:"-"`
}

// HasDefault reports whether the document gave a default.
func (o *OverrideSpec) HasDefault() bool { return o.Default.Kind != 0 }
