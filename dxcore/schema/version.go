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

package schema

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model"
	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the only major format version Load accepts. Documents
// with a higher minor or patch version load unchanged: additions within a
// major version never change the meaning of existing keys.
const SupportedMajor = 1

// Current is the format version written by this package.
var Current = Version{v: bsemver.Version{Major: SupportedMajor}}

// Version is the format version of a schema document, a SemVer 2.0.0
// version such as "1.0.0".
//
// Parsing is tolerant: "1", "1.2" and "v1.2.0" are all accepted and
// normalized. The zero Version means the document did not declare one.
type Version struct {
	v bsemver.Version
}

var _ model.Serializable = (*Version)(nil)

// ParseVersion parses a format version.
func ParseVersion(s string) (Version, error) {
	bv, err := bsemver.ParseTolerant(s)
	if err != nil {
		return Version{}, &errors.ParseError{Type: "Version", Value: s}
	}
	return Version{v: bv}, nil
}

// String returns the canonical form, for example "1.2.0".
func (v Version) String() string { return v.v.String() }

// Redacted returns the same string as String.
func (v Version) Redacted() string { return v.String() }

// TypeName returns "Version".
func (v Version) TypeName() string { return "Version" }

// Major returns the major component.
func (v Version) Major() uint64 { return v.v.Major }

// IsZero reports whether no version was given.
func (v Version) IsZero() bool {
	return v.v.Equals(bsemver.Version{}) && len(v.v.Pre) == 0 && len(v.v.Build) == 0
}

// Compare orders versions by SemVer precedence. Build metadata is ignored.
func (v Version) Compare(other Version) int { return v.v.Compare(other.v) }

// Compatible reports whether documents of this version can be loaded.
func (v Version) Compatible() bool { return v.v.Major == SupportedMajor }

// Validate reports a missing or unsupported version.
func (v Version) Validate() error {
	if v.IsZero() {
		return fmt.Errorf("dxprim: schema version is missing")
	}
	if err := v.v.Validate(); err != nil {
		return fmt.Errorf("dxprim: invalid schema version %s: %w", v, err)
	}
	if !v.Compatible() {
		return fmt.Errorf("dxprim: unsupported schema version %s: %w (supported: %d.x)", v, errors.ErrNotSupported, SupportedMajor)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler. Both strings and bare numbers
// ("1", 1, 1.2) are accepted.
func (v *Version) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &errors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	s, ok := raw.(string)
	if !ok {
		s = string(data)
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Any scalar is accepted, so
// "version: 1" and "version: 1.0" parse like their quoted forms.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &errors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: "expected a scalar"}
	}
	parsed, err := ParseVersion(node.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
