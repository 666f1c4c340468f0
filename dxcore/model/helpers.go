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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every model in the slice and returns all failures
// combined into one error, or nil when every model is valid.
//
// Each failure is wrapped with the index of the model in the slice and its
// type name, so a caller can tell which element failed and why. The whole
// slice is always processed; an early failure never hides a later one. The
// combined error is built with an rxmerr.Collector, so errors.Is and
// errors.As reach every individual failure.
//
// Example:
//
//	if err := model.ValidateAll(instances); err != nil {
//	    logger.Error("invalid batch", "error", err)
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// FilterZero returns a new slice holding the models for which IsZero reports
// false, in their original order. The result never shares storage with the
// input and is non-nil even when empty.
func FilterZero[T Model](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate returns m unchanged when it is valid and panics otherwise.
//
// Use it where an invalid model is a programming error: test fixtures and
// package-level values built at start-up. Never use it on input that comes
// from outside the process.
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns the full string form when unsafe is true and the
// redacted form otherwise. Callers pass a debug flag through unsafe so that
// hidden fields only reach logs when explicitly requested.
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and encodes it to JSON. An invalid model is never
// encoded; its validation error is returned instead.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and encodes it to YAML. An invalid model is never
// encoded; its validation error is returned instead.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}
