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

package prim

import (
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/semantic"
)

// Equal reports whether i and other are instances of the same type with
// equal values in every field that takes part in comparison. With equality
// disabled for the type, an instance is only equal to itself.
//
// Numbers compare by value across Go types, so a field holding 2 equals one
// holding 2.0. Nested instances compare with their own Equal.
func (i *Instance) Equal(other *Instance) bool {
	if i == other {
		return true
	}
	if !i.constructed() || !other.constructed() {
		return false
	}
	if !i.typ.opts.equality || i.typ != other.typ {
		return false
	}
	for idx, f := range i.typ.fields {
		if f.Compare && !equalValues(i.values[idx], other.values[idx]) {
			return false
		}
	}
	return true
}

// Compare orders i against other field by field in declaration order,
// skipping fields excluded from comparison, and returns -1, 0 or +1.
//
// The error wraps errors.ErrNotSupported when ordering is disabled for the
// type, when other belongs to a different type, or when two field values
// have no natural order.
func (i *Instance) Compare(other *Instance) (int, error) {
	if !i.constructed() || !other.constructed() {
		return 0, i.unconstructed()
	}
	if !i.typ.opts.ordering {
		return 0, fmt.Errorf("%w: %s is not ordered", errors.ErrNotSupported, i.typ.name)
	}
	if i.typ != other.typ {
		return 0, fmt.Errorf("%w: cannot order %s against %s", errors.ErrNotSupported, i.typ.name, other.typ.name)
	}
	for idx, f := range i.typ.fields {
		if !f.Compare {
			continue
		}
		c, err := compareValues(i.values[idx], other.values[idx])
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", i.typ.name, f.Name, err)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Less reports whether i sorts before other.
func (i *Instance) Less(other *Instance) (bool, error) {
	c, err := i.Compare(other)
	return err == nil && c < 0, err
}

// LessEqual reports whether i sorts before or equal to other.
func (i *Instance) LessEqual(other *Instance) (bool, error) {
	c, err := i.Compare(other)
	return err == nil && c <= 0, err
}

// Greater reports whether i sorts after other.
func (i *Instance) Greater(other *Instance) (bool, error) {
	c, err := i.Compare(other)
	return err == nil && c > 0, err
}

// GreaterEqual reports whether i sorts after or equal to other.
func (i *Instance) GreaterEqual(other *Instance) (bool, error) {
	c, err := i.Compare(other)
	return err == nil && c >= 0, err
}

func equalValues(a, b any) bool {
	if x, ok := a.(*Instance); ok {
		y, ok := b.(*Instance)
		return ok && x.Equal(y)
	}
	if na, ok := asNumber(a); ok {
		nb, ok := asNumber(b)
		if !ok {
			return false
		}
		c, ok := na.compare(nb)
		return ok && c == 0
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.Slice, reflect.Array:
		if !isList(rb) || ra.Len() != rb.Len() {
			return false
		}
		for k := 0; k < ra.Len(); k++ {
			if !equalValues(ra.Index(k).Interface(), rb.Index(k).Interface()) {
				return false
			}
		}
		return true
	case reflect.Map:
		if rb.Kind() != reflect.Map || ra.Len() != rb.Len() || ra.Type().Key() != rb.Type().Key() {
			return false
		}
		iter := ra.MapRange()
		for iter.Next() {
			vb := rb.MapIndex(iter.Key())
			if !vb.IsValid() || !equalValues(iter.Value().Interface(), vb.Interface()) {
				return false
			}
		}
		return true
	}

	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Comparable() && rb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b any) (int, error) {
	if x, ok := a.(*Instance); ok {
		if y, ok := b.(*Instance); ok {
			return x.Compare(y)
		}
	}
	if na, ok := asNumber(a); ok {
		if nb, ok := asNumber(b); ok {
			if c, ok := na.compare(nb); ok {
				return c, nil
			}
			return 0, unordered(a, b)
		}
	}

	if a != nil && b != nil {
		ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
		switch {
		case ra.Kind() == reflect.String && ra.Type() == rb.Type():
			return strings.Compare(ra.String(), rb.String()), nil
		case ra.Kind() == reflect.Bool && ra.Type() == rb.Type():
			return compareBools(ra.Bool(), rb.Bool()), nil
		case isList(ra) && isList(rb):
			n := min(ra.Len(), rb.Len())
			for k := 0; k < n; k++ {
				c, err := compareValues(ra.Index(k).Interface(), rb.Index(k).Interface())
				if err != nil || c != 0 {
					return c, err
				}
			}
			switch {
			case ra.Len() < rb.Len():
				return -1, nil
			case ra.Len() > rb.Len():
				return 1, nil
			}
			return 0, nil
		}
	}

	if equalValues(a, b) {
		return 0, nil
	}
	return 0, unordered(a, b)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func isList(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func unordered(a, b any) error {
	return fmt.Errorf("%w: %s and %s values have no order", errors.ErrNotSupported, semantic.TypeName(a), semantic.TypeName(b))
}
