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
	"cmp"
	"math"
	"reflect"
)

// number is a numeric field value widened without loss: exactly one of the
// three representations is meaningful, selected by kind.
type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

type numKind int

const (
	numInt numKind = iota
	numUint
	numFloat
)

// asNumber widens v when its kind is an integer or a float, named types
// included.
func asNumber(v any) (number, bool) {
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: numInt, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: numUint, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: numFloat, f: rv.Float()}, true
	default:
		return number{}, false
	}
}

// cmpFloat compares n against a float64. ok is false when either side is NaN.
func (n number) cmpFloat(b float64) (c int, ok bool) {
	if math.IsNaN(b) {
		return 0, false
	}
	switch n.kind {
	case numInt:
		return cmpIntFloat(n.i, b), true
	case numUint:
		return cmpUintFloat(n.u, b), true
	default:
		if math.IsNaN(n.f) {
			return 0, false
		}
		return cmp.Compare(n.f, b), true
	}
}

// compare compares two numbers exactly. ok is false when a NaN is involved.
func (n number) compare(m number) (c int, ok bool) {
	switch {
	case m.kind == numFloat:
		return n.cmpFloat(m.f)
	case n.kind == numFloat:
		c, ok = m.cmpFloat(n.f)
		return -c, ok
	case n.kind == numInt && m.kind == numInt:
		return cmp.Compare(n.i, m.i), true
	case n.kind == numUint && m.kind == numUint:
		return cmp.Compare(n.u, m.u), true
	case n.kind == numInt:
		if n.i < 0 {
			return -1, true
		}
		return cmp.Compare(uint64(n.i), m.u), true
	default:
		if m.i < 0 {
			return 1, true
		}
		return cmp.Compare(n.u, uint64(m.i)), true
	}
}

// integral returns the number as an int64 when it holds an integer that fits,
// so that 2, uint8(2) and 2.0 share one canonical form.
func (n number) integral() (int64, bool) {
	switch n.kind {
	case numInt:
		return n.i, true
	case numUint:
		if n.u <= math.MaxInt64 {
			return int64(n.u), true
		}
		return 0, false
	default:
		if n.f == math.Trunc(n.f) && n.f >= math.MinInt64 && n.f < math.MaxInt64 {
			return int64(n.f), true
		}
		return 0, false
	}
}

const (
	twoTo63 = 1 << 63
	twoTo64 = 1 << 64
)

func cmpIntFloat(i int64, b float64) int {
	switch {
	case b >= twoTo63:
		return -1
	case b < -twoTo63:
		return 1
	}
	t := math.Trunc(b)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	return cmp.Compare(t, b)
}

func cmpUintFloat(u uint64, b float64) int {
	switch {
	case b < 0:
		return 1
	case b >= twoTo64:
		return -1
	}
	t := math.Trunc(b)
	if c := cmp.Compare(u, uint64(t)); c != 0 {
		return c
	}
	return cmp.Compare(t, b)
}
