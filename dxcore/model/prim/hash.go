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
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
	"reflect"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"github.com/cespare/xxhash/v2"
)

var seed = maphash.MakeSeed()

// Hash returns a hash consistent with Equal: equal instances hash equally.
//
// The hash covers the type name and every field whose hash flag is set.
// With equality disabled for the type, the hash is derived from the
// instance's identity instead. Field values that cannot be hashed, such as
// functions, make Hash return an error wrapping errors.ErrNotSupported.
//
// Hashes are only meaningful within one process.
func (i *Instance) Hash() (uint64, error) {
	if !i.constructed() {
		return 0, i.unconstructed()
	}
	if !i.typ.opts.equality {
		return maphash.Comparable(seed, i), nil
	}

	d := xxhash.New()
	_, _ = d.WriteString(i.typ.name)
	for idx, f := range i.typ.fields {
		if !f.Hash {
			continue
		}
		if err := hashValue(d, i.values[idx]); err != nil {
			return 0, fmt.Errorf("%s.%s: %w", i.typ.name, f.Name, err)
		}
	}
	return d.Sum64(), nil
}

// Tags separating the canonical encodings of hashed values.
const (
	tagNil byte = iota
	tagInstance
	tagInt
	tagUint
	tagFloat
	tagString
	tagBool
	tagList
	tagMap
	tagOther
)

func hashValue(d *xxhash.Digest, v any) error {
	switch x := v.(type) {
	case nil:
		writeTag(d, tagNil)
		return nil
	case *Instance:
		h, err := x.Hash()
		if err != nil {
			return err
		}
		writeTag(d, tagInstance)
		writeUint(d, h)
		return nil
	}

	if n, ok := asNumber(v); ok {
		if i, ok := n.integral(); ok {
			writeTag(d, tagInt)
			writeUint(d, uint64(i))
			return nil
		}
		if n.kind == numUint {
			writeTag(d, tagUint)
			writeUint(d, n.u)
			return nil
		}
		if n.f >= 0 && n.f < twoTo64 && n.f == math.Trunc(n.f) {
			writeTag(d, tagUint)
			writeUint(d, uint64(n.f))
			return nil
		}
		writeTag(d, tagFloat)
		writeUint(d, math.Float64bits(n.f))
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		writeTag(d, tagString)
		writeUint(d, uint64(rv.Len()))
		_, _ = d.WriteString(rv.String())
		return nil
	case reflect.Bool:
		writeTag(d, tagBool)
		if rv.Bool() {
			writeTag(d, 1)
		} else {
			writeTag(d, 0)
		}
		return nil
	case reflect.Slice, reflect.Array:
		writeTag(d, tagList)
		writeUint(d, uint64(rv.Len()))
		for k := 0; k < rv.Len(); k++ {
			if err := hashValue(d, rv.Index(k).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		// Entries are hashed independently and summed, so iteration order
		// does not matter.
		var sum uint64
		iter := rv.MapRange()
		for iter.Next() {
			e := xxhash.New()
			if err := hashValue(e, iter.Key().Interface()); err != nil {
				return err
			}
			if err := hashValue(e, iter.Value().Interface()); err != nil {
				return err
			}
			sum += e.Sum64()
		}
		writeTag(d, tagMap)
		writeUint(d, uint64(rv.Len()))
		writeUint(d, sum)
		return nil
	}

	if !rv.Comparable() {
		return fmt.Errorf("%w: unhashable value of type %s", errors.ErrNotSupported, semantic.TypeName(v))
	}
	writeTag(d, tagOther)
	writeUint(d, maphash.Comparable(seed, v))
	return nil
}

func writeTag(d *xxhash.Digest, tag byte) {
	_, _ = d.Write([]byte{tag})
}

func writeUint(d *xxhash.Digest, u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	_, _ = d.Write(buf[:])
}
