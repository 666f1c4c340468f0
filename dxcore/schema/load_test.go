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

package schema_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/dxprim/dxcore/errors"
	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
	"dirpx.dev/dxprim/dxcore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const primitives = `
version: 1
types:
  - name: A
    equality: false
    ordering: false
    match_support: false
    fields:
      - name: a
        type: int
        rules: {greater_than: 0, less_than: 10}
  - name: B
    fields:
      - name: b
        type: string
        rules: {min_length: 3, max_length: 10, pattern: "^[a-z]+$"}
  - name: C
    fields:
      - name: c
        type: list
        rules: {min_length: 3, max_length: 10}
  - name: D
    fields:
      - name: odd
        type: int
        rules:
          predicate: is_odd
          field: {repr: false, compare: false, hash: false}
      - name: even
        type: int
        rules:
          expr: "value % 2 == 0"
      - name: keyword
        type: int
        rules:
          field: {keyword_only: true, default: 0}
`

func isOdd(v any) any {
	n, ok := v.(int)
	return ok && n%2 == 1
}

func loadPrimitives(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Load([]byte(primitives), schema.WithPredicate("is_odd", isOdd))
	require.NoError(t, err)
	return reg
}

func TestLoad_Scenarios(t *testing.T) {
	reg := loadPrimitives(t)
	assert.Equal(t, []string{"A", "B", "C", "D"}, reg.Names())
	assert.Equal(t, "1.0.0", reg.Version().String())

	A, B, C, D := reg.MustLookup("A"), reg.MustLookup("B"), reg.MustLookup("C"), reg.MustLookup("D")

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"A ok", second(A.New(1)), nil},
		{"A low", second(A.New(-1)), errors.ErrConstraint},
		{"A high", second(A.New(11)), errors.ErrConstraint},
		{"A type", second(A.New("x")), errors.ErrTypeMismatch},
		{"B ok", second(B.New("apple")), nil},
		{"B short", second(B.New("a")), errors.ErrConstraint},
		{"B long", second(B.New("ABCDEFGHIJKLMNOP")), errors.ErrConstraint},
		{"B pattern", second(B.New("123")), errors.ErrConstraint},
		{"C ok", second(C.New([]int{1, 2, 3})), nil},
		{"C empty", second(C.New([]int{})), errors.ErrConstraint},
		{"C type", second(C.New("a")), errors.ErrTypeMismatch},
		{"D ok", second(D.New(1, 2)), nil},
		{"D odd", second(D.New(2, 2)), errors.ErrPredicate},
		{"D even", second(D.New(1, 1)), errors.ErrPredicate},
		{"D arity", second(D.New(1, 2, 3)), errors.ErrArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				assert.NoError(t, tt.err)
				return
			}
			assert.ErrorIs(t, tt.err, tt.wantErr)
		})
	}
}

func TestLoad_BehavesLikeDeclaredTypes(t *testing.T) {
	D := loadPrimitives(t).MustLookup("D")
	d1, d2, d3 := D.MustNew(1, 2), D.MustNew(3, 2), D.MustNew(1, 4)

	assert.Equal(t, "D(even=2, keyword=0)", d1.String())
	assert.True(t, d1.Equal(d2))
	assert.False(t, d1.Equal(d3))

	less, err := d1.Less(d3)
	require.NoError(t, err)
	assert.True(t, less)

	h1, _ := d1.Hash()
	h2, _ := d2.Hash()
	assert.Equal(t, h1, h2)

	A := loadPrimitives(t).MustLookup("A")
	_, err = A.MustNew(1).Less(A.MustNew(2))
	assert.ErrorIs(t, err, errors.ErrNotSupported)
}

func TestLoad_NestedTypes(t *testing.T) {
	doc := `
version: "1.2"
types:
  - name: Point
    fields:
      - {name: x, type: int, rules: {}}
      - {name: y, type: int, rules: {}}
  - name: Segment
    fields:
      - {name: from, type: Point, rules: {}}
      - {name: to, type: Point, rules: {}}
`
	reg, err := schema.Load([]byte(doc))
	require.NoError(t, err)

	seg, err := reg.MustLookup("Segment").FromYAML([]byte("from: {x: 0, y: 0}\nto: {x: 1, y: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "Segment(from=Point(x=0, y=0), to=Point(x=1, y=1))", seg.String())
}

func TestLoad_JSONDocument(t *testing.T) {
	doc := `{"version": "1.0.0", "types": [{"name": "Slug", "fields": [` +
		`{"name": "v", "type": "string", "rules": {"pattern": "[a-z0-9-]+", "max_length": 8}}]}]}`
	reg, err := schema.Load([]byte(doc))
	require.NoError(t, err)

	slug := reg.MustLookup("Slug")
	_, err = slug.New("hello-1")
	assert.NoError(t, err)
	_, err = slug.New("Hello")
	assert.ErrorIs(t, err, errors.ErrConstraint)
}

func TestLoad_WithType(t *testing.T) {
	even := semantic.Func("even", func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})
	doc := `
version: 1
types:
  - name: Pair
    fields:
      - {name: n, type: even, rules: {}}
`
	reg, err := schema.Load([]byte(doc), schema.WithType(even))
	require.NoError(t, err)

	_, err = reg.MustLookup("Pair").New(3)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestLoad_Faults(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "unknown type and predicate collected together",
			doc: `
version: 1
types:
  - name: X
    fields: [{name: a, type: decimal}]
  - name: Y
    fields: [{name: a, type: int, rules: {predicate: nope}}]
  - name: Z
    fields: [{name: a, type: int}]
`,
			want: []string{`types[0] (X)`, `unknown type "decimal"`, `types[1] (Y)`, `unknown predicate "nope"`},
		},
		{
			name: "declaration fault",
			doc: `
version: 1
types:
  - name: X
    equality: false
    fields: [{name: a, type: int}]
`,
			want: []string{"ordering requires equality"},
		},
		{
			name: "duplicate type",
			doc: `
version: 1
types:
  - {name: X, fields: [{name: a, type: int}]}
  - {name: X, fields: [{name: b, type: int}]}
`,
			want: []string{"types[1] (X): duplicate type"},
		},
		{
			name: "reference to a failed type",
			doc: `
version: 1
types:
  - {name: X, fields: [{name: a, type: nope}]}
  - {name: Y, fields: [{name: x, type: X}]}
`,
			want: []string{`unknown type "nope"`, `unknown type "X"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := schema.Load([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, reg)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
	}{
		{
			name: "misspelled rule",
			doc:  "version: 1\ntypes:\n  - name: K\n    fields:\n      - {name: k, type: int, rules: {lessthan: 10}}\n",
			key:  "lessthan",
		},
		{
			name: "misspelled override",
			doc:  "version: 1\ntypes:\n  - name: K\n    fields:\n      - {name: k, type: int, rules: {field: {defualt: 0}}}\n",
			key:  "defualt",
		},
		{
			name: "misspelled type option",
			doc:  "version: 1\ntypes:\n  - name: K\n    equalty: false\n    fields: [{name: k, type: int}]\n",
			key:  "equalty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := schema.Load([]byte(tt.doc))
			assert.Nil(t, reg)
			var ue *errors.UnmarshalError
			require.ErrorAs(t, err, &ue)
			assert.Contains(t, ue.Reason, tt.key)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	doc := `
version: 1
types:
  - name: Tagged
    fields:
      - name: id
        type: int
        rules: {}
      - name: note
        type: string
        rules:
          field:
            default: ""
      - name: tags
        type: list
        rules:
          max_length: 2
          field:
            keyword_only: true
            default: [a]
      - name: meta
        type: map
        rules:
          field:
            keyword_only: true
            default: {source: schema}
`
	reg, err := schema.Load([]byte(doc))
	require.NoError(t, err)
	tagged := reg.MustLookup("Tagged")

	first := tagged.MustNew(1)
	note, _ := first.Get("note")
	assert.Equal(t, "", note)
	tags, _ := first.Get("tags")
	assert.Equal(t, []any{"a"}, tags)
	meta, _ := first.Get("meta")
	assert.Equal(t, map[string]any{"source": "schema"}, meta)

	info, ok := tagged.Field("tags")
	require.True(t, ok)
	d1, _ := info.Default()
	d1.([]any)[0] = "changed"
	d2, _ := info.Default()
	assert.Equal(t, []any{"a"}, d2)

	again := tagged.MustNew(2)
	tags, _ = again.Get("tags")
	assert.Equal(t, []any{"a"}, tags)
}

func TestLoad_Version(t *testing.T) {
	_, err := schema.Load([]byte("types: []\n"))
	assert.ErrorContains(t, err, "version is missing")

	_, err = schema.Load([]byte("version: 2.0.0\ntypes: []\n"))
	assert.ErrorIs(t, err, errors.ErrNotSupported)

	_, err = schema.Load([]byte("version: banana\ntypes: []\n"))
	var ue *errors.UnmarshalError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Document", ue.Type)

	_, err = schema.Load([]byte("version: [1]\n"))
	assert.Error(t, err)

	_, err = schema.Load(nil)
	assert.ErrorContains(t, err, "version is missing")
}

func TestLoad_Malformed(t *testing.T) {
	_, err := schema.Load([]byte("version: 1\ntypes: {not: a list}\n"))
	var ue *errors.UnmarshalError
	assert.ErrorAs(t, err, &ue)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(primitives), 0o600))

	reg, err := schema.LoadFile(path, schema.WithPredicate("is_odd", isOdd))
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())

	_, err = schema.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := schema.Load([]byte(primitives), schema.WithPredicate("is_odd", isOdd), schema.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "schema loaded")
	assert.Contains(t, buf.String(), "compiled primitive")
}

func TestRegistry_Describe(t *testing.T) {
	reg := loadPrimitives(t)

	desc := reg.Describe()
	require.Len(t, desc, 4)
	assert.Equal(t, "A", desc[0].Name)
	assert.Equal(t, []rule.Kind{rule.KindTypeCheck, rule.KindLessThan, rule.KindGreaterThan}, desc[0].Fields[0].Checks)

	keyword := desc[3].Fields[2]
	assert.Equal(t, "keyword", keyword.Name)
	assert.True(t, keyword.KeywordOnly)
	assert.True(t, keyword.Default)

	out, err := yaml.Marshal(desc[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), "- less-than")
}

func TestRegistry_Lookup(t *testing.T) {
	reg := loadPrimitives(t)

	_, ok := reg.Lookup("B")
	assert.True(t, ok)
	_, ok = reg.Lookup("Nope")
	assert.False(t, ok)
	assert.Panics(t, func() { reg.MustLookup("Nope") })
}

func second[T any](_ T, err error) error { return err }
