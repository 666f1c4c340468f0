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
	"strconv"
	"unicode"

	"dirpx.dev/dxprim/dxcore/model/rule"
	"dirpx.dev/dxprim/dxcore/model/semantic"
)

// fieldPlan is one declared field as seen by the compiler. Plans only live
// for the duration of Build.
type fieldPlan struct {
	index int
	name  string
	typ   semantic.Type
	rule  *rule.Rule
}

func extractPlan(decls []fieldDecl) ([]fieldPlan, []string) {
	var issues []string
	seen := make(map[string]bool, len(decls))
	plan := make([]fieldPlan, 0, len(decls))

	for i, f := range decls {
		switch {
		case !isIdentifier(f.name):
			issues = append(issues, "field name "+quote(f.name)+" is not a valid identifier")
		case seen[f.name]:
			issues = append(issues, "duplicate field "+quote(f.name))
		}
		seen[f.name] = true

		if f.typ == nil {
			issues = append(issues, "field "+quote(f.name)+" has no semantic type")
		}

		plan = append(plan, fieldPlan{index: i, name: f.name, typ: f.typ, rule: f.rule})
	}

	return plan, issues
}

// finalizeFields applies storage overrides. A field without an override
// keeps the record defaults and has no default value.
func finalizeFields(plan []fieldPlan, keywordOnly bool) ([]FieldInfo, []string) {
	var issues []string
	fields := make([]FieldInfo, len(plan))
	sawDefault := ""

	for i, p := range plan {
		f := FieldInfo{
			Name:        p.name,
			Type:        p.typ,
			Repr:        true,
			Compare:     true,
			Hash:        true,
			KeywordOnly: keywordOnly,
		}
		if p.rule != nil {
			f.Checks = p.rule.Kinds()
			if o := p.rule.Override(); o != nil {
				if err := o.Validate(); err != nil {
					issues = append(issues, "field "+quote(p.name)+": "+err.Error())
				}
				f.Repr = o.InRepr()
				f.Compare = o.InCompare()
				f.Hash = o.InHash()
				f.KeywordOnly = keywordOnly || o.IsKeywordOnly()
				f.def, f.hasDefault = o.DefaultValue()
				f.factory = o.Factory()
			}
		}

		if !f.KeywordOnly {
			switch {
			case f.HasDefault():
				sawDefault = p.name
			case sawDefault != "":
				issues = append(issues, "positional field "+quote(p.name)+" without a default follows field "+quote(sawDefault)+" with a default")
			}
		}

		fields[i] = f
	}

	return fields, issues
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func quote(s string) string {
	return strconv.Quote(s)
}
