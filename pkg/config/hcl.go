// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gitlab.com/tozd/go/errors"
)

// 🔧 HCLParser implements the Parser interface for HCL files.
//
//	case_sensitive = false
//
//	rule {
//	  pattern     = "secret"
//	  replacement = "***"
//	}
//
//	resources {
//	  include = ["**/*.md"]
//	}
//
// A rules attribute (object or tuple) and flat top-level attributes work
// the same as in JSON.
type HCLParser struct{}

type hclRule struct {
	Pattern     string `hcl:"pattern"`
	Replacement string `hcl:"replacement"`
}

type hclResources struct {
	Include []string `hcl:"include,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

func (p *HCLParser) Name() string { return "hcl" }

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (any, error) {
	file, diags := hclsyntax.ParseConfig(data, "config.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Errorf("parsing HCL: unexpected body type %T", file.Body)
	}

	// Attributes is a map, put them back in source order
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	top := make(ruleset.Map, 0, len(attrs)+2)
	for _, attr := range attrs {
		v, err := convertHCLExpr(attr.Expr)
		if err != nil {
			return nil, errors.Errorf("decoding HCL: %s: %w", attr.Name, err)
		}
		top = append(top, ruleset.Entry{Key: attr.Name, Value: v})
	}

	var ruleBlocks []any
	for _, block := range body.Blocks {
		switch block.Type {
		case "rule":
			var r hclRule
			if diags := gohcl.DecodeBody(block.Body, nil, &r); diags.HasErrors() {
				return nil, errors.Errorf("decoding HCL: %s", diags.Error())
			}
			ruleBlocks = append(ruleBlocks, ruleset.Map{{Key: r.Pattern, Value: r.Replacement}})

		case ruleset.KeyResources:
			if _, exists := top.Get(ruleset.KeyResources); exists {
				return nil, errors.Errorf("decoding HCL: resources is defined more than once")
			}
			var res hclResources
			if diags := gohcl.DecodeBody(block.Body, nil, &res); diags.HasErrors() {
				return nil, errors.Errorf("decoding HCL: %s", diags.Error())
			}
			top = append(top, ruleset.Entry{Key: ruleset.KeyResources, Value: ruleset.Map{
				{Key: "include", Value: stringsToAny(res.Include)},
				{Key: "exclude", Value: stringsToAny(res.Exclude)},
			}})

		default:
			return nil, errors.Errorf("decoding HCL: unsupported block %q at %s", block.Type, block.TypeRange)
		}
	}

	if len(ruleBlocks) > 0 {
		if _, exists := top.Get(ruleset.KeyRules); exists {
			return nil, errors.Errorf("decoding HCL: use either a rules attribute or rule blocks, not both")
		}
		top = append(top, ruleset.Entry{Key: ruleset.KeyRules, Value: ruleBlocks})
	}

	return top, nil
}

// convertHCLExpr keeps object constructor items in written order. Any other
// expression is evaluated without variables.
func convertHCLExpr(expr hclsyntax.Expression) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		m := make(ruleset.Map, 0, len(e.Items))
		for _, item := range e.Items {
			keyVal, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, errors.Errorf("%s", diags.Error())
			}
			keyVal, err := convert.Convert(keyVal, cty.String)
			if err != nil || keyVal.IsNull() || !keyVal.IsKnown() {
				return nil, errors.Errorf("object key at %s must be a string", item.KeyExpr.Range())
			}
			v, err := convertHCLExpr(item.ValueExpr)
			if err != nil {
				return nil, errors.Errorf("%s: %w", keyVal.AsString(), err)
			}
			m = append(m, ruleset.Entry{Key: keyVal.AsString(), Value: v})
		}
		return m, nil

	case *hclsyntax.TupleConsExpr:
		list := make([]any, 0, len(e.Exprs))
		for i, item := range e.Exprs {
			v, err := convertHCLExpr(item)
			if err != nil {
				return nil, errors.Errorf("[%d]: %w", i, err)
			}
			list = append(list, v)
		}
		return list, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.Errorf("%s", diags.Error())
	}
	return ctyToValue(val)
}

func ctyToValue(v cty.Value) (any, error) {
	if !v.IsKnown() {
		return nil, errors.New("value is not known")
	}
	if v.IsNull() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return json.Number(v.AsBigFloat().Text('f', -1)), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		list := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			x, err := ctyToValue(ev)
			if err != nil {
				return nil, err
			}
			list = append(list, x)
		}
		return list, nil
	case ty.IsObjectType() || ty.IsMapType():
		m := make(ruleset.Map, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			x, err := ctyToValue(ev)
			if err != nil {
				return nil, err
			}
			m = append(m, ruleset.Entry{Key: k.AsString(), Value: x})
		}
		return m, nil
	}

	return nil, errors.Errorf("unsupported value type %s", ty.FriendlyName())
}

func stringsToAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
